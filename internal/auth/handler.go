package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

var ErrBoardNotFound = errors.New("board not found")

// BoardChecker reports whether a board exists. It returns ErrBoardNotFound, or an error
// wrapping it, for unknown boards.
type BoardChecker func(ctx context.Context, boardID string) error

type Handler struct {
	service *Service
	check   BoardChecker
}

func NewHandler(service *Service, check BoardChecker) *Handler {
	return &Handler{service: service, check: check}
}

// Join issues a session token for an existing board.
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	boardID := mux.Vars(r)["boardId"]

	if h.check != nil {
		if err := h.check(r.Context(), boardID); err != nil {
			if errors.Is(err, ErrBoardNotFound) {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "board not found"})
				return
			}
			slog.Error("check board failed", "board", boardID, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
	}

	result, err := h.service.IssueBoardToken(boardID)
	if err != nil {
		slog.Error("issue token failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
