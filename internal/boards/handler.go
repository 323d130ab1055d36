package boards

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inamate/board/internal/auth"
	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/store"
)

const maxSceneSize = 4 << 20

// Store is the part of store.Store the board endpoints use.
type Store interface {
	Create(ctx context.Context, data []byte) (*store.Board, error)
	Get(ctx context.Context, id string) (*store.Board, error)
}

type Handler struct {
	boards Store
	auth   *auth.Service
}

func NewHandler(boards Store, authService *auth.Service) *Handler {
	return &Handler{boards: boards, auth: authService}
}

type createResponse struct {
	Board   *store.Board `json:"board"`
	Token   string       `json:"token"`
	Session auth.Session `json:"session"`
}

// Create stores a board from the posted scene JSON and returns it with a session token. An
// empty body creates an empty board; ?sample=true seeds the sample scene.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSceneSize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if r.URL.Query().Get("sample") == "true" {
		data, err = json.Marshal(document.NewSampleScene().Data())
		if err != nil {
			slog.Error("marshal sample scene failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
	} else if len(data) > 0 {
		if _, err := document.ParseData(data); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}

	b, err := h.boards.Create(r.Context(), data)
	if err != nil {
		slog.Error("create board failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	token, err := h.auth.IssueBoardToken(b.ID)
	if err != nil {
		slog.Error("issue token failed", "board", b.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, createResponse{Board: b, Token: token.Token, Session: token.Session})
}

// Get returns the latest snapshot of a board.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	boardID := mux.Vars(r)["boardId"]

	b, err := h.boards.Get(r.Context(), boardID)
	if err != nil {
		handleStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, b)
}

// Check reports whether a board exists, in the form auth.Handler expects.
func (h *Handler) Check(ctx context.Context, boardID string) error {
	if _, err := h.boards.Get(ctx, boardID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s", auth.ErrBoardNotFound, boardID)
		}
		return err
	}
	return nil
}

func handleStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "board not found"})
	default:
		slog.Error("board store error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
