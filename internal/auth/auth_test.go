package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidateToken(t *testing.T) {
	s := NewService("secret", time.Hour)

	result, err := s.IssueBoardToken("board_1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Session.ID, "sess_"))
	assert.Equal(t, "board_1", result.Session.BoardID)

	session, err := s.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.Session, *session)

	_, err = s.ValidateBoardToken(result.Token, "board_2")
	assert.ErrorIs(t, err, ErrWrongBoard)
}

func TestValidateTokenRejects(t *testing.T) {
	s := NewService("secret", time.Hour)
	result, err := s.IssueBoardToken("board_1")
	require.NoError(t, err)

	other := NewService("other-secret", time.Hour)
	_, err = other.ValidateToken(result.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewService("secret", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, err := expired.IssueBoardToken("board_1")
	require.NoError(t, err)
	_, err = s.ValidateToken(old.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func newRouter(s *Service, check BoardChecker) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/boards/{boardId}/join", NewHandler(s, check).Join).Methods("POST")
	protected := r.PathPrefix("/boards/{boardId}").Subrouter()
	protected.Use(s.BoardMiddleware)
	protected.HandleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, SessionFromContext(r.Context()))
	}).Methods("GET")
	return r
}

func TestBoardMiddleware(t *testing.T) {
	s := NewService("secret", time.Hour)
	router := newRouter(s, nil)
	result, err := s.IssueBoardToken("board_1")
	require.NoError(t, err)

	tests := []struct {
		name   string
		target string
		header string
		status int
	}{
		{"bearer header", "/boards/board_1/whoami", "Bearer " + result.Token, http.StatusOK},
		{"query token", "/boards/board_1/whoami?token=" + result.Token, "", http.StatusOK},
		{"missing token", "/boards/board_1/whoami", "", http.StatusUnauthorized},
		{"malformed header", "/boards/board_1/whoami", "Token " + result.Token, http.StatusUnauthorized},
		{"other board", "/boards/board_2/whoami?token=" + result.Token, "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)

			if tt.status == http.StatusOK {
				var session Session
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&session))
				assert.Equal(t, result.Session, session)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	s := NewService("secret", time.Hour)
	router := newRouter(s, func(_ context.Context, boardID string) error {
		switch boardID {
		case "board_1":
			return nil
		case "board_broken":
			return errors.New("connection refused")
		default:
			return ErrBoardNotFound
		}
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/boards/board_1/join", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var result TokenResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	session, err := s.ValidateBoardToken(result.Token, "board_1")
	require.NoError(t, err)
	assert.Equal(t, result.Session.ID, session.ID)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/boards/board_9/join", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/boards/board_broken/join", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
