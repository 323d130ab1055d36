package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inamate/board/internal/typeid"
)

const DefaultTokenTTL = 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongBoard   = errors.New("token not issued for this board")
)

// Service issues and checks board session tokens. A token names one board and a session id
// for whoever holds it.
type Service struct {
	jwtSecret []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewService(jwtSecret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Service{
		jwtSecret: []byte(jwtSecret),
		ttl:       ttl,
		now:       time.Now,
	}
}

type Session struct {
	ID      string `json:"id"`
	BoardID string `json:"boardId"`
}

type TokenResult struct {
	Token   string  `json:"token"`
	Session Session `json:"session"`
}

// IssueBoardToken creates a new session for boardID and signs a token for it.
func (s *Service) IssueBoardToken(boardID string) (*TokenResult, error) {
	session := Session{ID: typeid.NewSessionID(), BoardID: boardID}
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   session.ID,
		"board": boardID,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &TokenResult{Token: signed, Session: session}, nil
}

func (s *Service) ValidateToken(tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	boardID, _ := claims["board"].(string)
	if sub == "" || boardID == "" {
		return nil, fmt.Errorf("%w: missing subject or board", ErrInvalidToken)
	}
	return &Session{ID: sub, BoardID: boardID}, nil
}

// ValidateBoardToken validates tokenString and checks it was issued for boardID.
func (s *Service) ValidateBoardToken(tokenString, boardID string) (*Session, error) {
	session, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if session.BoardID != boardID {
		return nil, ErrWrongBoard
	}
	return session, nil
}
