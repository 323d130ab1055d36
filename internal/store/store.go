package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/typeid"
)

var ErrNotFound = errors.New("board not found")

// Schema creates the snapshot table. Each board keeps only its latest scene.
const Schema = `
CREATE TABLE IF NOT EXISTS board_snapshots (
	id         TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	version    BIGINT NOT NULL DEFAULT 1,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type Board struct {
	ID        string          `json:"id"`
	Data      json.RawMessage `json:"data"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate applies Schema.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Create stores a new board. Empty data seeds an empty scene; anything else must decode as
// scene JSON.
func (s *Store) Create(ctx context.Context, data []byte) (*Board, error) {
	data, err := normalize(data)
	if err != nil {
		return nil, err
	}

	var b Board
	err = s.pool.QueryRow(ctx,
		`INSERT INTO board_snapshots (id, data) VALUES ($1, $2)
		 RETURNING id, data, version, created_at, updated_at`,
		typeid.NewBoardID(), data,
	).Scan(&b.ID, &b.Data, &b.Version, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	return &b, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Board, error) {
	var b Board
	err := s.pool.QueryRow(ctx,
		`SELECT id, data, version, created_at, updated_at FROM board_snapshots WHERE id = $1`,
		id,
	).Scan(&b.ID, &b.Data, &b.Version, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get board: %w", err)
	}
	return &b, nil
}

// Save replaces the scene of an existing board and bumps its version.
func (s *Store) Save(ctx context.Context, id string, data []byte) (*Board, error) {
	data, err := normalize(data)
	if err != nil {
		return nil, err
	}

	var b Board
	err = s.pool.QueryRow(ctx,
		`UPDATE board_snapshots SET data = $2, version = version + 1, updated_at = now()
		 WHERE id = $1
		 RETURNING id, data, version, created_at, updated_at`,
		id, data,
	).Scan(&b.ID, &b.Data, &b.Version, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("save board: %w", err)
	}
	return &b, nil
}

// LoadScene returns the latest scene JSON of a board.
func (s *Store) LoadScene(ctx context.Context, id string) ([]byte, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return b.Data, nil
}

// SaveScene stores scene JSON for a board, creating the row when it does not exist yet.
func (s *Store) SaveScene(ctx context.Context, id string, data []byte) error {
	data, err := normalize(data)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO board_snapshots (id, data) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data,
		   version = board_snapshots.version + 1, updated_at = now()`,
		id, data,
	)
	if err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	return nil
}

// normalize validates scene JSON and re-encodes it in canonical form.
func normalize(data []byte) ([]byte, error) {
	if len(data) == 0 {
		data = []byte(`{"elements":[]}`)
	}
	parsed, err := document.ParseData(data)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(parsed)
	if err != nil {
		return nil, fmt.Errorf("encode scene data: %w", err)
	}
	return out, nil
}
