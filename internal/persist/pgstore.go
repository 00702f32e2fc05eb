package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PGStore keeps save data in a Postgres table, one row per (slot, key).
type PGStore struct {
	db *DB
}

func NewPGStore(db *DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Get(ctx context.Context, slot, key string) ([]byte, bool, error) {
	var data []byte
	err := s.db.Pool.QueryRow(ctx,
		`SELECT data FROM game_saves WHERE slot = $1 AND key = $2`,
		slot, key,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load save %s/%s: %w", slot, key, err)
	}
	return data, true, nil
}

func (s *PGStore) Put(ctx context.Context, slot, key string, data []byte) error {
	_, err := s.db.Pool.Exec(ctx,
		`INSERT INTO game_saves (slot, key, data, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (slot, key) DO UPDATE SET data = $3, updated_at = now()`,
		slot, key, data,
	)
	if err != nil {
		return fmt.Errorf("write save %s/%s: %w", slot, key, err)
	}
	return nil
}

func (s *PGStore) Clear(ctx context.Context, slot string) error {
	_, err := s.db.Pool.Exec(ctx,
		`DELETE FROM game_saves WHERE slot = $1`, slot,
	)
	if err != nil {
		return fmt.Errorf("clear save slot %s: %w", slot, err)
	}
	return nil
}
