package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/family_crisis_hub/internal/statestore"
)

// PostgresStateBackend хранит срезы состояния в таблице app_state
type PostgresStateBackend struct {
	db *pgxpool.Pool
}

func NewPostgresStateBackend(db *pgxpool.Pool) statestore.Backend {
	return &PostgresStateBackend{db: db}
}

// Get возвращает сырое JSON-значение ключа
func (r *PostgresStateBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := `SELECT value FROM app_state WHERE key = $1;`
	var raw []byte
	err := r.db.QueryRow(ctx, query, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get state %s: %w", key, err)
	}
	return raw, true, nil
}

// Put перезаписывает значение ключа целиком
func (r *PostgresStateBackend) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO app_state (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW();
	`
	if _, err := r.db.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to put state %s: %w", key, err)
	}
	return nil
}

func (r *PostgresStateBackend) Delete(ctx context.Context, key string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM app_state WHERE key = $1;`, key); err != nil {
		return fmt.Errorf("failed to delete state %s: %w", key, err)
	}
	return nil
}
