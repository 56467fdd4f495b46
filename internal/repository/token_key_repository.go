package repository

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/docket-service/internal/domain"
)

// TokenKeyRepository reads the server-held signing key material.
type TokenKeyRepository interface {
	GetActive(ctx context.Context) (*domain.TokenKey, error)
}

type tokenKeyRepository struct {
	pool *pgxpool.Pool
}

// NewTokenKeyRepository returns a Postgres-backed implementation.
func NewTokenKeyRepository(pool *pgxpool.Pool) TokenKeyRepository {
	return &tokenKeyRepository{pool: pool}
}

const activeKeyQuery = `
        SELECT id, secret, status, created_at
        FROM token_keys WHERE status='active' LIMIT 1`

func (r *tokenKeyRepository) GetActive(ctx context.Context) (*domain.TokenKey, error) {
	return scanTokenKey(r.pool.QueryRow(ctx, activeKeyQuery))
}

// EnsureActiveKey returns the single active signing key, lazily creating one
// inside the caller's transaction when none exists. The partial unique index
// on token_keys(status) WHERE status='active' keeps concurrent bootstraps
// from producing two active keys.
func EnsureActiveKey(ctx context.Context, tx pgx.Tx) (*domain.TokenKey, error) {
	key, err := scanTokenKey(tx.QueryRow(ctx, activeKeyQuery))
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	secret, err := newKeySecret()
	if err != nil {
		return nil, err
	}

	const insert = `
        INSERT INTO token_keys (secret, status)
        VALUES ($1, 'active')
        ON CONFLICT (status) WHERE status='active' DO NOTHING`
	if _, err := tx.Exec(ctx, insert, secret); err != nil {
		return nil, err
	}

	return scanTokenKey(tx.QueryRow(ctx, activeKeyQuery))
}

func scanTokenKey(row pgx.Row) (*domain.TokenKey, error) {
	var key domain.TokenKey
	if err := row.Scan(&key.ID, &key.Secret, &key.Status, &key.CreatedAt); err != nil {
		return nil, err
	}
	return &key, nil
}

func newKeySecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
