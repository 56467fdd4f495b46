package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/docket-service/internal/domain"
)

// Sentinel errors surfaced by docket persistence.
var (
	ErrDocketAlreadyIssued = errors.New("an issued docket already exists for this student and exam type")
	ErrTokenNotRedeemable  = errors.New("token is not active")
)

// DocketRepository persists dockets and their verification tokens.
type DocketRepository interface {
	// CreateWithToken inserts the docket and its token row in one
	// transaction, bootstrapping the active signing key if needed. The
	// digest callback receives the active key secret and returns the
	// one-way token digest to store.
	CreateWithToken(ctx context.Context, docket *domain.Docket, digest func(keySecret string) string) error
	// GetByPayload resolves the latest docket for a token-less payload
	// prefix. Reissues after consumption share the prefix, so the most
	// recently issued row wins.
	GetByPayload(ctx context.Context, qrPayload string) (*domain.Docket, error)
	GetActiveToken(ctx context.Context, docketID int64) (*domain.DocketToken, error)
	// Redeem flips the token active->used and the docket issued->consumed
	// atomically. A second redeem finds no active row and fails with
	// ErrTokenNotRedeemable.
	Redeem(ctx context.Context, docketID int64, tokenDigest string) error
}

type docketRepository struct {
	pool *pgxpool.Pool
}

// NewDocketRepository returns a Postgres-backed implementation.
func NewDocketRepository(pool *pgxpool.Pool) DocketRepository {
	return &docketRepository{pool: pool}
}

func (r *docketRepository) CreateWithToken(ctx context.Context, docket *domain.Docket, digest func(keySecret string) string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	key, err := EnsureActiveKey(ctx, tx)
	if err != nil {
		return err
	}

	const insertDocket = `
        INSERT INTO dockets (ref, student_id, programme_id, exam_type, qr_payload, status, print_count, issued_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insertDocket,
		docket.Ref,
		docket.StudentID,
		docket.ProgrammeID,
		docket.ExamType,
		docket.QRPayload,
		docket.Status,
		docket.PrintCount,
		docket.IssuedAt,
	).Scan(&docket.ID, &docket.CreatedAt, &docket.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrDocketAlreadyIssued
		}
		return err
	}

	const insertToken = `
        INSERT INTO docket_tokens (docket_id, token_digest, status, issued_at)
        VALUES ($1,$2,'active',$3)`
	if _, err := tx.Exec(ctx, insertToken, docket.ID, digest(key.Secret), docket.IssuedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *docketRepository) GetByPayload(ctx context.Context, qrPayload string) (*domain.Docket, error) {
	const query = `
        SELECT id, ref, student_id, programme_id, exam_type, qr_payload, status, print_count, issued_at, created_at, updated_at
        FROM dockets WHERE qr_payload=$1
        ORDER BY issued_at DESC LIMIT 1`

	var docket domain.Docket
	if err := r.pool.QueryRow(ctx, query, qrPayload).Scan(
		&docket.ID,
		&docket.Ref,
		&docket.StudentID,
		&docket.ProgrammeID,
		&docket.ExamType,
		&docket.QRPayload,
		&docket.Status,
		&docket.PrintCount,
		&docket.IssuedAt,
		&docket.CreatedAt,
		&docket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &docket, nil
}

func (r *docketRepository) GetActiveToken(ctx context.Context, docketID int64) (*domain.DocketToken, error) {
	const query = `
        SELECT id, docket_id, token_digest, status, issued_at, created_at
        FROM docket_tokens WHERE docket_id=$1 AND status='active'`

	var token domain.DocketToken
	if err := r.pool.QueryRow(ctx, query, docketID).Scan(
		&token.ID,
		&token.DocketID,
		&token.TokenDigest,
		&token.Status,
		&token.IssuedAt,
		&token.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *docketRepository) Redeem(ctx context.Context, docketID int64, tokenDigest string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const useToken = `
        UPDATE docket_tokens SET status='used'
        WHERE docket_id=$1 AND token_digest=$2 AND status='active'`
	cmd, err := tx.Exec(ctx, useToken, docketID, tokenDigest)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTokenNotRedeemable
	}

	const consumeDocket = `
        UPDATE dockets SET status='consumed', updated_at=NOW()
        WHERE id=$1 AND status='issued'`
	cmd, err = tx.Exec(ctx, consumeDocket, docketID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTokenNotRedeemable
	}

	return tx.Commit(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
