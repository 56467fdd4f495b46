package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/docket-service/internal/domain"
)

// PaymentRepository persists balance top-ups.
type PaymentRepository interface {
	List(ctx context.Context, limit int) ([]domain.Payment, error)
	// Record looks up the student, inserts the payment row and increments
	// the balance in one transaction.
	Record(ctx context.Context, payment *domain.Payment) error
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository returns a Postgres-backed implementation.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

func (r *paymentRepository) List(ctx context.Context, limit int) ([]domain.Payment, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT pay.id, pay.receipt, pay.student_id, s.student_number, pay.amount, pay.reference, pay.created_at
        FROM payments pay
        JOIN students s ON pay.student_id = s.id
        ORDER BY pay.created_at DESC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var payment domain.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.Receipt,
			&payment.StudentID,
			&payment.StudentNumber,
			&payment.Amount,
			&payment.Reference,
			&payment.CreatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) Record(ctx context.Context, payment *domain.Payment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const lockStudent = `
        SELECT id FROM students WHERE student_number=$1 FOR UPDATE`
	if err := tx.QueryRow(ctx, lockStudent, payment.StudentNumber).Scan(&payment.StudentID); err != nil {
		return err
	}

	const insert = `
        INSERT INTO payments (receipt, student_id, amount, reference)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insert,
		payment.Receipt,
		payment.StudentID,
		payment.Amount,
		payment.Reference,
	).Scan(&payment.ID, &payment.CreatedAt); err != nil {
		return err
	}

	const credit = `
        UPDATE students SET balance = balance + $1, updated_at=NOW()
        WHERE id=$2`
	if _, err := tx.Exec(ctx, credit, payment.Amount, payment.StudentID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
