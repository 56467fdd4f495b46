package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/docket-service/internal/domain"
)

// ClearanceRepository reads per-student clearance rows. Mutation happens in
// external retention processes, never here.
type ClearanceRepository interface {
	GetByStudent(ctx context.Context, studentID int64) (*domain.Clearance, error)
}

type clearanceRepository struct {
	pool *pgxpool.Pool
}

// NewClearanceRepository returns a Postgres-backed implementation.
func NewClearanceRepository(pool *pgxpool.Pool) ClearanceRepository {
	return &clearanceRepository{pool: pool}
}

func (r *clearanceRepository) GetByStudent(ctx context.Context, studentID int64) (*domain.Clearance, error) {
	const query = `
        SELECT student_id, ca1_status, ca2_status, exam_status
        FROM clearances WHERE student_id=$1 LIMIT 1`

	var clearance domain.Clearance
	if err := r.pool.QueryRow(ctx, query, studentID).Scan(
		&clearance.StudentID,
		&clearance.CA1Status,
		&clearance.CA2Status,
		&clearance.ExamStatus,
	); err != nil {
		return nil, err
	}
	return &clearance, nil
}
