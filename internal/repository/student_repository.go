package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/docket-service/internal/domain"
)

// StudentRepository defines read access to student records.
type StudentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Student, error)
	GetByNumber(ctx context.Context, studentNumber string) (*domain.Student, error)
	ListEnrolledCourses(ctx context.Context, studentID int64) ([]domain.Course, error)
	Search(ctx context.Context, term string, limit int) ([]domain.Student, error)
}

type studentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository returns a Postgres-backed implementation.
func NewStudentRepository(pool *pgxpool.Pool) StudentRepository {
	return &studentRepository{pool: pool}
}

const studentColumns = `
        s.id, s.student_number, s.first_name, s.last_name,
        s.programme_id, p.programme_name, s.balance, s.password_hash,
        s.created_at, s.updated_at`

func scanStudent(row pgx.Row) (*domain.Student, error) {
	var student domain.Student
	if err := row.Scan(
		&student.ID,
		&student.StudentNumber,
		&student.FirstName,
		&student.LastName,
		&student.ProgrammeID,
		&student.ProgrammeName,
		&student.Balance,
		&student.PasswordHash,
		&student.CreatedAt,
		&student.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id int64) (*domain.Student, error) {
	const query = `
        SELECT` + studentColumns + `
        FROM students s
        JOIN programmes p ON s.programme_id = p.id
        WHERE s.id=$1`
	return scanStudent(r.pool.QueryRow(ctx, query, id))
}

func (r *studentRepository) GetByNumber(ctx context.Context, studentNumber string) (*domain.Student, error) {
	const query = `
        SELECT` + studentColumns + `
        FROM students s
        JOIN programmes p ON s.programme_id = p.id
        WHERE s.student_number=$1`
	return scanStudent(r.pool.QueryRow(ctx, query, studentNumber))
}

func (r *studentRepository) ListEnrolledCourses(ctx context.Context, studentID int64) ([]domain.Course, error) {
	const query = `
        SELECT c.id, c.course_name
        FROM enrollments e
        JOIN curriculum cu ON e.curriculum_id = cu.id
        JOIN courses c ON cu.course_id = c.id
        WHERE e.student_id=$1
        ORDER BY c.course_name ASC`

	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []domain.Course
	for rows.Next() {
		var course domain.Course
		if err := rows.Scan(&course.ID, &course.Name); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

func (r *studentRepository) Search(ctx context.Context, term string, limit int) ([]domain.Student, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
        SELECT` + studentColumns + `
        FROM students s
        JOIN programmes p ON s.programme_id = p.id
        WHERE s.student_number ILIKE $1 OR s.first_name ILIKE $1 OR s.last_name ILIKE $1
        ORDER BY s.student_number ASC
        LIMIT $2`

	rows, err := r.pool.Query(ctx, query, "%"+term+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []domain.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *student)
	}
	return students, rows.Err()
}
