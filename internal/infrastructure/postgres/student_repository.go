package postgres

import (
	"context"
	"errors"

	domain "senprep/backend/internal/domain/auth"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgxpool.Pool the repositories rely on.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StudentRepository persists students in PostgreSQL.
type StudentRepository struct {
	db Querier
}

// NewStudentRepository constructs a repository.
func NewStudentRepository(db Querier) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create inserts a new student record. The unique indexes on email and
// matric_number arbitrate concurrent registrations.
func (r *StudentRepository) Create(ctx context.Context, student *domain.Student) error {
	const query = `
INSERT INTO students (id, name, email, matric_number, level, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err := r.db.Exec(ctx, query,
		student.ID,
		student.Name,
		student.Email,
		student.MatricNumber,
		student.Level,
		student.PasswordHash,
		student.CreatedAt,
		student.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCredential
		}
		return err
	}
	return nil
}

// GetByEmail fetches a student by email.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	const query = `
SELECT id, name, email, matric_number, level, password_hash, created_at, updated_at
FROM students WHERE email = $1
`
	return r.get(ctx, query, email)
}

// GetByMatricNumber fetches a student by matric number.
func (r *StudentRepository) GetByMatricNumber(ctx context.Context, matricNumber string) (*domain.Student, error) {
	const query = `
SELECT id, name, email, matric_number, level, password_hash, created_at, updated_at
FROM students WHERE matric_number = $1
`
	return r.get(ctx, query, matricNumber)
}

// GetByID retrieves a student by id.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	const query = `
SELECT id, name, email, matric_number, level, password_hash, created_at, updated_at
FROM students WHERE id = $1
`
	return r.get(ctx, query, id)
}

func (r *StudentRepository) get(ctx context.Context, query string, arg any) (*domain.Student, error) {
	row := r.db.QueryRow(ctx, query, arg)
	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return student, nil
}

func scanStudent(row pgx.Row) (*domain.Student, error) {
	var st domain.Student
	err := row.Scan(
		&st.ID,
		&st.Name,
		&st.Email,
		&st.MatricNumber,
		&st.Level,
		&st.PasswordHash,
		&st.CreatedAt,
		&st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	st.Role = domain.RoleStudent
	return &st, nil
}
