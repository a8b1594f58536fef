package postgres

import (
	"context"
	"errors"

	domain "senprep/backend/internal/domain/auth"

	"github.com/jackc/pgx/v5"
)

// TeacherRepository persists teachers in PostgreSQL.
type TeacherRepository struct {
	db Querier
}

// NewTeacherRepository constructs a repository.
func NewTeacherRepository(db Querier) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// Create inserts a new teacher record.
func (r *TeacherRepository) Create(ctx context.Context, teacher *domain.Teacher) error {
	const query = `
INSERT INTO teachers (id, name, email, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err := r.db.Exec(ctx, query,
		teacher.ID,
		teacher.Name,
		teacher.Email,
		teacher.PasswordHash,
		teacher.CreatedAt,
		teacher.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCredential
		}
		return err
	}
	return nil
}

// GetByEmail fetches a teacher by email.
func (r *TeacherRepository) GetByEmail(ctx context.Context, email string) (*domain.Teacher, error) {
	const query = `
SELECT id, name, email, password_hash, created_at, updated_at
FROM teachers WHERE email = $1
`
	return r.get(ctx, query, email)
}

// GetByID retrieves a teacher by id.
func (r *TeacherRepository) GetByID(ctx context.Context, id string) (*domain.Teacher, error) {
	const query = `
SELECT id, name, email, password_hash, created_at, updated_at
FROM teachers WHERE id = $1
`
	return r.get(ctx, query, id)
}

func (r *TeacherRepository) get(ctx context.Context, query string, arg any) (*domain.Teacher, error) {
	row := r.db.QueryRow(ctx, query, arg)
	teacher, err := scanTeacher(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return teacher, nil
}

func scanTeacher(row pgx.Row) (*domain.Teacher, error) {
	var t domain.Teacher
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Email,
		&t.PasswordHash,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Role = domain.RoleTeacher
	return &t, nil
}
