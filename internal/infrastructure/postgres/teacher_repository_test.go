package postgres

import (
	"context"
	"testing"
	"time"

	domain "senprep/backend/internal/domain/auth"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTeacher() *domain.Teacher {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Teacher{
		ID:           "22222222-2222-2222-2222-222222222222",
		Name:         "T",
		Email:        "t@x.com",
		Role:         domain.RoleTeacher,
		PasswordHash: "$2a$10$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestTeacherCreateMapsUniqueViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	teacher := testTeacher()
	mock.ExpectExec("INSERT INTO teachers").
		WithArgs(teacher.ID, teacher.Name, teacher.Email, teacher.PasswordHash, teacher.CreatedAt, teacher.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "teachers_email_key"})

	repo := NewTeacherRepository(mock)
	err = repo.Create(context.Background(), teacher)
	require.ErrorIs(t, err, domain.ErrDuplicateCredential)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherGetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	teacher := testTeacher()
	rows := pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
		AddRow(teacher.ID, teacher.Name, teacher.Email, teacher.PasswordHash, teacher.CreatedAt, teacher.UpdatedAt)
	mock.ExpectQuery("SELECT (.+) FROM teachers WHERE email").
		WithArgs(teacher.Email).
		WillReturnRows(rows)

	repo := NewTeacherRepository(mock)
	got, err := repo.GetByEmail(context.Background(), teacher.Email)
	require.NoError(t, err)
	assert.Equal(t, teacher.ID, got.ID)
	assert.Equal(t, domain.RoleTeacher, got.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM teachers WHERE id").
		WithArgs("missing-id").
		WillReturnError(pgx.ErrNoRows)

	repo := NewTeacherRepository(mock)
	_, err = repo.GetByID(context.Background(), "missing-id")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
