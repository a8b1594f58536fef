package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "senprep/backend/internal/domain/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost balances brute-force resistance against login latency.
const DefaultBcryptCost = 10

// Service coordinates authentication workflows between domain and infrastructure.
type Service struct {
	students domain.StudentRepository
	teachers domain.TeacherRepository
	tokens   TokenManager
	cost     int
	nowFunc  func() time.Time
}

// NewService constructs an auth service. A cost of zero selects the default
// bcrypt work factor; out-of-range values are clamped to bcrypt's limits.
func NewService(students domain.StudentRepository, teachers domain.TeacherRepository, tokens TokenManager, cost int) *Service {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Service{
		students: students,
		teachers: teachers,
		tokens:   tokens,
		cost:     cost,
		nowFunc:  time.Now,
	}
}

// RegisterStudentInput is the payload for student signup.
type RegisterStudentInput struct {
	Name         string
	Email        string
	Password     string
	MatricNumber string
	Level        string
	Role         string
}

// RegisterTeacherInput is the payload for teacher signup.
type RegisterTeacherInput struct {
	Name     string
	Email    string
	Password string
}

// Principal identifies an authenticated student or teacher.
type Principal struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// RegisterStudent creates a new student and immediately issues a session
// token so the student is signed in after signup.
func (s *Service) RegisterStudent(ctx context.Context, input RegisterStudentInput) (*domain.Student, string, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)
	matric := strings.TrimSpace(input.MatricNumber)
	if email == "" {
		return nil, "", domain.Validation("email is required")
	}
	if password == "" {
		return nil, "", domain.Validation("password is required")
	}
	if matric == "" {
		return nil, "", domain.Validation("matric number is required")
	}
	if role := strings.TrimSpace(strings.ToLower(input.Role)); role != "" && role != string(domain.RoleStudent) {
		return nil, "", domain.Validation("role must be student")
	}

	// Pre-check both unique keys; the database unique indexes remain the
	// arbiter under concurrent registrations.
	if _, err := s.students.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrDuplicateCredential
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}
	if _, err := s.students.GetByMatricNumber(ctx, matric); err == nil {
		return nil, "", domain.ErrDuplicateCredential
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, "", err
	}

	now := s.nowFunc().UTC()
	student := &domain.Student{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		MatricNumber: matric,
		Level:        strings.TrimSpace(input.Level),
		Role:         domain.RoleStudent,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(student.ID, domain.RoleStudent)
	if err != nil {
		return nil, "", err
	}

	return sanitizeStudent(student), token, nil
}

// RegisterTeacher creates a new teacher. Unlike student signup no token is
// issued; teachers log in separately after registering.
func (s *Service) RegisterTeacher(ctx context.Context, input RegisterTeacherInput) (*domain.Teacher, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)
	if email == "" {
		return nil, domain.Validation("email is required")
	}
	if password == "" {
		return nil, domain.Validation("password is required")
	}

	if _, err := s.teachers.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateCredential
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	now := s.nowFunc().UTC()
	teacher := &domain.Teacher{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Role:         domain.RoleTeacher,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.teachers.Create(ctx, teacher); err != nil {
		return nil, err
	}

	return sanitizeTeacher(teacher), nil
}

// LoginStudent validates student credentials and returns a token plus the
// student. The identifier may be an email address or a matric number.
func (s *Service) LoginStudent(ctx context.Context, creds domain.Credentials) (string, *domain.Student, error) {
	identifier := strings.TrimSpace(strings.ToLower(creds.Identifier))
	password := strings.TrimSpace(creds.Password)
	if identifier == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	student, err := s.students.GetByEmail(ctx, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		student, err = s.students.GetByMatricNumber(ctx, strings.TrimSpace(creds.Identifier))
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(student.ID, domain.RoleStudent)
	if err != nil {
		return "", nil, err
	}

	return token, sanitizeStudent(student), nil
}

// LoginTeacher validates teacher credentials and returns a token plus the teacher.
func (s *Service) LoginTeacher(ctx context.Context, creds domain.Credentials) (string, *domain.Teacher, error) {
	email := strings.TrimSpace(strings.ToLower(creds.Identifier))
	password := strings.TrimSpace(creds.Password)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	teacher, err := s.teachers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(teacher.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(teacher.ID, domain.RoleTeacher)
	if err != nil {
		return "", nil, err
	}

	return token, sanitizeTeacher(teacher), nil
}

// VerifyToken validates a bearer token and returns the principal it names.
func (s *Service) VerifyToken(ctx context.Context, token string) (*Principal, error) {
	subjectID, role, err := s.tokens.Validate(token)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	switch role {
	case domain.RoleStudent:
		student, err := s.students.GetByID(ctx, subjectID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrTokenInvalid
			}
			return nil, err
		}
		return &Principal{ID: student.ID, Name: student.Name, Email: student.Email, Role: domain.RoleStudent}, nil
	case domain.RoleTeacher:
		teacher, err := s.teachers.GetByID(ctx, subjectID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrTokenInvalid
			}
			return nil, err
		}
		return &Principal{ID: teacher.ID, Name: teacher.Name, Email: teacher.Email, Role: domain.RoleTeacher}, nil
	default:
		return nil, domain.ErrTokenInvalid
	}
}

func sanitizeStudent(st *domain.Student) *domain.Student {
	if st == nil {
		return nil
	}
	copy := *st
	copy.PasswordHash = ""
	return &copy
}

func sanitizeTeacher(t *domain.Teacher) *domain.Teacher {
	if t == nil {
		return nil
	}
	copy := *t
	copy.PasswordHash = ""
	return &copy
}
