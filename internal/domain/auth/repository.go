package auth

import "context"

// StudentRepository defines persistence operations for students.
type StudentRepository interface {
	Create(ctx context.Context, student *Student) error
	GetByEmail(ctx context.Context, email string) (*Student, error)
	GetByMatricNumber(ctx context.Context, matricNumber string) (*Student, error)
	GetByID(ctx context.Context, id string) (*Student, error)
}

// TeacherRepository defines persistence operations for teachers.
type TeacherRepository interface {
	Create(ctx context.Context, teacher *Teacher) error
	GetByEmail(ctx context.Context, email string) (*Teacher, error)
	GetByID(ctx context.Context, id string) (*Teacher, error)
}
