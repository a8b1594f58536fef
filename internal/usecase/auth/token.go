package auth

import domain "senprep/backend/internal/domain/auth"

// TokenManager abstracts session token issuance and verification.
type TokenManager interface {
	Generate(subjectID string, role domain.Role) (string, error)
	Validate(token string) (subjectID string, role domain.Role, err error)
}
