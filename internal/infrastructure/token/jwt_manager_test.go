package token

import (
	"testing"
	"time"

	domain "senprep/backend/internal/domain/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateValidateRoundTrip(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour, "senprep")

	tok, err := manager.Generate("student-1", domain.RoleStudent)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	subject, role, err := manager.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "student-1", subject)
	assert.Equal(t, domain.RoleStudent, role)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("secret", -time.Minute, "senprep")

	tok, err := manager.Generate("student-1", domain.RoleStudent)
	require.NoError(t, err)

	_, _, err = manager.Validate(tok)
	require.Error(t, err, "an expired token must be rejected")
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Hour, "senprep")
	verifier := NewJWTManager("secret-b", time.Hour, "senprep")

	tok, err := issuer.Generate("teacher-1", domain.RoleTeacher)
	require.NoError(t, err)

	_, _, err = verifier.Validate(tok)
	require.Error(t, err, "a token signed with another secret must be rejected")
}

func TestValidateRejectsGarbage(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour, "senprep")

	_, _, err := manager.Validate("definitely.not.a-jwt")
	require.Error(t, err)
}
