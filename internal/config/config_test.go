package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://user:pw@localhost:5432/senprep")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "")
	t.Setenv("HTTP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.HTTPPort)
	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "senprep", cfg.JWTIssuer)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.True(t, cfg.InsecureJWTSecret, "missing JWT_SECRET must be flagged")
}

func TestLoadExplicitValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgresql://user:pw@db:5432/senprep")
	t.Setenv("JWT_SECRET", "real-secret")
	t.Setenv("JWT_EXPIRY", "30m")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("HTTP_PORT", "8080")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "postgres://user:pw@db:5432/senprep", cfg.DatabaseURL,
		"postgresql:// scheme must be normalised for pgx")
	assert.Equal(t, "real-secret", cfg.JWTSecret)
	assert.False(t, cfg.InsecureJWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestLoadAssemblesDSNFromPieces(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRES_URL", "")
	t.Setenv("PGURL", "")
	t.Setenv("PGHOST", "db.internal")
	t.Setenv("PGUSER", "senprep")
	t.Setenv("PGPASSWORD", "pw")
	t.Setenv("PGDATABASE", "senprep")
	t.Setenv("PGPORT", "5433")
	t.Setenv("PGSSLMODE", "disable")
	t.Setenv("JWT_SECRET", "s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://senprep:pw@db.internal:5433/senprep?sslmode=disable", cfg.DatabaseURL)
}

func TestLoadRequiresDatabase(t *testing.T) {
	for _, key := range []string{
		"DATABASE_URL", "POSTGRES_URL", "PGURL",
		"PGHOST", "POSTGRES_HOST", "PGUSER", "POSTGRES_USER",
	} {
		t.Setenv(key, "")
	}

	_, err := Load()
	require.Error(t, err)
}
