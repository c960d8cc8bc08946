package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv(t *testing.T) {
	t.Run("explicit dsn wins", func(t *testing.T) {
		t.Setenv("DATABASE_DSN", "postgres://u:p@db/licenses")
		t.Setenv("DB_HOST", "ignored")
		assert.Equal(t, "postgres://u:p@db/licenses", FromEnv())
	})

	t.Run("built from parts", func(t *testing.T) {
		t.Setenv("DATABASE_DSN", "")
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("DB_USER", "postgres")
		t.Setenv("DB_PASS", "secret")
		t.Setenv("DB_NAME", "license_db")
		t.Setenv("DB_SSLMODE", "")

		assert.Equal(t,
			"host=localhost port=5433 user=postgres password=secret dbname=license_db sslmode=disable TimeZone=UTC",
			FromEnv())
	})
}

func TestFromEnvWithoutHost(t *testing.T) {
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("DB_HOST", "")
	assert.Empty(t, FromEnv())
}
