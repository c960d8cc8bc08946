package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_NAME", "missing")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServicePort)
	assert.Equal(t, 30, cfg.License.DefaultDays)
	assert.Equal(t, 5*time.Second, cfg.Purchase.LockTimeout)
	assert.Equal(t, time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, jwt.SigningMethodHS256, cfg.JWT.SigningMethod)
	assert.Equal(t, "package-artifacts", cfg.MinIO.Bucket)
}

func TestNewConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CONFIG_NAME", "")

	toml := `
ServiceHost = "127.0.0.1"
ServicePort = 9090

[License]
DefaultDays = 14

[Purchase]
LockTimeout = "2s"

[Redis]
Host = "redis.local"
Port = 6380
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o600))
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("REDIS_PORT", "6390")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.ServiceHost)
	assert.Equal(t, 9090, cfg.ServicePort)
	assert.Equal(t, 14, cfg.License.DefaultDays)
	assert.Equal(t, 2*time.Second, cfg.Purchase.LockTimeout)
	assert.Equal(t, "redis.local", cfg.Redis.Host)
	assert.Equal(t, 6390, cfg.Redis.Port)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
}

func TestNewConfig_RejectsNonPositiveDefaultDays(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_NAME", "missing")
	t.Setenv("LICENSE_DEFAULTDAYS", "0")

	_, err := NewConfig()
	assert.Error(t, err)
}
