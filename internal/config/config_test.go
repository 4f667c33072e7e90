package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "test_secret")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, ":3000", cfg.Server.Addr)
	require.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	require.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	require.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
	require.Equal(t, "test_secret", cfg.JWT.Secret)
	require.Zero(t, cfg.JWT.TTL)
	require.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	require.Equal(t, "image", cfg.Storage.Bucket)
	require.Equal(t, 255*1024, cfg.Storage.ChunkSize)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingSecret(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "")

	_, err := Load("")
	require.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	settings := `
server:
  addr: ":9090"
jwt:
  secret: from_file
  ttl: 2h
storage:
  driver: local
  path: /tmp/images
log:
  format: console
`
	path := filepath.Join(dir, "settings.yml")
	require.NoError(t, os.WriteFile(path, []byte(settings), 0o600))

	t.Setenv("JWT_SECRET", "from_env")
	t.Setenv("DB_SOURCE", "postgres://u:p@db:5432/reviews")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Server.Addr)
	require.Equal(t, "from_env", cfg.JWT.Secret)
	require.Equal(t, 2*time.Hour, cfg.JWT.TTL)
	require.Equal(t, StorageDriverLocal, cfg.Storage.Driver)
	require.Equal(t, "/tmp/images", cfg.Storage.Path)
	require.Equal(t, "postgres://u:p@db:5432/reviews", cfg.DB.Source)
	require.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("JWT_SECRET=dotenv_secret\n"), 0o600))
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "dotenv_secret", cfg.JWT.Secret)
}

func TestLoad_InvalidDriver(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("STORAGE_DRIVER", "s3")

	_, err := Load("")
	require.Error(t, err)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
