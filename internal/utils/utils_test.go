package utils

import (
	"crypto/tls"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPostgresDSNFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PG_HOST", "PG_PORT", "PG_USER", "PG_PASSWORD", "PG_DB", "PG_SSLMODE"} {
		t.Setenv(k, "")
	}
	assert.Equal(t, "postgres://postgres@localhost:5432/zodiac?sslmode=disable", BuildPostgresDSNFromEnv())
}

func TestBuildPostgresDSNFromEnv_Overrides(t *testing.T) {
	t.Setenv("PG_HOST", "db")
	t.Setenv("PG_PORT", "6543")
	t.Setenv("PG_USER", "app")
	t.Setenv("PG_PASSWORD", "p@ss")
	t.Setenv("PG_DB", "signs")
	t.Setenv("PG_SSLMODE", "require")
	assert.Equal(t, "postgres://app:p%40ss@db:6543/signs?sslmode=require", BuildPostgresDSNFromEnv())
}

func TestOpenPostgresFromEnv_DoesNotDial(t *testing.T) {
	t.Setenv("PG_HOST", "127.0.0.1")
	t.Setenv("PG_PORT", "1")
	db, err := OpenPostgresFromEnv()
	require.NoError(t, err)
	assert.NoError(t, db.Close())
}

func TestOpenRedisFromEnv(t *testing.T) {
	t.Setenv("REDIS_ENABLE", "")
	assert.Nil(t, OpenRedisFromEnv())

	t.Setenv("REDIS_ENABLE", "true")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "-3")
	rc := OpenRedisFromEnv()
	require.NotNil(t, rc)
	defer rc.Close()
	assert.Equal(t, "cache:6380", rc.Options().Addr)
	assert.Equal(t, 0, rc.Options().DB)
}

func TestEnsureSelfSignedCert(t *testing.T) {
	dir := t.TempDir()
	cert := filepath.Join(dir, "certs", "server.crt")
	key := filepath.Join(dir, "certs", "server.key")

	require.NoError(t, EnsureSelfSignedCert(cert, key, "zodiac.local"))
	_, err := tls.LoadX509KeyPair(cert, key)
	require.NoError(t, err)

	info, err := os.Stat(cert)
	require.NoError(t, err)
	mod := info.ModTime()

	// 已存在时不重写
	require.NoError(t, EnsureSelfSignedCert(cert, key, "zodiac.local"))
	info, err = os.Stat(cert)
	require.NoError(t, err)
	assert.Equal(t, mod, info.ModTime())
}
