package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearFirebaseEnv blanks the identity fields so tests asserting the
// unconfigured state are unaffected by the surrounding environment.
func clearFirebaseEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PASTEBOOK_FIREBASE_API_KEY",
		"PASTEBOOK_FIREBASE_AUTH_DOMAIN",
		"PASTEBOOK_FIREBASE_PROJECT_ID",
		"PASTEBOOK_FIREBASE_STORAGE_BUCKET",
		"PASTEBOOK_FIREBASE_MESSAGING_SENDER_ID",
		"PASTEBOOK_FIREBASE_APP_ID",
	} {
		t.Setenv(key, "")
	}
}

func setFirebaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PASTEBOOK_FIREBASE_API_KEY", "key")
	t.Setenv("PASTEBOOK_FIREBASE_AUTH_DOMAIN", "example.firebaseapp.com")
	t.Setenv("PASTEBOOK_FIREBASE_PROJECT_ID", "example")
	t.Setenv("PASTEBOOK_FIREBASE_STORAGE_BUCKET", "example.appspot.com")
	t.Setenv("PASTEBOOK_FIREBASE_MESSAGING_SENDER_ID", "123456")
	t.Setenv("PASTEBOOK_FIREBASE_APP_ID", "1:123456:web:abc")
}

func TestLoad_Defaults(t *testing.T) {
	clearFirebaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "pastebook.db", cfg.DBPath)
}

func TestLoad_FirebaseComplete(t *testing.T) {
	setFirebaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Firebase.Configured())
	assert.Empty(t, cfg.Firebase.MissingFields())
	assert.Equal(t, "example", cfg.Firebase.ProjectID)
}

func TestLoad_FirebaseFieldMissing(t *testing.T) {
	setFirebaseEnv(t)
	t.Setenv("PASTEBOOK_FIREBASE_PROJECT_ID", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Firebase.Configured())
	assert.Equal(t, []string{"projectId"}, cfg.Firebase.MissingFields())
}

func TestLoad_FirebaseAllMissing(t *testing.T) {
	clearFirebaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Firebase.Configured())
	assert.Len(t, cfg.Firebase.MissingFields(), 6)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PASTEBOOK_LISTEN_ADDR", "0.0.0.0:9000")
	t.Setenv("PASTEBOOK_DB_PATH", "/tmp/cache.db")
	t.Setenv("PASTEBOOK_OWNER_ID", "u1")
	t.Setenv("PASTEBOOK_ID_TOKEN", "tok")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.ListenAddr)
	assert.Equal(t, "/tmp/cache.db", cfg.DBPath)
	assert.Equal(t, "u1", cfg.OwnerID)
	assert.Equal(t, "tok", cfg.IDToken)
}
