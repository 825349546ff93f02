// Package config loads application configuration from environment variables.
package config

import "os"

// firebaseEnv maps the six required identity fields to their env var names.
// All six must be present for the remote store to be considered configured.
var firebaseEnv = [...]struct {
	name string
	env  string
}{
	{"apiKey", "PASTEBOOK_FIREBASE_API_KEY"},
	{"authDomain", "PASTEBOOK_FIREBASE_AUTH_DOMAIN"},
	{"projectId", "PASTEBOOK_FIREBASE_PROJECT_ID"},
	{"storageBucket", "PASTEBOOK_FIREBASE_STORAGE_BUCKET"},
	{"messagingSenderId", "PASTEBOOK_FIREBASE_MESSAGING_SENDER_ID"},
	{"appId", "PASTEBOOK_FIREBASE_APP_ID"},
}

// FirebaseConfig holds the remote backend identity. Either all six fields are
// non-empty or the value is treated as absent; it is computed once at load
// and never re-evaluated.
type FirebaseConfig struct {
	APIKey            string
	AuthDomain        string
	ProjectID         string
	StorageBucket     string
	MessagingSenderID string
	AppID             string

	missing []string
}

// Configured reports whether every required identity field is present.
func (f FirebaseConfig) Configured() bool {
	return len(f.missing) == 0
}

// MissingFields returns the names of the required fields that were absent or
// empty at load time. Diagnostic only; an incomplete config is not an error.
func (f FirebaseConfig) MissingFields() []string {
	return f.missing
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Firebase   FirebaseConfig
	OwnerID    string
	IDToken    string
	ListenAddr string
	DBPath     string
}

// Load reads configuration from environment variables and returns a validated
// Config. The Firebase identity fields (PASTEBOOK_FIREBASE_*) are optional as
// a set; when any is missing the app runs against the local cache only.
// Optional variables with defaults: PASTEBOOK_LISTEN_ADDR (127.0.0.1:8080),
// PASTEBOOK_DB_PATH (pastebook.db).
func Load() (*Config, error) {
	fb := FirebaseConfig{}
	values := [...]*string{
		&fb.APIKey, &fb.AuthDomain, &fb.ProjectID,
		&fb.StorageBucket, &fb.MessagingSenderID, &fb.AppID,
	}
	for i, field := range firebaseEnv {
		v := os.Getenv(field.env)
		*values[i] = v
		if v == "" {
			fb.missing = append(fb.missing, field.name)
		}
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("PASTEBOOK_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "pastebook.db"
	if v, ok := os.LookupEnv("PASTEBOOK_DB_PATH"); ok {
		dbPath = v
	}

	return &Config{
		Firebase:   fb,
		OwnerID:    os.Getenv("PASTEBOOK_OWNER_ID"),
		IDToken:    os.Getenv("PASTEBOOK_ID_TOKEN"),
		ListenAddr: listenAddr,
		DBPath:     dbPath,
	}, nil
}
