package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	t.Setenv("TICKETBOARD_API_KEY", "secret")

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "local", env.Env)
	assert.Equal(t, ":8080", env.Addr())
	assert.Equal(t, "local", env.StorageEnv.Type)
	assert.Equal(t, int32(10), env.MaxConns)
	assert.Equal(t, 5*time.Second, env.QueryTimeout)
	assert.True(t, env.IsLocal())
}

func TestLoadEnvRequiresAPIKey(t *testing.T) {
	t.Setenv("TICKETBOARD_API_KEY", "")
	_, err := LoadEnv()
	assert.Error(t, err)
}

func TestLoadEnvStorageValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{name: "s3 without bucket", env: map[string]string{"TICKETBOARD_STORAGE_TYPE": "s3"}, wantErr: true},
		{name: "s3 with bucket", env: map[string]string{"TICKETBOARD_STORAGE_TYPE": "s3", "TICKETBOARD_S3_BUCKET": "b"}},
		{name: "postgres without dsn", env: map[string]string{"TICKETBOARD_STORAGE_TYPE": "postgres"}, wantErr: true},
		{name: "postgres with dsn", env: map[string]string{"TICKETBOARD_STORAGE_TYPE": "postgres", "TICKETBOARD_POSTGRES_DSN": "postgres://localhost/db"}},
		{name: "unknown type", env: map[string]string{"TICKETBOARD_STORAGE_TYPE": "memory"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TICKETBOARD_API_KEY", "secret")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadEnv()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, (&BaseEnv{LogLevel: "warn"}).SlogLevel())
	assert.Equal(t, slog.LevelDebug, (&BaseEnv{LogLevel: "nonsense"}).SlogLevel())
	var nilEnv *BaseEnv
	assert.Equal(t, slog.LevelDebug, nilEnv.SlogLevel())
}
