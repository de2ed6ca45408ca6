package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReturnsSetupErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unsupported storage",
			env:     map[string]string{"TICKETBOARD_STORAGE_TYPE": "ftp"},
			wantErr: "unsupported storage type",
		},
		{
			name: "unusable postgres dsn",
			env: map[string]string{
				"TICKETBOARD_STORAGE_TYPE": "postgres",
				"TICKETBOARD_POSTGRES_DSN": "postgres://%zz",
			},
			wantErr: "failed to set up postgres ticket repository",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TICKETBOARD_API_KEY", "secret")
			t.Setenv("TICKETBOARD_STORAGE_BASE_DIR", t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			err := run()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
