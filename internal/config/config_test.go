package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "Valid development config",
			cfg:  Config{Port: "8190", JWTSecret: "dev-secret", Env: "development"},
		},
		{
			name:    "Missing port",
			cfg:     Config{JWTSecret: "dev-secret"},
			wantErr: true,
		},
		{
			name:    "Missing JWT secret",
			cfg:     Config{Port: "8190"},
			wantErr: true,
		},
		{
			name: "Production rejects default JWT secret",
			cfg: Config{
				Port:      "8190",
				JWTSecret: "your-secret-key-change-in-production",
				Env:       "production",
			},
			wantErr: true,
		},
		{
			name: "Production rejects short JWT secret",
			cfg: Config{
				Port:       "8190",
				JWTSecret:  "short",
				DBPassword: "s3cure-enough-for-tests",
				Env:        "production",
			},
			wantErr: true,
		},
		{
			name: "Production rejects default DB password",
			cfg: Config{
				Port:       "8190",
				JWTSecret:  "a-sufficiently-long-production-secret",
				DBPassword: "password",
				Env:        "production",
			},
			wantErr: true,
		},
		{
			name: "Valid production config",
			cfg: Config{
				Port:       "8190",
				JWTSecret:  "a-sufficiently-long-production-secret",
				DBPassword: "s3cure-enough-for-tests",
				DBSSLMode:  "require",
				Env:        "production",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
