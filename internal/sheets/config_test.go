package sheets

import (
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "oauth credentials",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "service account",
			mutate: func(c *Config) {
				c.ClientID = ""
				c.ClientSecret = ""
				c.RefreshToken = ""
				c.ServiceAccountPath = "/tmp/sa.json"
			},
			wantErr: false,
		},
		{
			name: "no auth",
			mutate: func(c *Config) {
				c.ClientID = ""
				c.ClientSecret = ""
				c.RefreshToken = ""
			},
			wantErr: true,
		},
		{
			name: "both auth methods",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/tmp/sa.json"
			},
			wantErr: true,
		},
		{
			name: "zero batch size",
			mutate: func(c *Config) {
				c.BatchSize = 0
			},
			wantErr: true,
		},
		{
			name: "negative retry attempts",
			mutate: func(c *Config) {
				c.RetryAttempts = -1
			},
			wantErr: true,
		},
		{
			name: "negative retry delay",
			mutate: func(c *Config) {
				c.RetryDelay = -time.Second
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ClientID = "client"
			cfg.ClientSecret = "secret"
			cfg.RefreshToken = "refresh"
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
