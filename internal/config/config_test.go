package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name: "Development Defaults",
			config: Config{
				Env:        "development",
				Port:       "8003",
				DBName:     "feed_db",
				DBPassword: "password",
				DBSSLMode:  "disable",
			},
			expectError: false,
		},
		{
			name: "Missing Port",
			config: Config{
				Env:    "development",
				DBName: "feed_db",
			},
			expectError: true,
		},
		{
			name: "Production With Default Password",
			config: Config{
				Env:        "production",
				Port:       "8003",
				DBName:     "feed_db",
				DBPassword: "password",
				DBSSLMode:  "require",
			},
			expectError: true,
		},
		{
			name: "Production With Disabled SSL",
			config: Config{
				Env:        "production",
				Port:       "8003",
				DBName:     "feed_db",
				DBPassword: "s3cure-enough-password",
				DBSSLMode:  "disable",
			},
			expectError: true,
		},
		{
			name: "Production Valid",
			config: Config{
				Env:        "production",
				Port:       "8003",
				DBName:     "feed_db",
				DBPassword: "s3cure-enough-password",
				DBSSLMode:  "require",
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer viper.Reset()

	os.Setenv("APP_ENV", "test")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "8003", cfg.Port)
	assert.Equal(t, "feed_db", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
}

func TestLoadConfig_SSLModeNormalization(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("DB_SSLMODE")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")
	os.Setenv("DB_SSLMODE", "  DISABLE  ")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "disable", cfg.DBSSLMode)
}
