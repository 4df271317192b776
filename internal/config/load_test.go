package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "thisisasecretkeythatis32charslong!!"

// setupEnv sets up environment variables for testing
func setupEnv(t *testing.T, envVars map[string]string) func() {
	// Save current environment values
	originalValues := make(map[string]string)
	for name := range envVars {
		originalValues[name] = os.Getenv(name)
	}

	// Set new environment variables
	for name, value := range envVars {
		err := os.Setenv(name, value)
		require.NoError(t, err, "Failed to set environment variable %s", name)
	}

	// Return cleanup function
	return func() {
		for name, value := range originalValues {
			if value == "" {
				os.Unsetenv(name)
			} else {
				os.Setenv(name, value)
			}
		}
	}
}

// TestLoadDefaults verifies that Load fills in defaults when only the
// required secret is provided.
func TestLoadDefaults(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"SOCIAL_AUTH_JWT_SECRET":  testSecret,
		"SOCIAL_SERVER_PORT":      "",
		"SOCIAL_SERVER_LOG_LEVEL": "",
		"SOCIAL_NETWORK_NAME":     "",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultLogLevel, cfg.Server.LogLevel)
	assert.Equal(t, DefaultNetworkName, cfg.Network.Name)
	assert.Equal(t, DefaultTokenLifetimeMinutes, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, DefaultBcryptCost, cfg.Auth.BcryptCost)
}

// TestLoadFromEnv verifies that Load reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"SOCIAL_NETWORK_NAME":                "Twitter",
		"SOCIAL_SERVER_PORT":                 "9090",
		"SOCIAL_SERVER_LOG_LEVEL":            "debug",
		"SOCIAL_AUTH_JWT_SECRET":             testSecret,
		"SOCIAL_AUTH_TOKEN_LIFETIME_MINUTES": "15",
		"SOCIAL_AUTH_BCRYPT_COST":            "4",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with valid environment variables")
	require.NotNil(t, cfg)
	assert.Equal(t, "Twitter", cfg.Network.Name)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, 15, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
}

// TestLoadWithViperOverrides verifies that values set on the viper instance
// by the caller win over defaults.
func TestLoadWithViperOverrides(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"SOCIAL_AUTH_JWT_SECRET": testSecret,
		"SOCIAL_NETWORK_NAME":    "",
	})
	defer cleanup()

	v := viper.New()
	v.Set("network.name", "Facebook")

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	assert.Equal(t, "Facebook", cfg.Network.Name)
}

// TestLoadValidationErrors verifies that Load validates the configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name: "Missing JWT secret",
			envVars: map[string]string{
				"SOCIAL_AUTH_JWT_SECRET": "",
			},
		},
		{
			name: "Invalid port number",
			envVars: map[string]string{
				"SOCIAL_SERVER_PORT":     "999999",
				"SOCIAL_AUTH_JWT_SECRET": testSecret,
			},
		},
		{
			name: "Invalid log level",
			envVars: map[string]string{
				"SOCIAL_SERVER_LOG_LEVEL": "invalid-level",
				"SOCIAL_AUTH_JWT_SECRET":  testSecret,
			},
		},
		{
			name: "Short JWT secret",
			envVars: map[string]string{
				"SOCIAL_AUTH_JWT_SECRET": "tooshort",
			},
		},
		{
			name: "Bcrypt cost out of range",
			envVars: map[string]string{
				"SOCIAL_AUTH_JWT_SECRET":  testSecret,
				"SOCIAL_AUTH_BCRYPT_COST": "40",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cleanup := setupEnv(t, tc.envVars)
			defer cleanup()

			cfg, err := Load()

			assert.Error(t, err, "Load() should return an error with invalid configuration")
			if err != nil {
				assert.Contains(t, err.Error(), "validation failed")
			}
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}
