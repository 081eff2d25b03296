package config_test

import (
	"testing"
	"time"

	"go-careermatch-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Should read failed-login tracking settings from the environment", func(t *testing.T) {
		t.Setenv("FAILED_LOGIN_MAX_ATTEMPTS", "3")
		t.Setenv("FAILED_LOGIN_BLOCK_MINUTES", "30")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.FailedLoginMaxAttempts)
		assert.Equal(t, 30, cfg.FailedLoginBlockMinutes)
	})

	t.Run("Should fall back to defaults for unset or invalid integers", func(t *testing.T) {
		t.Setenv("FAILED_LOGIN_MAX_ATTEMPTS", "not-a-number")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.FailedLoginMaxAttempts)
		assert.Equal(t, 30*time.Minute, cfg.ResetTokenTTL)
	})
}
