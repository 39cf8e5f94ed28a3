package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "PAYMENT_DELAY", "RESUBMIT_DELAY", "DIALOG_IDLE_TTL", "JWT_SECRET"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.PaymentDelay)
	assert.Equal(t, 1500*time.Millisecond, cfg.ResubmitDelay)
	assert.Equal(t, 2*time.Hour, cfg.DialogIdleTTL)
	assert.Empty(t, cfg.JWTSecret, "no signing key is baked in")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PAYMENT_DELAY", "300ms")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 300*time.Millisecond, cfg.PaymentDelay)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestSigningKeyRefusesWeakSecrets(t *testing.T) {
	for _, secret := range []string{"", "default-secret-key-change-in-production", "changeme", "too-short-for-hs256"} {
		cfg := &Config{JWTSecret: secret}
		_, err := cfg.SigningKey()
		assert.Error(t, err, "secret %q", secret)
	}

	cfg := &Config{JWTSecret: "b7d1f0c2a9e84e6f93c5d2a1e0f7b6c4"}
	key, err := cfg.SigningKey()
	require.NoError(t, err)
	assert.Equal(t, []byte(cfg.JWTSecret), key)
}

func TestGoogleEnabledNeedsBothCredentials(t *testing.T) {
	assert.False(t, (&Config{GoogleClientID: "id"}).GoogleEnabled())
	assert.True(t, (&Config{GoogleClientID: "id", GoogleClientSecret: "s"}).GoogleEnabled())
}
