package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.HTTPPort)
		assert.Equal(t, 5432, cfg.DBPort)
		assert.Equal(t, 3*time.Hour, cfg.TokenTTL)
		assert.Equal(t, "donation_events", cfg.KafkaTopic)
		assert.Equal(t, time.Minute, cfg.ExpirySweepInterval)
		assert.Empty(t, cfg.KafkaBrokers)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("DB_PORT", "6543")
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
		t.Setenv("EXPIRY_SWEEP_INTERVAL", "0s")

		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, 6543, cfg.DBPort)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
		assert.Zero(t, cfg.ExpirySweepInterval)
		assert.Contains(t, cfg.DSN(), "port=6543")
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := FromEnv()
		assert.Error(t, err)
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("TOKEN_TTL", "three hours")

		_, err := FromEnv()
		assert.ErrorContains(t, err, "TOKEN_TTL")
	})
}
