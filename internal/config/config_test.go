package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "categories_and_tags.json", cfg.MappingFile)
	assert.Equal(t, "address_cache.json", cfg.AddressCacheFile)
	assert.Equal(t, 2040, cfg.FallbackTermID)
	assert.Equal(t, "", cfg.MetricsAddr)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.False(t, cfg.KafkaEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("MAPPING_FILE", "custom_mapping.json")
	t.Setenv("ADDRESS_CACHE_FILE", "addr.json")
	t.Setenv("FALLBACK_TERM_ID", "99")
	t.Setenv("METRICS_ADDR", ":9090")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "geodir.listings")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "custom_mapping.json", cfg.MappingFile)
	assert.Equal(t, "addr.json", cfg.AddressCacheFile)
	assert.Equal(t, 99, cfg.FallbackTermID)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
}

func TestLoadInvalidFallbackTermID(t *testing.T) {
	for _, bad := range []string{"abc", "0", "-5"} {
		t.Run(bad, func(t *testing.T) {
			t.Setenv("FALLBACK_TERM_ID", bad)
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoadSinkTopicRequiresBrokers(t *testing.T) {
	t.Setenv("KAFKA_SINK_TOPIC", "geodir.listings")
	t.Setenv("KAFKA_BROKERS", " , ")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}
