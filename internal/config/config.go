package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Config holds operational settings, populated from environment variables.
// Per-run options (input/output paths, filters, toggles) are CLI flags.
type Config struct {
	LogLevel  string
	LogFormat string

	// MappingFile is the category/tag name→ID table.
	MappingFile string
	// AddressCacheFile holds manually curated street addresses keyed by
	// business name, used with -use-address-cache.
	AddressCacheFile string

	// FallbackTermID is substituted for unmapped category/tag names.
	FallbackTermID int

	// MetricsAddr enables the /healthz, /readyz, /metrics server when set.
	// Empty disables it; the tool is one-shot and usually needs none.
	MetricsAddr string

	// Kafka sink configuration. When SinkTopic is set, every transformed
	// listing is also published as JSON for downstream import tooling.
	KafkaBrokers   []string
	KafkaSinkTopic string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	fallbackID, err := parseFallbackTermID()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		LogFormat:        envOrDefault("LOG_FORMAT", "text"),
		MappingFile:      envOrDefault("MAPPING_FILE", "categories_and_tags.json"),
		AddressCacheFile: envOrDefault("ADDRESS_CACHE_FILE", "address_cache.json"),
		FallbackTermID:   fallbackID,
		MetricsAddr:      os.Getenv("METRICS_ADDR"),
		KafkaBrokers:     parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic:   os.Getenv("KAFKA_SINK_TOPIC"),
	}

	if cfg.MappingFile == "" {
		return nil, errors.New("MAPPING_FILE is required")
	}
	if cfg.KafkaSinkTopic != "" && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_SINK_TOPIC is set but KAFKA_BROKERS is empty")
	}

	return cfg, nil
}

// KafkaEnabled reports whether transformed listings should also be published
// to the sink topic.
func (c *Config) KafkaEnabled() bool {
	return c.KafkaSinkTopic != ""
}

func parseFallbackTermID() (int, error) {
	s := os.Getenv("FALLBACK_TERM_ID")
	if s == "" {
		return 2040, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid FALLBACK_TERM_ID")
	}
	return n, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
