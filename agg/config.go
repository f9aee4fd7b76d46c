package agg

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// DefaultChunkSizeBytes is the target scan chunk size. Large chunks keep
// per-worker setup cost negligible against sequential read throughput.
const DefaultChunkSizeBytes = 512 << 20

// Config carries the aggregation engine's tunables. Non-positive fields
// mean "not set" and are filled from DefaultConfig by NewAggregator and
// LoadConfig, so a zero Config is always runnable.
type Config struct {
	ChunkSizeBytes int64    `yaml:"chunk_size_bytes"` // target bytes per scan chunk
	MaxWorkers     int      `yaml:"max_workers"`      // cap on concurrent scan workers
	GatewayMarkers []string `yaml:"gateway_markers"`  // module substrings marking gateways
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		ChunkSizeBytes: DefaultChunkSizeBytes,
		MaxWorkers:     runtime.NumCPU(),
		GatewayMarkers: DefaultGatewayMarkers,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ChunkSizeBytes <= 0 {
		c.ChunkSizeBytes = d.ChunkSizeBytes
	}
	if c.MaxWorkers <= 0 {
		c.MaxWorkers = d.MaxWorkers
	}
	if len(c.GatewayMarkers) == 0 {
		c.GatewayMarkers = d.GatewayMarkers
	}
	return c
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	if c.ChunkSizeBytes <= 0 {
		return fmt.Errorf("chunk_size_bytes must be positive, got %d", c.ChunkSizeBytes)
	}
	if c.MaxWorkers <= 0 {
		return fmt.Errorf("max_workers must be positive, got %d", c.MaxWorkers)
	}
	return nil
}

// LoadConfig reads a YAML config file, fills unset fields from defaults
// and validates the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	// a negative value in a config file is a mistake, not an omission
	if cfg.ChunkSizeBytes < 0 {
		return Config{}, fmt.Errorf("chunk_size_bytes must not be negative, got %d", cfg.ChunkSizeBytes)
	}
	if cfg.MaxWorkers < 0 {
		return Config{}, fmt.Errorf("max_workers must not be negative, got %d", cfg.MaxWorkers)
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
