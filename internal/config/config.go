// Package config loads and validates the YAML configuration that carries
// the synchronization core's ambient tuning knobs (retry and backoff
// floors/ceilings, timeouts, the health log backend). Grounded on the
// teacher's src/config/config.go Config-wraps-MConfig pattern.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"termbridge/internal/models"
)

// Config wraps models.MConfig and provides business logic methods.
type Config struct {
	*models.MConfig
}

// defaults mirrors the constants named in spec.md §5/§9 so a config file
// only needs to override what it wants to change.
func defaults() models.MConfig {
	return models.MConfig{
		LogLevel:  "info",
		AdminHost: "127.0.0.1",
		AdminPort: 8181,
		Sync: models.MSyncConfig{
			SynchronizeInitialRetrySeconds: 1,
			SynchronizeMaxRetrySeconds:     300,
			SubscribeInitialBackoffSeconds: 3,
			SubscribeMaxBackoffSeconds:     300,
			WaitSynchronizedTimeoutSeconds: 300,
			WaitSynchronizedIntervalMillis: 1000,
		},
		Ordering: models.MOrderingConfig{
			WaitListCapacity:             100,
			PacketOrderingTimeoutSeconds: 60,
		},
	}
}

// New builds a Config from a YAML file, falling back to the ambient
// defaults for any field the file does not set. A field the file sets
// explicitly to zero keeps that zero.
func New(configPath string) (*Config, error) {
	modelConfig := defaults()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return config, nil
}

// Validate performs basic configuration validation.
func (c *Config) Validate() error {
	if c.Transport.URL == "" {
		return fmt.Errorf("transport url cannot be empty")
	}
	if c.Sync.SynchronizeInitialRetrySeconds <= 0 {
		return fmt.Errorf("synchronize_initial_retry_seconds must be greater than 0")
	}
	if c.Sync.SynchronizeMaxRetrySeconds < c.Sync.SynchronizeInitialRetrySeconds {
		return fmt.Errorf("synchronize_max_retry_seconds cannot be less than the initial retry")
	}
	if c.Sync.SubscribeInitialBackoffSeconds <= 0 {
		return fmt.Errorf("subscribe_initial_backoff_seconds must be greater than 0")
	}
	if c.Sync.SubscribeMaxBackoffSeconds < c.Sync.SubscribeInitialBackoffSeconds {
		return fmt.Errorf("subscribe_max_backoff_seconds cannot be less than the initial backoff")
	}
	if c.Sync.WaitSynchronizedTimeoutSeconds <= 0 {
		return fmt.Errorf("wait_synchronized_timeout_seconds must be greater than 0")
	}
	if c.Ordering.WaitListCapacity <= 0 {
		return fmt.Errorf("wait_list_capacity must be greater than 0")
	}
	if c.Ordering.PacketOrderingTimeoutSeconds <= 0 {
		return fmt.Errorf("packet_ordering_timeout_seconds must be greater than 0")
	}
	if c.HealthLog.Enabled {
		if c.HealthLog.Driver != "sqlite" && c.HealthLog.Driver != "postgres" {
			return fmt.Errorf("health_log.driver must be 'sqlite' or 'postgres'")
		}
		if c.HealthLog.DSN == "" {
			return fmt.Errorf("health_log.dsn cannot be empty when health_log is enabled")
		}
	}
	return nil
}

// Save persists the current configuration to the specified YAML file path.
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}
	return nil
}
