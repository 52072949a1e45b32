package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration, loaded from an optional yaml file and
// overridable through environment variables.
type Config struct {
	Port     string         `yaml:"port"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	NATS     NATSConfig     `yaml:"nats"`
}

// SnapshotConfig selects the persistence backend for auction snapshots
type SnapshotConfig struct {
	Backend string `yaml:"backend"` // "none", "file" or "postgres"
	Path    string `yaml:"path"`    // file backend only
}

// NATSConfig enables the outbound event feed when URL is set
type NATSConfig struct {
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

func defaultConfig() Config {
	return Config{
		Port: "8080",
		Snapshot: SnapshotConfig{
			Backend: "file",
			Path:    "asta-snapshot.json",
		},
		NATS: NATSConfig{
			SubjectPrefix: "asta.events",
		},
	}
}

func loadConfig(path string) (Config, error) {
	config := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return config, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	config.Port = getEnv("PORT", config.Port)
	config.Snapshot.Backend = getEnv("SNAPSHOT_BACKEND", config.Snapshot.Backend)
	config.Snapshot.Path = getEnv("SNAPSHOT_PATH", config.Snapshot.Path)
	config.NATS.URL = getEnv("NATS_URL", config.NATS.URL)
	config.NATS.SubjectPrefix = getEnv("NATS_SUBJECT_PREFIX", config.NATS.SubjectPrefix)

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
