package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration structure.
type Config struct {
	Server       ServerConfig       `json:"server" yaml:"server"`
	Conceptarium ConceptariumConfig `json:"conceptarium" yaml:"conceptarium"`
	Source       string             `json:"source" yaml:"source"` // conceptarium, file, qdrant, postgres or neo4j
	Database     DatabaseConfig     `json:"database" yaml:"database"`
	Analysis     AnalysisConfig     `json:"analysis" yaml:"analysis"`
}

type ServerConfig struct {
	Port     int    `json:"port" yaml:"port"`
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// ConceptariumConfig points at the conceptarium's HTTP find endpoint.
type ConceptariumConfig struct {
	URL            string `json:"url" yaml:"url"`
	Token          string `json:"token" yaml:"token"`
	TopK           int    `json:"top_k" yaml:"top_k"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	// Dump is a JSON export read by the file source.
	Dump           string `json:"dump" yaml:"dump"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `json:"postgres" yaml:"postgres"`
	Neo4j    Neo4jConfig    `json:"neo4j" yaml:"neo4j"`
	Redis    RedisConfig    `json:"redis" yaml:"redis"`
	Qdrant   QdrantConfig   `json:"qdrant" yaml:"qdrant"`
}

type PostgresConfig struct {
	DSN string `json:"dsn" yaml:"dsn"`
}

type Neo4jConfig struct {
	URI      string `json:"uri" yaml:"uri"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`
}

type RedisConfig struct {
	URL        string `json:"url" yaml:"url"`
	TTLMinutes int    `json:"ttl_minutes" yaml:"ttl_minutes"`
}

type QdrantConfig struct {
	Host       string `json:"host" yaml:"host"`
	Port       int    `json:"port" yaml:"port"`
	Collection string `json:"collection" yaml:"collection"`
}

// AnalysisConfig holds the dashboard's analysis settings.
type AnalysisConfig struct {
	UTCOffset  int              `json:"utc_offset" yaml:"utc_offset"`
	Volume     VolumeConfig     `json:"volume" yaml:"volume"`
	Projection ProjectionConfig `json:"projection" yaml:"projection"`
}

type VolumeConfig struct {
	Probes    int     `json:"probes" yaml:"probes"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
	Seed      uint64  `json:"seed" yaml:"seed"`
	Workers   int     `json:"workers" yaml:"workers"`
}

type ProjectionConfig struct {
	Perplexity float64 `json:"perplexity" yaml:"perplexity"`
	Iterations int     `json:"iterations" yaml:"iterations"`
	Seed       uint64  `json:"seed" yaml:"seed"`
}

// Defaults applied by Load when a field is left at its zero value.
const (
	DefaultPort         = 8080
	DefaultTopK         = 100
	DefaultTimeout      = 30
	DefaultCacheTTL     = 60
	DefaultQdrantPort   = 6334
	DefaultCollection   = "thoughts"
	DefaultSource       = "conceptarium"
	DefaultVolumeProbes = 500000
	DefaultThreshold    = 0.19
)

// envVarRe matches ${VAR} and ${VAR:default} patterns.
var envVarRe = regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

// Format is the encoding of a config file.
type Format int

const (
	JSON Format = iota
	YAML
)

// Load reads a JSON or YAML config file, chosen by extension, and
// substitutes environment variable references.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	format := JSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = YAML
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse substitutes ${VAR} and ${VAR:default} in data, decodes it and
// fills in defaults.
func Parse(data []byte, format Format) (*Config, error) {
	resolved := envVarRe.ReplaceAllStringFunc(string(data), func(match string) string {
		parts := envVarRe.FindStringSubmatch(match)
		name := parts[1]
		defaultVal := parts[2]
		if v := os.Getenv(name); v != "" {
			return v
		}
		return defaultVal
	})

	var cfg Config
	switch format {
	case YAML:
		if err := yaml.Unmarshal([]byte(resolved), &cfg); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal([]byte(resolved), &cfg); err != nil {
			return nil, err
		}
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Source == "" {
		c.Source = DefaultSource
	}
	if c.Conceptarium.TopK == 0 {
		c.Conceptarium.TopK = DefaultTopK
	}
	if c.Conceptarium.TimeoutSeconds == 0 {
		c.Conceptarium.TimeoutSeconds = DefaultTimeout
	}
	if c.Database.Redis.TTLMinutes == 0 {
		c.Database.Redis.TTLMinutes = DefaultCacheTTL
	}
	if c.Database.Qdrant.Port == 0 {
		c.Database.Qdrant.Port = DefaultQdrantPort
	}
	if c.Database.Qdrant.Collection == "" {
		c.Database.Qdrant.Collection = DefaultCollection
	}
	if c.Analysis.Volume.Probes == 0 {
		c.Analysis.Volume.Probes = DefaultVolumeProbes
	}
	if c.Analysis.Volume.Threshold == 0 {
		c.Analysis.Volume.Threshold = DefaultThreshold
	}
}

// Validate checks the settings Load cannot default.
func (c *Config) Validate() error {
	if c.Analysis.UTCOffset < -12 || c.Analysis.UTCOffset > 14 {
		return fmt.Errorf("utc_offset %d out of range [-12, 14]", c.Analysis.UTCOffset)
	}
	if c.Analysis.Volume.Threshold <= -1 || c.Analysis.Volume.Threshold >= 1 {
		return fmt.Errorf("volume threshold %g out of range (-1, 1)", c.Analysis.Volume.Threshold)
	}
	switch c.Source {
	case "conceptarium":
		if c.Conceptarium.URL == "" {
			return fmt.Errorf("conceptarium source requires conceptarium.url")
		}
	case "file":
		if c.Conceptarium.Dump == "" {
			return fmt.Errorf("file source requires conceptarium.dump")
		}
	case "qdrant":
		if c.Database.Qdrant.Host == "" {
			return fmt.Errorf("qdrant source requires database.qdrant.host")
		}
	case "postgres":
		if c.Database.Postgres.DSN == "" {
			return fmt.Errorf("postgres source requires database.postgres.dsn")
		}
	case "neo4j":
		if c.Database.Neo4j.URI == "" {
			return fmt.Errorf("neo4j source requires database.neo4j.uri")
		}
	default:
		return fmt.Errorf("unknown source %q", c.Source)
	}
	return nil
}
