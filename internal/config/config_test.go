package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseSubstitutesEnv(t *testing.T) {
	t.Setenv("TEST_CONCEPTARIUM_URL", "http://conceptarium:8000")
	t.Setenv("TEST_OFFSET", "")

	cfg, err := Parse([]byte(`{
		"conceptarium": {"url": "${TEST_CONCEPTARIUM_URL}", "token": "${TEST_TOKEN:secret}"},
		"analysis": {"utc_offset": ${TEST_OFFSET:2}}
	}`), JSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Conceptarium.URL != "http://conceptarium:8000" {
		t.Errorf("url %q", cfg.Conceptarium.URL)
	}
	if cfg.Conceptarium.Token != "secret" {
		t.Errorf("token %q, want default", cfg.Conceptarium.Token)
	}
	if cfg.Analysis.UTCOffset != 2 {
		t.Errorf("offset %d, want 2 (empty env falls back to default)", cfg.Analysis.UTCOffset)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{"conceptarium": {"url": "http://x"}}`), JSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("port %d", cfg.Server.Port)
	}
	if cfg.Source != "conceptarium" {
		t.Errorf("source %q", cfg.Source)
	}
	if cfg.Conceptarium.TopK != DefaultTopK {
		t.Errorf("top_k %d", cfg.Conceptarium.TopK)
	}
	if cfg.Analysis.Volume.Probes != DefaultVolumeProbes || cfg.Analysis.Volume.Threshold != DefaultThreshold {
		t.Errorf("volume %+v", cfg.Analysis.Volume)
	}
	if cfg.Database.Qdrant.Collection != DefaultCollection || cfg.Database.Qdrant.Port != DefaultQdrantPort {
		t.Errorf("qdrant %+v", cfg.Database.Qdrant)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"offset", `{"conceptarium": {"url": "x"}, "analysis": {"utc_offset": 15}}`, "utc_offset"},
		{"threshold", `{"conceptarium": {"url": "x"}, "analysis": {"volume": {"threshold": 1.5}}}`, "threshold"},
		{"missing url", `{}`, "conceptarium.url"},
		{"postgres dsn", `{"source": "postgres"}`, "dsn"},
		{"unknown source", `{"source": "sqlite"}`, "unknown source"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json), JSON)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ideoscope.json")
	if err := os.WriteFile(path, []byte(`{"source": "neo4j", "database": {"neo4j": {"uri": "bolt://db:7687"}}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Neo4j.URI != "bolt://db:7687" {
		t.Errorf("uri %q", cfg.Database.Neo4j.URI)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadYAML(t *testing.T) {
	t.Setenv("TEST_QDRANT_HOST", "qdrant.internal")
	path := filepath.Join(t.TempDir(), "ideoscope.yaml")
	data := []byte(`
source: qdrant
database:
  qdrant:
    host: ${TEST_QDRANT_HOST}
    collection: notes
analysis:
  utc_offset: -5
  volume:
    probes: 1000
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Qdrant.Host != "qdrant.internal" || cfg.Database.Qdrant.Collection != "notes" {
		t.Errorf("qdrant %+v", cfg.Database.Qdrant)
	}
	if cfg.Database.Qdrant.Port != DefaultQdrantPort {
		t.Errorf("port %d, want default", cfg.Database.Qdrant.Port)
	}
	if cfg.Analysis.UTCOffset != -5 || cfg.Analysis.Volume.Probes != 1000 {
		t.Errorf("analysis %+v", cfg.Analysis)
	}
}

func TestShippedConfigParses(t *testing.T) {
	cfg, err := Load("../../configs/ideoscope.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Source != "conceptarium" && os.Getenv("IDEOSCOPE_SOURCE") == "" {
		t.Errorf("source %q", cfg.Source)
	}
}
