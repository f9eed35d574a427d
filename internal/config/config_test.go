package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BasicConfig.ServerAddress != ":8080" {
		t.Fatalf("server address = %q", cfg.BasicConfig.ServerAddress)
	}
	if cfg.BasicConfig.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Fatalf("max upload = %d", cfg.BasicConfig.MaxUploadBytes)
	}
	if cfg.BasicConfig.PreviewRows != 5 {
		t.Fatalf("preview rows = %d", cfg.BasicConfig.PreviewRows)
	}
	if cfg.BasicConfig.MaxArchiveDepth != 5 {
		t.Fatalf("max archive depth = %d", cfg.BasicConfig.MaxArchiveDepth)
	}
	if cfg.LLM.Endpoint != DefaultEndpoint {
		t.Fatalf("endpoint = %q", cfg.LLM.Endpoint)
	}
	if cfg.LLM.TimeoutSeconds != 60 {
		t.Fatalf("llm timeout = %d", cfg.LLM.TimeoutSeconds)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"basic_config": {
			"server_address": ":9999",
			"max_upload_bytes": 1024,
			"max_archive_depth": 2
		},
		"llm": {
			"endpoint": "http://localhost:1234/generate",
			"token": "from-file"
		}
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BasicConfig.ServerAddress != ":9999" {
		t.Fatalf("server address = %q", cfg.BasicConfig.ServerAddress)
	}
	if cfg.BasicConfig.MaxUploadBytes != 1024 {
		t.Fatalf("max upload = %d", cfg.BasicConfig.MaxUploadBytes)
	}
	if cfg.BasicConfig.MaxArchiveDepth != 2 {
		t.Fatalf("max archive depth = %d", cfg.BasicConfig.MaxArchiveDepth)
	}
	if cfg.LLM.Endpoint != "http://localhost:1234/generate" {
		t.Fatalf("endpoint = %q", cfg.LLM.Endpoint)
	}
	if cfg.LLM.Token != "from-file" {
		t.Fatalf("token = %q", cfg.LLM.Token)
	}
	// unset values still get defaults
	if cfg.BasicConfig.PreviewRows != 5 {
		t.Fatalf("preview rows = %d", cfg.BasicConfig.PreviewRows)
	}
}

func TestLoadEnvTokenOverride(t *testing.T) {
	t.Setenv("LLM_FOUNDRY_TOKEN", "from-env")

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"llm": {"token": "from-file"}}`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LLM.Token != "from-env" {
		t.Fatalf("token = %q, env must win", cfg.LLM.Token)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed config")
	}
}
