package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents runtime configuration for the service.
type Config struct {
	BasicConfig BasicConfig               `json:"basic_config"`
	LLM         LLMConfig                 `json:"llm"`
	Databases   map[string]DatabaseConfig `json:"databases"`
	Redis       RedisConfig               `json:"redis"`
}

type BasicConfig struct {
	ServerAddress     string `json:"server_address"`
	WorkDir           string `json:"work_dir"`
	MaxUploadBytes    int64  `json:"max_upload_bytes"`
	PreviewRows       int    `json:"preview_rows"`
	MaxArchiveDepth   int    `json:"max_archive_depth"`
	CommandTimeout    int    `json:"command_timeout_seconds"`
	DiagnosticCommand string `json:"diagnostic_command"`
	FormatterCommand  string `json:"formatter_command"`
	TempSweepInterval int    `json:"temp_sweep_interval_minutes"`
	TempDirTTL        int    `json:"temp_dir_ttl_minutes"`
}

type LLMConfig struct {
	Endpoint        string `json:"endpoint"`
	Token           string `json:"token"`
	TimeoutSeconds  int    `json:"timeout_seconds"`
	CacheTTLMinutes int    `json:"cache_ttl_minutes"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	Params   string `json:"params"`
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

const (
	DefaultEndpoint       = "https://llmfoundry.straive.com/gemini/v1beta/models/gemini-2.0-flash-001:generateContent"
	DefaultMaxUploadBytes = 50 << 20 // 50 MiB
)

// Load reads configuration from the provided path (defaults to config.json).
// A missing file is not an error: the service can run entirely from defaults
// plus the LLM_FOUNDRY_TOKEN environment variable.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		path = "config.json"
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	file, err := os.Open(absPath)
	switch {
	case err == nil:
		defer file.Close()
		if err := json.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	case os.IsNotExist(err):
		// env-only setup
	default:
		return nil, fmt.Errorf("open config %s: %w", absPath, err)
	}

	if token := os.Getenv("LLM_FOUNDRY_TOKEN"); token != "" {
		cfg.LLM.Token = token
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.BasicConfig.ServerAddress == "" {
		c.BasicConfig.ServerAddress = ":8080"
	}
	if c.BasicConfig.WorkDir == "" {
		c.BasicConfig.WorkDir = filepath.Join(os.TempDir(), "tds-solver")
	}
	if c.BasicConfig.MaxUploadBytes <= 0 {
		c.BasicConfig.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.BasicConfig.PreviewRows <= 0 {
		c.BasicConfig.PreviewRows = 5
	}
	if c.BasicConfig.MaxArchiveDepth <= 0 {
		c.BasicConfig.MaxArchiveDepth = 5
	}
	if c.BasicConfig.CommandTimeout <= 0 {
		c.BasicConfig.CommandTimeout = 30
	}
	if c.BasicConfig.DiagnosticCommand == "" {
		c.BasicConfig.DiagnosticCommand = "code -s"
	}
	if c.BasicConfig.FormatterCommand == "" {
		c.BasicConfig.FormatterCommand = "npx -y prettier@3.4.2 %s | sha256sum"
	}
	if c.BasicConfig.TempSweepInterval <= 0 {
		c.BasicConfig.TempSweepInterval = 60
	}
	if c.BasicConfig.TempDirTTL <= 0 {
		c.BasicConfig.TempDirTTL = 60
	}
	if c.LLM.Endpoint == "" {
		c.LLM.Endpoint = DefaultEndpoint
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = 60
	}
	if c.LLM.CacheTTLMinutes <= 0 {
		c.LLM.CacheTTLMinutes = 10
	}
}
