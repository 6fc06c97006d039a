package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store backends
const (
	StoreRemote = "remote"
	StoreSQLite = "sqlite"
	StoreFile   = "file"
)

// StoreConfig selects where jobs and applicants are read from
type StoreConfig struct {
	Type        string `json:"type" yaml:"type"`
	APIURL      string `json:"api_url" yaml:"api_url"`
	APIToken    string `json:"api_token,omitempty" yaml:"api_token,omitempty"`
	TimeoutSecs int    `json:"timeout_secs" yaml:"timeout_secs"`
	SQLitePath  string `json:"sqlite_path" yaml:"sqlite_path"`
	DataDir     string `json:"data_dir" yaml:"data_dir"`
}

// NotionConfig enables shortlist publishing when both fields are set
type NotionConfig struct {
	Token      string `json:"token,omitempty" yaml:"token,omitempty"`
	DatabaseID string `json:"database_id" yaml:"database_id"`
}

// GoogleConfig enables Vertex AI shortlist summaries when Project is set
type GoogleConfig struct {
	Project         string `json:"project" yaml:"project"`
	Location        string `json:"location" yaml:"location"`
	CredentialsPath string `json:"credentials_path" yaml:"credentials_path"`
	Model           string `json:"model" yaml:"model"`
}

// Config holds application configuration
type Config struct {
	Port   string       `json:"port" yaml:"port"`
	Store  StoreConfig  `json:"store" yaml:"store"`
	Notion NotionConfig `json:"notion" yaml:"notion"`
	Google GoogleConfig `json:"google" yaml:"google"`
}

// DefaultConfig returns a new config with default values
func DefaultConfig() *Config {
	return &Config{
		Port: "8080",
		Store: StoreConfig{
			Type:        StoreRemote,
			APIURL:      "http://localhost:5000",
			TimeoutSecs: 15,
			SQLitePath:  "pipeline.db",
			DataDir:     "data",
		},
		Google: GoogleConfig{
			Location: "us-central1",
			Model:    "gemini-1.5-flash",
		},
	}
}

// GetConfigPath returns the path to the configuration file
// On Windows: %APPDATA%/ApplicantPipeline/config.json
// On Unix: ~/.config/ApplicantPipeline/config.json
func GetConfigPath() (string, error) {
	var configDir string

	if os.Getenv("APPDATA") != "" {
		configDir = filepath.Join(os.Getenv("APPDATA"), "ApplicantPipeline")
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "ApplicantPipeline")
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Load loads configuration from the default config path
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadFrom(configPath)
}

// LoadFrom loads configuration from a specific path. Files ending in
// .yaml or .yml are parsed as YAML, anything else as JSON.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to the default config path
func (c *Config) Save() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	return c.SaveTo(configPath)
}

// SaveTo saves the configuration to a specific path
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides configuration values with environment variables
func (c *Config) ApplyEnv() {
	override := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	override(&c.Port, "PORT")
	override(&c.Store.Type, "PIPELINE_STORE")
	override(&c.Store.APIURL, "PIPELINE_API_URL")
	override(&c.Store.APIToken, "PIPELINE_API_TOKEN")
	override(&c.Store.SQLitePath, "PIPELINE_SQLITE_PATH")
	override(&c.Store.DataDir, "PIPELINE_DATA_DIR")
	override(&c.Notion.Token, "NOTION_TOKEN")
	override(&c.Notion.DatabaseID, "NOTION_DB_ID")
	override(&c.Google.Project, "GOOGLE_CLOUD_PROJECT")
	override(&c.Google.Location, "GOOGLE_CLOUD_LOCATION")
	override(&c.Google.CredentialsPath, "GOOGLE_APPLICATION_CREDENTIALS")

	if v := os.Getenv("PIPELINE_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.Store.TimeoutSecs = secs
		}
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}

	switch c.Store.Type {
	case StoreRemote:
		u, err := url.Parse(c.Store.APIURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("store.api_url must be an absolute URL, got %q", c.Store.APIURL)
		}
		if c.Store.TimeoutSecs < 0 {
			return fmt.Errorf("store.timeout_secs must not be negative")
		}
	case StoreSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("store.sqlite_path is required for the sqlite store")
		}
	case StoreFile:
		if c.Store.DataDir == "" {
			return fmt.Errorf("store.data_dir is required for the file store")
		}
	default:
		return fmt.Errorf("unknown store type %q", c.Store.Type)
	}

	if (c.Notion.Token == "") != (c.Notion.DatabaseID == "") {
		return fmt.Errorf("notion token and database_id must be set together")
	}

	if c.Google.CredentialsPath != "" {
		if _, err := os.Stat(c.Google.CredentialsPath); err != nil {
			return fmt.Errorf("google credentials file not found: %w", err)
		}
	}

	return nil
}

// NotionEnabled reports whether shortlist publishing is configured
func (c *Config) NotionEnabled() bool {
	return c.Notion.Token != "" && c.Notion.DatabaseID != ""
}

// InsightEnabled reports whether Vertex AI summaries are configured
func (c *Config) InsightEnabled() bool {
	return c.Google.Project != ""
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
