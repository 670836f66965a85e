package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"

	perrors "github.com/zhubert/decoy/internal/errors"
)

const (
	// DefaultServerURL is the backend address used when none is configured.
	DefaultServerURL = "http://localhost:8000"

	// DefaultRequestTimeoutSeconds bounds each backend request.
	DefaultRequestTimeoutSeconds = 30

	// MaxRequestTimeoutSeconds is the largest accepted request timeout.
	MaxRequestTimeoutSeconds = 600

	// DefaultExportDir is where session snapshots are written.
	DefaultExportDir = "."
)

// Environment variables that override values from the config file.
const (
	EnvServerURL     = "DECOY_SERVER_URL"
	EnvExportDir     = "DECOY_EXPORT_DIR"
	EnvTimeout       = "DECOY_TIMEOUT"
	EnvTheme         = "DECOY_THEME"
	EnvNotifications = "DECOY_NOTIFICATIONS"
)

// Config holds the application configuration
type Config struct {
	ServerURL             string `json:"server_url,omitempty"`              // Backend base URL
	Theme                 string `json:"theme,omitempty"`                   // UI theme name (e.g., "dark-purple", "nord")
	NotificationsEnabled  bool   `json:"notifications_enabled,omitempty"`   // Desktop notification when a scam is detected
	ExportDir             string `json:"export_dir,omitempty"`              // Directory for session_<id>.json snapshots
	RequestTimeoutSeconds int    `json:"request_timeout_seconds,omitempty"` // Per-request timeout

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".decoy"), nil
}

// DefaultPath returns the path to the config file
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// New returns a config with defaults that will be saved to path.
func New(path string) *Config {
	cfg := &Config{filePath: path}
	cfg.ensureInitialized()
	return cfg
}

// Load reads the config from the default location, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path, or returns defaults if the file doesn't exist
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.ensureInitialized()
		return cfg, nil
	}
	if err != nil {
		return nil, perrors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, perrors.ConfigLoadFailed(path, err)
	}

	// Defaults must be filled before Validate() since Validate() only reads
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureInitialized fills unset fields with defaults.
// Only call during single-threaded initialization.
func (c *Config) ensureInitialized() {
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	if c.ExportDir == "" {
		c.ExportDir = DefaultExportDir
	}
	if c.RequestTimeoutSeconds == 0 {
		c.RequestTimeoutSeconds = DefaultRequestTimeoutSeconds
	}
}

// Validate checks that the config is internally consistent.
// This is a read-only operation - call ensureInitialized() first if needed.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := ValidateServerURL(c.ServerURL); err != nil {
		return err
	}
	if c.RequestTimeoutSeconds < 1 || c.RequestTimeoutSeconds > MaxRequestTimeoutSeconds {
		return perrors.ConfigInvalid(fmt.Sprintf("request_timeout_seconds must be between 1 and %d, got %d",
			MaxRequestTimeoutSeconds, c.RequestTimeoutSeconds))
	}
	if strings.TrimSpace(c.ExportDir) == "" {
		return perrors.ConfigInvalid("export_dir is empty")
	}
	return nil
}

// ValidateServerURL reports whether raw is an absolute http(s) URL.
func ValidateServerURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return perrors.ConfigInvalid("server_url is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return perrors.ConfigInvalid(fmt.Sprintf("server_url %q: %v", raw, err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return perrors.ConfigInvalid(fmt.Sprintf("server_url %q must use http or https", raw))
	}
	if u.Host == "" {
		return perrors.ConfigInvalid(fmt.Sprintf("server_url %q has no host", raw))
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		return perrors.ConfigSaveFailed("", fmt.Errorf("no config path set"))
	}

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// LoadDotEnv loads KEY=value pairs from the given files (".env" when none
// are given) into the process environment. Variables already set win.
// Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return perrors.ConfigLoadFailed(p, err)
		}
	}
	return nil
}

// ApplyEnv overrides config values from DECOY_* variables. lookup is
// usually os.LookupEnv. Overrides are validated but never saved unless the
// caller calls Save.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := lookup(EnvServerURL); ok && v != "" {
		if err := ValidateServerURL(v); err != nil {
			return err
		}
		c.ServerURL = strings.TrimRight(v, "/")
	}
	if v, ok := lookup(EnvExportDir); ok && v != "" {
		c.ExportDir = v
	}
	if v, ok := lookup(EnvTheme); ok && v != "" {
		c.Theme = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs < 1 || secs > MaxRequestTimeoutSeconds {
			return perrors.ConfigInvalid(fmt.Sprintf("%s=%q is not a valid timeout in seconds", EnvTimeout, v))
		}
		c.RequestTimeoutSeconds = secs
	}
	if v, ok := lookup(EnvNotifications); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return perrors.ConfigInvalid(fmt.Sprintf("%s=%q is not a boolean", EnvNotifications, v))
		}
		c.NotificationsEnabled = enabled
	}
	return nil
}

// Path returns the file the config is saved to
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// SetFilePath changes where Save writes the config
func (c *Config) SetFilePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filePath = path
}

// GetServerURL returns the backend base URL
func (c *Config) GetServerURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ServerURL
}

// SetServerURL sets the backend base URL
func (c *Config) SetServerURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ServerURL = strings.TrimRight(u, "/")
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetExportDir returns the directory session snapshots are written to
func (c *Config) GetExportDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ExportDir
}

// SetExportDir sets the directory session snapshots are written to
func (c *Config) SetExportDir(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ExportDir = dir
}

// RequestTimeout returns the per-request timeout
func (c *Config) RequestTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.RequestTimeoutSeconds <= 0 {
		return DefaultRequestTimeoutSeconds * time.Second
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// SetRequestTimeoutSeconds sets the per-request timeout
func (c *Config) SetRequestTimeoutSeconds(secs int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.RequestTimeoutSeconds = secs
}
