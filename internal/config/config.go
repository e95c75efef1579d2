package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/EKINSOL-DEV/crewhub-sub011/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "crewhub.json"

	// DefaultPort is the default API server port.
	DefaultPort = 4600

	// DefaultHost is the default API server host.
	DefaultHost = "localhost"

	// DefaultModIndex is the default mod pack index URL.
	DefaultModIndex = "https://crewhub.dev/mods/index.json"

	// DefaultLibraryFile is the default saved-props library path,
	// relative to the config directory.
	DefaultLibraryFile = ".crewhub/library.json"

	// DefaultModsDir is the default directory for local mod manifests,
	// relative to the config directory.
	DefaultModsDir = "mods"
)

// Config represents the complete crewhub.json configuration.
type Config struct {
	// Name is the workspace name.
	Name string `json:"name,omitempty"`

	// Version is the workspace version.
	Version string `json:"version,omitempty"`

	// Server contains API server settings.
	Server ServerConfig `json:"server,omitempty"`

	// Mods contains mod loading settings.
	Mods ModsConfig `json:"mods,omitempty"`

	// Library contains saved-props library settings.
	Library LibraryConfig `json:"library,omitempty"`

	// S3 contains the optional S3 mod pack source.
	S3 S3Config `json:"s3,omitempty"`

	// Metrics toggles the Prometheus /metrics endpoint.
	Metrics bool `json:"metrics,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains API server settings.
type ServerConfig struct {
	// Port is the port to bind the API server to.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`
}

// ModsConfig contains mod loading settings.
type ModsConfig struct {
	// Index is the URL of the mod pack index.
	Index string `json:"index,omitempty"`

	// Dir is the directory containing local mod manifests, loaded at
	// startup.
	Dir string `json:"dir,omitempty"`

	// Autoload lists mod sources (URLs or paths) loaded at startup.
	Autoload []string `json:"autoload,omitempty"`
}

// LibraryConfig contains saved-props library settings.
type LibraryConfig struct {
	// File is the path of the library JSON file.
	File string `json:"file,omitempty"`
}

// S3Config describes the optional S3 mod pack source.
type S3Config struct {
	// Region is the AWS region of the bucket.
	Region string `json:"region,omitempty"`

	// Bucket is the bucket holding mod packs. Empty disables S3.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is the key prefix for mod packs.
	Prefix string `json:"prefix,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Version: "0.1.0",
		Server: ServerConfig{
			Port: DefaultPort,
			Host: DefaultHost,
		},
		Mods: ModsConfig{
			Index: DefaultModIndex,
			Dir:   DefaultModsDir,
		},
		Library: LibraryConfig{
			File: DefaultLibraryFile,
		},
		Metrics: true,
	}
}

// Load reads configuration from dir/crewhub.json.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E400").
				WithDetail("No crewhub.json found in " + filepath.Dir(path)).
				WithSuggestion("Run 'crewhub init' or create crewhub.json manually")
		}
		return nil, errors.New("E401").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E401").
			WithDetail("Failed to parse crewhub.json: " + err.Error()).
			WithSuggestion("Check that crewhub.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E402").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E402").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Mods.Index == "" {
		c.Mods.Index = DefaultModIndex
	}
	if c.Mods.Dir == "" {
		c.Mods.Dir = DefaultModsDir
	}
	if c.Library.File == "" {
		c.Library.File = DefaultLibraryFile
	}
}

// applyEnv applies environment variable overrides. CREWHUB_PORT wins
// over the file value so deployments can rebind without editing config.
func (c *Config) applyEnv() {
	if v := os.Getenv("CREWHUB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("CREWHUB_HOST"); v != "" {
		c.Server.Host = v
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("E401").WithDetail("Server port " + strconv.Itoa(c.Server.Port) + " is out of range")
	}
	if c.S3.Bucket != "" && c.S3.Region == "" {
		return errors.New("E401").
			WithDetail("s3.bucket is set but s3.region is empty").
			WithSuggestion("Set s3.region to the bucket's AWS region")
	}
	return nil
}

// Address returns the host:port the API server binds to.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// LibraryPath returns the absolute path of the saved-props library file.
func (c *Config) LibraryPath() string {
	return c.resolve(c.Library.File)
}

// ModsDir returns the absolute path of the local mods directory.
func (c *Config) ModsDir() string {
	return c.resolve(c.Mods.Dir)
}

// resolve makes path absolute relative to the config directory.
func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) || c.configPath == "" {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists reports whether dir contains a crewhub.json.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the workspace root.
// Returns the directory containing crewhub.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E400").
				WithDetail("No crewhub.json found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'crewhub init' to create a workspace")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working
// directory or the nearest parent workspace.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}
	return Load(root)
}
