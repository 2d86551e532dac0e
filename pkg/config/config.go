// Package config loads the settings of a workspace from a configuration file, the environment and defaults.
package config

import (
	"fmt"
	"os"

	units "github.com/docker/go-units"
	"github.com/oneconcern/localvcs/pkg/dlogger"
	"github.com/oneconcern/localvcs/pkg/errors"
	"github.com/oneconcern/localvcs/pkg/model"
	"github.com/spf13/viper"
)

// Storage backends
const (
	BackendLocalFS = "localfs"
	BackendBadger  = "badger"
	BackendMemory  = "memory"
)

const (
	// EnvPrefix of environment variables overriding the configuration, e.g. LOCALVCS_BACKEND
	EnvPrefix = "localvcs"

	// EnvConfigFile designates an explicit configuration file
	EnvConfigFile = "LOCALVCS_CONFIG"

	configName = "localvcs"
)

var (
	// ErrInvalidConfig indicates a configuration which cannot be used to open a workspace
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrReadConfig indicates a configuration file which could not be read
	ErrReadConfig = errors.New("cannot read configuration")
)

// Config describes a workspace.
type Config struct {
	// keep names of fields the same as the serialized names: viper matches keys with the field names
	Repo          string `json:"repo" yaml:"repo"`                   // Name of the repository in the store
	Backend       string `json:"backend" yaml:"backend"`             // Storage backend: localfs, badger or memory
	Path          string `json:"path" yaml:"path"`                   // Location of the store
	Atomic        bool   `json:"atomic" yaml:"atomic"`               // Stage localfs writes before renaming them
	SyncWrites    bool   `json:"syncwrites" yaml:"syncwrites"`       // Sync badger writes to disk
	MaxObjectSize string `json:"maxobjectsize" yaml:"maxobjectsize"` // Largest stored repository, e.g. 512MB
	Verify        bool   `json:"verify" yaml:"verify"`               // Replay the history after a load
	LogLevel      string `json:"loglevel" yaml:"loglevel"`           // none, debug, info, warn or error
	Metrics       bool   `json:"metrics" yaml:"metrics"`             // Collect prometheus metrics
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("repo", "")
	v.SetDefault("backend", BackendLocalFS)
	v.SetDefault("path", ".localvcs")
	v.SetDefault("atomic", true)
	v.SetDefault("syncwrites", true)
	v.SetDefault("maxobjectsize", "1GB")
	v.SetDefault("verify", false)
	v.SetDefault("loglevel", dlogger.LogLevelNone)
	v.SetDefault("metrics", false)
}

// Default configuration
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load the configuration.
//
// An explicit file is used when provided, or when designated by LOCALVCS_CONFIG.
// Otherwise, localvcs.{yaml,json,toml} is searched in the current directory then in $HOME/.localvcs.
// Environment variables prefixed by LOCALVCS_ take precedence over the file.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file == "" {
		file = os.Getenv(EnvConfigFile)
	}
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.localvcs")
		v.SetConfigName(configName)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, ErrReadConfig.Wrap(err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ErrReadConfig.Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate the configuration
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendLocalFS, BackendBadger:
		if c.Path == "" {
			return ErrInvalidConfig.WrapMessage("backend %q requires a path", c.Backend)
		}
	case BackendMemory:
	default:
		return ErrInvalidConfig.WrapMessage("unknown backend %q", c.Backend)
	}
	if err := model.ValidateRepoName(c.Repo); err != nil {
		return ErrInvalidConfig.Wrap(err)
	}
	if _, err := c.MaxObjectSizeBytes(); err != nil {
		return err
	}
	switch c.LogLevel {
	case "", dlogger.LogLevelNone, dlogger.LogLevelDebug, dlogger.LogLevelInfo, dlogger.LogLevelWarn, dlogger.LogLevelError:
	default:
		return ErrInvalidConfig.WrapMessage("unknown log level %q", c.LogLevel)
	}
	return nil
}

// MaxObjectSizeBytes parses the maximum object size, e.g. "512MB" or "1GiB"
func (c *Config) MaxObjectSizeBytes() (int64, error) {
	if c.MaxObjectSize == "" {
		return 0, nil
	}
	size, err := units.RAMInBytes(c.MaxObjectSize)
	if err != nil {
		return 0, ErrInvalidConfig.Wrap(fmt.Errorf("max object size: %w", err))
	}
	if size <= 0 {
		return 0, ErrInvalidConfig.WrapMessage("max object size must be positive, got %q", c.MaxObjectSize)
	}
	return size, nil
}
