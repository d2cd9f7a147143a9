package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/support-chat-cli/internal/adapters/backend/rest"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "SC"
	configName = "config"
	configType = "toml"
	configDir  = ".config/support-chat"
	dataDir    = ".local/share/support-chat"

	StorageFile   = "file"
	StoragePebble = "pebble"

	KeyBaseURL        = "backend.base_url"
	KeyBackendTimeout = "backend.timeout"
	KeyBackendSource  = "backend.source"
	KeyPollDelay      = "poll.delay"
	KeyPollLimit      = "poll.limit"
	KeyLinkStatusTTL  = "link.status_ttl"
	KeyStorageBackend = "storage.backend"
	KeyStorageDir     = "storage.dir"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
)

type Config struct {
	Backend BackendConfig
	Poll    PollConfig
	Link    LinkConfig
	Storage StorageConfig
	Log     LogConfig
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
	Source  string
}

type PollConfig struct {
	Delay time.Duration
	Limit int
}

type LinkConfig struct {
	StatusTTL time.Duration
}

type StorageConfig struct {
	Backend string
	Dir     string
}

type LogConfig struct {
	Level  string
	Format string
}

func (s StorageConfig) SessionsPath() string {
	return filepath.Join(s.Dir, "sessions.toml")
}

func (s StorageConfig) IdentityDir() string {
	return filepath.Join(s.Dir, "identity")
}

func (s StorageConfig) PebbleDir() string {
	return filepath.Join(s.Dir, "pebble")
}

// Load resolves configuration from defaults, the optional config file and
// SC_-prefixed environment variables, in increasing precedence.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	setDefaults(v, homeDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(filepath.Join(homeDir, configDir))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Backend: BackendConfig{
			BaseURL: v.GetString(KeyBaseURL),
			Source:  strings.TrimSpace(v.GetString(KeyBackendSource)),
		},
		Poll: PollConfig{},
		Storage: StorageConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString(KeyStorageBackend))),
			Dir:     expandHome(v.GetString(KeyStorageDir), homeDir),
		},
		Log: LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
	}

	if cfg.Backend.Timeout, err = durationValue(v, KeyBackendTimeout); err != nil {
		return Config{}, err
	}
	if cfg.Poll.Delay, err = durationValue(v, KeyPollDelay); err != nil {
		return Config{}, err
	}
	if cfg.Link.StatusTTL, err = durationValue(v, KeyLinkStatusTTL); err != nil {
		return Config{}, err
	}
	if cfg.Poll.Limit, err = cast.ToIntE(v.Get(KeyPollLimit)); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", KeyPollLimit, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := rest.ValidateBaseURL(c.Backend.BaseURL); err != nil {
		return fmt.Errorf("invalid %s: %w", KeyBaseURL, err)
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("invalid %s: must not be negative", KeyBackendTimeout)
	}
	if c.Poll.Delay < 0 {
		return fmt.Errorf("invalid %s: must not be negative", KeyPollDelay)
	}
	if c.Link.StatusTTL < 0 {
		return fmt.Errorf("invalid %s: must not be negative", KeyLinkStatusTTL)
	}
	if c.Poll.Limit <= 0 {
		return fmt.Errorf("invalid %s: must be greater than zero", KeyPollLimit)
	}
	switch c.Storage.Backend {
	case StorageFile, StoragePebble:
	default:
		return fmt.Errorf("invalid %s %q: expected %s or %s", KeyStorageBackend, c.Storage.Backend, StorageFile, StoragePebble)
	}
	if strings.TrimSpace(c.Storage.Dir) == "" {
		return fmt.Errorf("invalid %s: must not be empty", KeyStorageDir)
	}
	return nil
}

func setDefaults(v *viper.Viper, homeDir string) {
	v.SetDefault(KeyBaseURL, "http://localhost:8000/api/v1")
	v.SetDefault(KeyBackendTimeout, "15s")
	v.SetDefault(KeyBackendSource, rest.DefaultSource)
	v.SetDefault(KeyPollDelay, "2s")
	v.SetDefault(KeyPollLimit, 10)
	v.SetDefault(KeyLinkStatusTTL, "5s")
	v.SetDefault(KeyStorageBackend, StorageFile)
	v.SetDefault(KeyStorageDir, filepath.Join(homeDir, dataDir))
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "console")
}

func durationValue(v *viper.Viper, key string) (time.Duration, error) {
	d, err := cast.ToDurationE(v.Get(key))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

func expandHome(path, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
