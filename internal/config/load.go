package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TASKS"

// Load reads configuration from defaults, an optional YAML file and
// TASKS_* environment variables, in increasing order of precedence.
// The file is taken from TASKS_CONFIG_FILE, falling back to ./config.yaml.
func Load() (*Config, error) {
	return LoadFile(os.Getenv(EnvPrefix + "_CONFIG_FILE"))
}

// LoadFile is Load with an explicit config file path. An empty path searches
// the working directory for config.yaml and tolerates its absence; an explicit
// path must exist.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only applies to keys viper already knows about; bind the
	// ones without defaults explicitly.
	for _, key := range []string{"auth.jwt_secret"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8008)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.mode", "release")

	v.SetDefault("database.path", "tasks-management.db")
	v.SetDefault("database.max_open_conns", 1)

	v.SetDefault("auth.issuer", "task-management-api")
	v.SetDefault("auth.audience", "task-management-clients")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.claims_cache_ttl", "5m")
	v.SetDefault("auth.dev_login", false)

	v.SetDefault("pagination.max_size", 100)
}
