// Package configs loads and exposes the service configuration.
package configs

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type configs struct {
	Service  ServiceConfig  `mapstructure:"service"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Uploads  UploadsConfig  `mapstructure:"uploads"`
	Logs     LogsConfig     `mapstructure:"logs"`
}

// Configs is the loaded configuration, populated once by Init.
var Configs configs

// Init loads configuration from the YAML file at configPath (or the
// CONFIG_PATH environment variable, or configs/file/configs.yaml) with
// TASKHUB_-prefixed environment variables taking precedence.
func Init(configPath *string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("TASKHUB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	path := ""
	if configPath != nil && *configPath != "" {
		path = *configPath
	} else if env := os.Getenv("CONFIG_PATH"); env != "" {
		path = env
	} else {
		path = "configs/file/configs.yaml"
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := v.Unmarshal(&Configs); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The server refuses to start without a signing secret.
	if Configs.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if Configs.Auth.TokenTTLHours <= 0 {
		Configs.Auth.TokenTTLHours = 24 * 30
	}
	if Configs.Uploads.Dir == "" {
		Configs.Uploads.Dir = "uploads"
	}

	return nil
}
