package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "PRODUCT_VIEW_CONFIG_FILE"

type Config struct {
	HTTPPort       string        `mapstructure:"http_port"`
	CatalogBaseURL string        `mapstructure:"catalog_base_url"`
	RedisAddr      string        `mapstructure:"redis_addr"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	SessionIdleTTL time.Duration `mapstructure:"session_idle_ttl"`
	BackLink       string        `mapstructure:"back_link"`
	LogLevel       string        `mapstructure:"log_level"`
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("http_port", "8080")
	v.SetDefault("catalog_base_url", "http://localhost:8083")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("jwt_secret", "dev-secret")
	v.SetDefault("cache_ttl", 30*time.Second)
	v.SetDefault("session_ttl", 12*time.Hour)
	v.SetDefault("session_idle_ttl", 30*time.Minute)
	v.SetDefault("back_link", "/products")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("PRODUCT_VIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := configFilepath(); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func configFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	if env, ok := os.LookupEnv(configFileEnvName); ok {
		return env
	}
	return *arg
}
