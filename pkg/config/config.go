package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config groups application configuration, read via Viper from the
// environment and (optionally) a config file.
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	Engine EngineConfig
}

// AppConfig is general application metadata.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configures the command gateway's HTTP server.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// EngineConfig holds the reserved tuning constants (§6): dedup window,
// presence TTL, and the interval an external scheduler should use to
// drive forced zone sweeps.
type EngineConfig struct {
	DedupWindowSec       int
	PresenceTTLSec       int
	AutoSweepIntervalSec int
}

// Load reads configuration from environment variables (and, if present, a
// config file). Env vars take priority. Expected names: APP_ENV, HTTP_PORT,
// DEDUP_WINDOW_SEC, PRESENCE_TTL_SEC, AUTO_SWEEP_INTERVAL_SEC, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignore error if absent

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignore error if absent

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "storefront-inventory-engine"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Engine: EngineConfig{
			DedupWindowSec:       getInt(v, "DEDUP_WINDOW_SEC", 15),
			PresenceTTLSec:       getInt(v, "PRESENCE_TTL_SEC", 300),
			AutoSweepIntervalSec: getInt(v, "AUTO_SWEEP_INTERVAL_SEC", 30),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			return v.GetInt(key)
		default:
			return v.GetInt(key)
		}
	}
	return def
}
