package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration, trimmed to the
// subsystems this core owns (SPEC_FULL.md §A): app/env, database, redis,
// the connector registry, webhook defaults, and outbound HTTP timeouts.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Connectors ConnectorsConfig `mapstructure:"connectors"`
	Webhook    WebhookConfig    `mapstructure:"webhook"`
	HTTPClient HTTPClientConfig `mapstructure:"http_client"`
}

// AppConfig represents application configuration.
type AppConfig struct {
	Env  string `mapstructure:"env"`
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

// DatabaseConfig represents database configuration.
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"db_name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"`
}

// RedisConfig represents Redis configuration, backing the KV store named
// in spec §6.
type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	MaxRetries   int           `mapstructure:"max_retries"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// ConnectorEntry is one row of the adapter registry named in spec §6:
// adapter-id -> {base_url, optional auth hints}.
type ConnectorEntry struct {
	BaseURL string `mapstructure:"base_url"`
}

// ConnectorsConfig is the adapter registry configuration. Recognised keys
// are stripe, checkout, aci, adyen, authorizedotnet, worldpay, etc.; an
// unknown adapter id at registry construction time is a startup error
// (spec §6).
type ConnectorsConfig struct {
	Entries          map[string]ConnectorEntry `mapstructure:"entries"`
	RouterHeaderValue string                    `mapstructure:"router_header_value"`
}

// WebhookConfig carries the webhook-verification defaults from spec §4.5.
type WebhookConfig struct {
	SecretKeyPrefix string `mapstructure:"secret_key_prefix"`
}

// HTTPClientConfig governs the execution engine's outbound call deadline,
// defaulting to the 30s named in spec §5.
type HTTPClientConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load reads configuration from environment variables and an optional
// .env-shaped file, in the teacher's viper idiom.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")

	setDefaults()

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.port", 8080)
	viper.SetDefault("app.host", "localhost")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "router")
	viper.SetDefault("database.password", "router")
	viper.SetDefault("database.db_name", "router")
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.max_open_conns", 50)
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.conn_max_lifetime", 3600)
	viper.SetDefault("database.conn_max_idle_time", 300)

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.pool_size", 10)
	viper.SetDefault("redis.min_idle_conns", 5)
	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("redis.dial_timeout", "5s")
	viper.SetDefault("redis.read_timeout", "3s")
	viper.SetDefault("redis.write_timeout", "3s")

	viper.SetDefault("connectors.router_header_value", "")

	viper.SetDefault("webhook.secret_key_prefix", "whsec_verification")

	viper.SetDefault("http_client.timeout", "30s")
}
