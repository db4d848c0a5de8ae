package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wichananm65/beauty-dashboard-backend/internal/interaction"
)

const (
	envPrefix         = "BEAUTY"
	configFileEnvName = "BEAUTY_CONFIG_FILE"
)

type CORS struct {
	AllowOrigins string `mapstructure:"allow_origins"`
}

type Interactions struct {
	LocalFile        string        `mapstructure:"local_file"`
	DocstoreKeyPaths []string      `mapstructure:"docstore_key_paths"`
	DatabaseURL      string        `mapstructure:"database_url"`
	Collection       string        `mapstructure:"collection"`
	Table            string        `mapstructure:"table"`
	PageSize         int           `mapstructure:"page_size"`
	ConnectTimeout   time.Duration `mapstructure:"connect_timeout"`
}

type Metrics struct {
	Namespace string `mapstructure:"namespace"`
}

type Config struct {
	Addr         string       `mapstructure:"addr"`
	Env          string       `mapstructure:"env"`
	LogLevel     string       `mapstructure:"log_level"`
	CORS         CORS         `mapstructure:"cors"`
	Interactions Interactions `mapstructure:"interactions"`
	Metrics      Metrics      `mapstructure:"metrics"`
}

// Load resolves configuration from defaults, an optional YAML file named by
// --config or BEAUTY_CONFIG_FILE, a .env file and BEAUTY_* environment variables.
// DATABASE_URL is honoured for the Postgres interaction log.
func Load(args []string) (Config, error) {
	const op = "config.Load"

	_ = godotenv.Load()

	flags := pflag.NewFlagSet("beauty-dashboard", pflag.ContinueOnError)
	configFile := flags.String("config", "", "path to a YAML config file")
	addr := flags.String("addr", "", "listen address")
	if err := flags.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("interactions.database_url", envPrefix+"_INTERACTIONS_DATABASE_URL", "DATABASE_URL"); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	path := *configFile
	if env, ok := os.LookupEnv(configFileEnvName); ok && path == "" {
		path = env
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	if *addr != "" {
		v.Set("addr", *addr)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}
	cfg.Interactions.DocstoreKeyPaths = splitPaths(cfg.Interactions.DocstoreKeyPaths)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("cors.allow_origins", "*")
	v.SetDefault("interactions.local_file", "local_product_clicks.json")
	v.SetDefault("interactions.docstore_key_paths", []string{
		"docstore-key.json",
		".config/docstore-key.json",
		"~/docstore-key.json",
	})
	v.SetDefault("interactions.database_url", "")
	v.SetDefault("interactions.collection", "product_clicks")
	v.SetDefault("interactions.table", "product_clicks")
	v.SetDefault("interactions.page_size", 1000)
	v.SetDefault("interactions.connect_timeout", "5s")
	v.SetDefault("metrics.namespace", "beauty")
}

func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.Interactions.LocalFile == "" {
		errs = append(errs, errors.New("interactions.local_file is required"))
	}
	if c.Interactions.PageSize <= 0 {
		errs = append(errs, errors.New("interactions.page_size must be > 0"))
	}
	if c.Interactions.ConnectTimeout <= 0 {
		errs = append(errs, errors.New("interactions.connect_timeout must be > 0"))
	}
	return errors.Join(errs...)
}

// Backend is the interaction log selection input.
func (c Config) Backend() interaction.BackendConfig {
	return interaction.BackendConfig{
		KeyPaths:       c.Interactions.DocstoreKeyPaths,
		DatabaseURL:    c.Interactions.DatabaseURL,
		LocalFile:      c.Interactions.LocalFile,
		Collection:     c.Interactions.Collection,
		Table:          c.Interactions.Table,
		PageSize:       c.Interactions.PageSize,
		ConnectTimeout: c.Interactions.ConnectTimeout,
	}
}

func splitPaths(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		for _, part := range strings.Split(p, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
