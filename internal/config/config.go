package config

import (
	"log"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends selectable at startup
const (
	StorageBadger   = "badger"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
	StorageNone     = "none"
)

type Configuration struct {
	API     APIConfig     `validate:"required"`
	Server  ServerConfig  `validate:"required"`
	Logging LoggingConfig `validate:"required"`
	Storage StorageConfig `validate:"required"`
	DB      DBConfig
}

// APIConfig points at the remote logistics backend
type APIConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}

type ServerConfig struct {
	Port        string   `mapstructure:"port" validate:"required"`
	Mode        string   `mapstructure:"mode"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// StorageConfig selects where the session record and form drafts live.
// Origin scopes entries the way a browser scopes localStorage.
type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=badger postgres memory none"`
	Path    string `mapstructure:"path"`
	Origin  string `mapstructure:"origin" validate:"required"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// Load reads configs/.env (if any) and the process environment into a validated Configuration
func Load() (*Configuration, error) {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}
	return FromViper(viper.New())
}

// FromViper fills defaults, binds env vars and unmarshals v. Split out so tests can preset keys.
func FromViper(v *viper.Viper) (*Configuration, error) {
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// flat env names used by existing deployments
	aliases := map[string]string{
		"api.base_url":        "API_BASE_URL",
		"server.port":         "PORT",
		"server.mode":         "GIN_MODE",
		"server.cors_origins": "CORS_ORIGINS",
		"logging.level":       "LOG_LEVEL",
		"storage.backend":     "STORAGE_BACKEND",
		"storage.path":        "STORAGE_PATH",
		"storage.origin":      "STORAGE_ORIGIN",
		"db.host":             "DB_HOST",
		"db.port":             "DB_PORT",
		"db.user":             "DB_USER",
		"db.password":         "DB_PASSWORD",
		"db.name":             "DB_NAME",
		"db.sslmode":          "DB_SSLMODE",
	}
	for key, env := range aliases {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	// a comma separated env value may arrive whole or pre-split with padding
	cfg.Server.CORSOrigins = splitList(strings.Join(cfg.Server.CORSOrigins, ","))
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors_origins", []string{"http://localhost:4200", "http://127.0.0.1:4200"})
	v.SetDefault("logging.level", "info")
	v.SetDefault("storage.backend", StorageBadger)
	v.SetDefault("storage.path", "./data/storage")
	v.SetDefault("storage.origin", "http://localhost:4200")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "postgres")
	v.SetDefault("db.sslmode", "disable")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if c.Storage.Backend == StorageBadger && c.Storage.Path == "" {
		return errors.New("storage.path is required for the badger backend")
	}
	return nil
}

// DSN builds the postgres connection string for the postgres storage backend
func (d DBConfig) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=" + d.SSLMode
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
