package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Debug      bool       `yaml:"debug" env:"DEBUG"`
	AppSecret  string     `yaml:"app_secret" env:"APP_SECRET" env-required:"true"`
	Limiter    Limiter    `yaml:"limiter"`
	Cors       Cors       `yaml:"cors"`
	Server     Server     `yaml:"server"`
	DB         DB         `yaml:"db"`
	Auth       Auth       `yaml:"auth"`
	Pagination Pagination `yaml:"pagination"`
	Mail       Mail       `yaml:"mail"`
}

type Limiter struct {
	Enabled bool    `yaml:"enabled" env:"LIMITER_ENABLED"`
	Rps     float64 `yaml:"rps" env-default:"20"`
	Burst   int     `yaml:"burst" env-default:"5"`
}

type Cors struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

type Server struct {
	Port string `yaml:"port" env:"SERVER_PORT" env-default:"8000"`
	Host string `yaml:"host" env:"SERVER_HOST" env-default:"localhost"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type DB struct {
	// Driver is either "postgres" or "memory".
	Driver          string        `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
	Dsn             string        `yaml:"dsn" env:"DB_DSN"`
	MaxConns        int           `yaml:"max_conns" env-default:"25"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env-default:"10m"`
}

type Auth struct {
	CodeLength int `yaml:"code_length" env-default:"6"`
	// CodeTTL bounds how long a confirmation code stays redeemable. Zero keeps
	// codes valid until the next signup call replaces them.
	CodeTTL        time.Duration `yaml:"code_ttl" env:"AUTH_CODE_TTL" env-default:"0s"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env-default:"24h"`
}

type Pagination struct {
	DefaultPageSize int `yaml:"default_page_size" env-default:"10"`
	MaxPageSize     int `yaml:"max_page_size" env-default:"100"`
}

type Mail struct {
	// Backend is either "smtp" or "log".
	Backend  string        `yaml:"backend" env:"MAIL_BACKEND" env-default:"log"`
	Host     string        `yaml:"host" env:"MAIL_HOST"`
	Port     int           `yaml:"port" env:"MAIL_PORT" env-default:"587"`
	Username string        `yaml:"username" env:"MAIL_USERNAME"`
	Password string        `yaml:"password" env:"MAIL_PASSWORD"`
	Sender   string        `yaml:"sender" env:"MAIL_SENDER" env-default:"YaMDb <noreply@yamdb.local>"`
	Timeout  time.Duration `yaml:"timeout" env-default:"5s"`
}

func (c *Config) validate() error {
	if c.DB.Driver != "postgres" && c.DB.Driver != "memory" {
		return fmt.Errorf("unknown db driver %q", c.DB.Driver)
	}
	if c.DB.Driver == "postgres" && c.DB.Dsn == "" {
		return fmt.Errorf("db.dsn is required for the postgres driver")
	}
	if c.Mail.Backend != "smtp" && c.Mail.Backend != "log" {
		return fmt.Errorf("unknown mail backend %q", c.Mail.Backend)
	}
	if c.Auth.CodeLength < 4 {
		return fmt.Errorf("auth.code_length must be at least 4")
	}
	if c.Pagination.DefaultPageSize < 1 || c.Pagination.MaxPageSize < c.Pagination.DefaultPageSize {
		return fmt.Errorf("invalid pagination settings")
	}
	return nil
}

func Load(configPath string) (*Config, error) {
	var cfg Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file %s not found", configPath)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	return cfg
}
