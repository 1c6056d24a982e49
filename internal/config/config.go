package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/vancomm/msweeper/internal/game"
)

type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type Postgres struct {
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	PasswordFile string `mapstructure:"password_file"`
	Host         string `mapstructure:"host"`
	Port         uint16 `mapstructure:"port"`
	DBName       string `mapstructure:"db"`
	SSLMode      string `mapstructure:"sslmode"`
}

type Store struct {
	Driver      string   `mapstructure:"driver"`
	SQLitePath  string   `mapstructure:"sqlite_path"`
	DatabaseURL string   `mapstructure:"database_url"`
	Postgres    Postgres `mapstructure:"postgres"`
}

type JWTKeys struct {
	PrivateKey     string        `mapstructure:"private_key"`
	PrivateKeyFile string        `mapstructure:"private_key_file"`
	PublicKey      string        `mapstructure:"public_key"`
	PublicKeyFile  string        `mapstructure:"public_key_file"`
	TokenLifetime  time.Duration `mapstructure:"token_lifetime"`
}

type CookieOptions struct {
	Domain   string `mapstructure:"domain"`
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"samesite"`
}

type Game struct {
	Rows          int           `mapstructure:"rows"`
	Cols          int           `mapstructure:"cols"`
	Mines         int           `mapstructure:"mines"`
	MaxCells      int           `mapstructure:"max_cells"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type Config struct {
	Addr           string        `mapstructure:"addr"`
	BasePath       string        `mapstructure:"base_path"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	Development    bool          `mapstructure:"development"`
	Log            Log           `mapstructure:"log"`
	Store          Store         `mapstructure:"store"`
	JWT            JWTKeys       `mapstructure:"jwt"`
	Cookies        CookieOptions `mapstructure:"cookies"`
	Game           Game          `mapstructure:"game"`
}

var envBindings = map[string]string{
	"addr":                         "APP_ADDR",
	"base_path":                    "APP_BASE_PATH",
	"allowed_origins":              "CORS_ALLOWED_ORIGINS",
	"development":                  "DEVELOPMENT",
	"log.level":                    "LOG_LEVEL",
	"log.file":                     "LOG_FILE",
	"store.driver":                 "STORE_DRIVER",
	"store.sqlite_path":            "SQLITE_PATH",
	"store.database_url":           "DATABASE_URL",
	"store.postgres.user":          "POSTGRES_USER",
	"store.postgres.password":      "POSTGRES_PASSWORD",
	"store.postgres.password_file": "POSTGRES_PASSWORD_FILE",
	"store.postgres.host":          "POSTGRES_HOST",
	"store.postgres.port":          "POSTGRES_PORT",
	"store.postgres.db":            "POSTGRES_DB",
	"store.postgres.sslmode":       "POSTGRES_SSLMODE",
	"jwt.private_key":              "JWT_PRIVATE_KEY",
	"jwt.private_key_file":         "JWT_PRIVATE_KEY_FILE",
	"jwt.public_key":               "JWT_PUBLIC_KEY",
	"jwt.public_key_file":          "JWT_PUBLIC_KEY_FILE",
	"jwt.token_lifetime":           "JWT_TOKEN_LIFETIME",
	"cookies.domain":               "COOKIES_DOMAIN",
	"cookies.secure":               "COOKIES_SECURE",
	"cookies.samesite":             "COOKIES_SAMESITE",
	"game.rows":                    "GAME_ROWS",
	"game.cols":                    "GAME_COLS",
	"game.mines":                   "GAME_MINES",
	"game.max_cells":               "GAME_MAX_CELLS",
	"game.session_ttl":             "GAME_SESSION_TTL",
	"game.sweep_interval":          "GAME_SWEEP_INTERVAL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("base_path", "")
	v.SetDefault("development", false)
	v.SetDefault("log.level", "")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "msweeper.db")
	v.SetDefault("store.postgres.port", 5432)
	v.SetDefault("store.postgres.sslmode", "disable")
	v.SetDefault("jwt.token_lifetime", time.Hour*24*30)
	v.SetDefault("cookies.secure", true)
	v.SetDefault("cookies.samesite", "strict")
	v.SetDefault("game.rows", 5)
	v.SetDefault("game.cols", 10)
	v.SetDefault("game.mines", 15)
	v.SetDefault("game.max_cells", game.DefaultMaxCells)
	v.SetDefault("game.session_ttl", time.Hour*2)
	v.SetDefault("game.sweep_interval", time.Minute)
}

// Load reads configuration from defaults, the optional file at path and the
// environment, in increasing order of precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("unable to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Game.MaxCells <= 0 {
		return fmt.Errorf("game max cells must be positive")
	}
	if err := c.Game.Defaults().Validate(c.Game.MaxCells); err != nil {
		return fmt.Errorf("invalid default game: %w", err)
	}
	if c.Game.SessionTTL <= 0 {
		return fmt.Errorf("game session ttl must be positive")
	}
	if c.Game.SweepInterval <= 0 {
		return fmt.Errorf("game sweep interval must be positive")
	}
	return nil
}

func (c Config) Fields() logrus.Fields {
	return logrus.Fields{
		"addr":             c.Addr,
		"base_path":        c.BasePath,
		"allowed_origins":  c.AllowedOrigins,
		"development":      c.Development,
		"log_level":        c.Log.Level,
		"log_file":         c.Log.File,
		"store_driver":     c.Store.Driver,
		"sqlite_path":      c.Store.SQLitePath,
		"pg_host":          c.Store.Postgres.Host,
		"pg_port":          c.Store.Postgres.Port,
		"pg_user":          c.Store.Postgres.User,
		"pg_db_name":       c.Store.Postgres.DBName,
		"jwt_lifetime":     c.JWT.TokenLifetime.String(),
		"cookies_domain":   c.Cookies.Domain,
		"game_rows":        c.Game.Rows,
		"game_cols":        c.Game.Cols,
		"game_mines":       c.Game.Mines,
		"game_max_cells":   c.Game.MaxCells,
		"game_session_ttl": c.Game.SessionTTL.String(),
	}
}

func (g Game) Defaults() game.Params {
	return game.Params{Rows: g.Rows, Cols: g.Cols, Mines: g.Mines}
}

func (p Postgres) password() (string, error) {
	if p.Password != "" {
		return p.Password, nil
	}
	if p.PasswordFile == "" {
		return "", fmt.Errorf("no POSTGRES_PASSWORD or POSTGRES_PASSWORD_FILE set")
	}
	data, err := os.ReadFile(p.PasswordFile)
	if err != nil {
		return "", fmt.Errorf("unable to read from password file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (p Postgres) URL() (string, error) {
	if p.User == "" {
		return "", fmt.Errorf("no POSTGRES_USER set")
	}
	if p.Host == "" {
		return "", fmt.Errorf("no POSTGRES_HOST set")
	}
	if p.DBName == "" {
		return "", fmt.Errorf("no POSTGRES_DB set")
	}
	password, err := p.password()
	if err != nil {
		return "", fmt.Errorf("unable to load password: %w", err)
	}
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(p.User),
		url.QueryEscape(password),
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	), nil
}

// PostgresURL prefers DATABASE_URL and falls back to the POSTGRES_* parts.
func (s Store) PostgresURL() (string, error) {
	if s.DatabaseURL != "" {
		return s.DatabaseURL, nil
	}
	u, err := s.Postgres.URL()
	if err != nil {
		return "", fmt.Errorf("no DATABASE_URL set; %w", err)
	}
	return u, nil
}
