package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	BackendREST     = "rest"
	BackendPostgres = "postgres"
)

type Config struct {
	App struct {
		Env string
	} `mapstructure:"app"`

	Backend struct {
		Kind    string
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"backend"`

	Auth struct {
		Token string
	} `mapstructure:"auth"`

	Postgres struct {
		DSN    string
		UserID int64 `mapstructure:"user_id"`
	} `mapstructure:"postgres"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Telegram struct {
		Token  string
		ChatID int64 `mapstructure:"chat_id"`
	} `mapstructure:"telegram"`

	Store struct {
		RollbackFailedUpdates bool `mapstructure:"rollback_failed_updates"`
		DiscardStaleLoads     bool `mapstructure:"discard_stale_loads"`
	} `mapstructure:"store"`
}

var defaults = map[string]any{
	"app.env":                       "dev",
	"backend.kind":                  BackendREST,
	"backend.base_url":              "",
	"backend.timeout":               10 * time.Second,
	"auth.token":                    "",
	"postgres.dsn":                  "",
	"postgres.user_id":              0,
	"http.addr":                     ":8080",
	"metrics.enabled":               true,
	"telegram.token":                "",
	"telegram.chat_id":              0,
	"store.rollback_failed_updates": false,
	"store.discard_stale_loads":     false,
}

// Load читает yaml по path (пустой path — только ENV) и переменные APP_*,
// например APP_BACKEND_BASE_URL. Файл .env подхватывается, если он есть.
func Load(path string) (Config, error) {
	_ = gotenv.Load()

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return c, err
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	var errs []error
	switch c.Backend.Kind {
	case BackendREST:
		if c.Backend.BaseURL == "" {
			errs = append(errs, errors.New("backend.base_url is required for rest backend"))
		}
	case BackendPostgres:
		if c.Postgres.DSN == "" {
			errs = append(errs, errors.New("postgres.dsn is required for postgres backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown backend.kind %q", c.Backend.Kind))
	}
	if c.Telegram.Token != "" && c.Telegram.ChatID == 0 {
		errs = append(errs, errors.New("telegram.chat_id is required when telegram.token is set"))
	}
	return errors.Join(errs...)
}
