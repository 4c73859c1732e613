package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del servicio.
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Log      LogConfig
	Storage  StorageConfig
	Identity IdentityConfig
	Profile  ProfileConfig
	Activity ActivityConfig
}

type AppConfig struct {
	Name string
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string
	Format string
}

// StorageConfig: driver = memory | sqlite | postgres.
type StorageConfig struct {
	Driver string
	DSN    string
}

// IdentityConfig apunta al identity provider externo.
// Si BaseURL está vacío se usa el verifier local (modo dev).
type IdentityConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	APIKey       string `mapstructure:"api_key"`
	APIKeyHeader string `mapstructure:"api_key_header"`
	Timeout      time.Duration
}

type ProfileConfig struct {
	LenientCommit bool `mapstructure:"lenient_commit"`
}

type ActivityConfig struct {
	DailyStepGoal int `mapstructure:"daily_step_goal"`

	// metas semanales; 0 = default del servicio
	WeeklyDistanceGoalKm float64 `mapstructure:"weekly_distance_goal_km"`
	WeeklyCalorieGoal    int     `mapstructure:"weekly_calorie_goal"`
}

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Load lee defaults, archivo opcional (ZOOMIE_CONFIG) y env con prefijo ZOOMIE_.
// PORT y DB_DSN se respetan por compatibilidad con el deploy anterior.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "zoomieband")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.dsn", "")
	v.SetDefault("identity.base_url", "")
	v.SetDefault("identity.api_key", "")
	v.SetDefault("identity.api_key_header", "X-Api-Key")
	v.SetDefault("identity.timeout", 5*time.Second)
	v.SetDefault("profile.lenient_commit", false)
	v.SetDefault("activity.daily_step_goal", 10000)
	v.SetDefault("activity.weekly_distance_goal_km", 50.0)
	v.SetDefault("activity.weekly_calorie_goal", 2500)

	if path := strings.TrimSpace(os.Getenv("ZOOMIE_CONFIG")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("ZOOMIE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
		v.Set("server.port", p)
	}
	if dsn := strings.TrimSpace(os.Getenv("DB_DSN")); dsn != "" && os.Getenv("ZOOMIE_STORAGE_DSN") == "" {
		v.Set("storage.dsn", dsn)
		if os.Getenv("ZOOMIE_STORAGE_DRIVER") == "" {
			v.Set("storage.driver", DriverPostgres)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate revisa combinaciones que no tienen sentido antes de arrancar.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite, DriverPostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("storage.dsn required for driver %q", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}
	if c.Activity.DailyStepGoal <= 0 {
		return fmt.Errorf("activity.daily_step_goal must be positive")
	}
	if c.Activity.WeeklyDistanceGoalKm < 0 || c.Activity.WeeklyCalorieGoal < 0 {
		return fmt.Errorf("activity weekly goals must not be negative")
	}
	return nil
}

// Addr devuelve la dirección de escucha (":8080").
func (c Config) Addr() string {
	p := strings.TrimPrefix(strings.TrimSpace(c.Server.Port), ":")
	if p == "" {
		p = "8080"
	}
	return ":" + p
}
