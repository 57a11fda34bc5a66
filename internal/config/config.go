// Package config carga la configuración del BFF desde variables de entorno
// (y opcionalmente desde un YAML apuntado por CONFIG_PATH).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env string `yaml:"env" env:"APP_ENV" env-default:"local"`

	HTTPServer `yaml:"http_server"`
	Upstreams  `yaml:"upstreams"`
	Circuit    `yaml:"circuit"`
	Redis      `yaml:"redis"`
	RateLimit  `yaml:"rate_limit"`
	Log        `yaml:"log"`

	RecentActivityLimit int `yaml:"recent_activity_limit" env:"RECENT_ACTIVITY_LIMIT" env-default:"3"`

	// Timezone de los timestamps sin zona que mandan los servicios
	// y de las ventanas "este mes" / "esta semana".
	Timezone string `yaml:"timezone" env:"DATA_TIMEZONE" env-default:"UTC"`
}

type HTTPServer struct {
	Addr         string        `yaml:"addr" env:"HTTP_ADDR" env-default:":8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Upstreams son las URLs base de los tres microservicios.
type Upstreams struct {
	UsersURL   string        `yaml:"users_url" env:"USUARIOS_API_URL" env-default:"http://localhost:3001"`
	PlansURL   string        `yaml:"plans_url" env:"PLANOS_API_URL" env-default:"https://python-microservice-production-33dc.up.railway.app"`
	RecipesURL string        `yaml:"recipes_url" env:"RECEITAS_API_URL" env-default:"https://receitamicroservice.onrender.com"`
	Timeout    time.Duration `yaml:"timeout" env:"UPSTREAM_TIMEOUT" env-default:"10s"`

	// MaxBodyBytes: una respuesta más grande es un fallo de la llamada.
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"UPSTREAM_MAX_BODY_BYTES" env-default:"8388608"`
}

// Circuit controla la caché de salud por servicio.
// Cooldown = 0 desactiva el corte de llamadas.
type Circuit struct {
	Cooldown time.Duration `yaml:"cooldown" env:"CIRCUIT_COOLDOWN" env-default:"10s"`
	Backend  string        `yaml:"backend" env:"HEALTH_CACHE" env-default:"memory"`
}

type Redis struct {
	Addr        string        `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB          int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	DialTimeout time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"2s"`
}

// RateLimit: RPS <= 0 desactiva el limitador.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env:"RATE_LIMIT_RPS" env-default:"0"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"10"`
}

type Log struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
	App    string `yaml:"app" env:"APP_NAME" env-default:"nutriplan-dashboard"`
}

const (
	HealthCacheMemory = "memory"
	HealthCacheRedis  = "redis"
)

var ErrInvalidConfig = errors.New("invalid config")

// Load lee .env (si existe), luego CONFIG_PATH (si está seteado) y por último
// las variables de entorno. Las env vars siempre ganan.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	for name, v := range map[string]string{
		"USUARIOS_API_URL": c.UsersURL,
		"PLANOS_API_URL":   c.PlansURL,
		"RECEITAS_API_URL": c.RecipesURL,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidConfig, name)
		}
	}
	switch c.Circuit.Backend {
	case HealthCacheMemory, HealthCacheRedis:
	default:
		return fmt.Errorf("%w: HEALTH_CACHE must be %q or %q", ErrInvalidConfig, HealthCacheMemory, HealthCacheRedis)
	}
	if c.Circuit.Cooldown < 0 {
		return fmt.Errorf("%w: CIRCUIT_COOLDOWN must be >= 0", ErrInvalidConfig)
	}
	if c.Upstreams.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: UPSTREAM_MAX_BODY_BYTES must be > 0", ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: DATA_TIMEZONE: %w", ErrInvalidConfig, err)
	}
	if c.RecentActivityLimit <= 0 {
		return fmt.Errorf("%w: RECENT_ACTIVITY_LIMIT must be > 0", ErrInvalidConfig)
	}
	return nil
}

// Location resuelve Timezone. Vacío = UTC.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(tz)
}
