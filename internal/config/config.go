package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuracion del servicio. Las constantes de
// ajuste (temperatura, half-life, pesos) son autoradas a mano, no
// estadistica validada: por eso viven aca y no en el codigo.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Token de servicio para endpoints de escritura; vacio = sin guardia.
	ServiceTokenSecret string `env:"SERVICE_TOKEN_SECRET"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPass     string `env:"SMTP_PASS"`
	SMTPFrom     string `env:"SMTP_FROM"`
	SMTPFromName string `env:"SMTP_FROM_NAME"`
	SMTPUseTLS   bool   `env:"SMTP_USE_TLS" envDefault:"false"`

	// Clasificador.
	SoftmaxTemperature float64 `env:"SOFTMAX_TEMPERATURE" envDefault:"0.12"`
	AestheticWeight    float64 `env:"AESTHETIC_WEIGHT" envDefault:"1.5"`

	// Predictor.
	SignalHalfLifeHours int     `env:"SIGNAL_HALF_LIFE_HOURS" envDefault:"168"`
	SignalDecayFloor    float64 `env:"SIGNAL_DECAY_FLOOR" envDefault:"0.05"`
	SignalExpectedMax   float64 `env:"SIGNAL_EXPECTED_MAX" envDefault:"40"`
	ReturnOrganicWeight float64 `env:"RETURN_ORGANIC_WEIGHT" envDefault:"0.5"`
	ReturnFreqWeight    float64 `env:"RETURN_FREQ_WEIGHT" envDefault:"0.25"`
	ReturnConsistWeight float64 `env:"RETURN_CONSIST_WEIGHT" envDefault:"0.25"`
	PredictionStaleDays int     `env:"PREDICTION_STALE_DAYS" envDefault:"7"`

	// Tracker.
	DeepDiveThreshold   int `env:"DEEP_DIVE_THRESHOLD" envDefault:"5"`
	DeepDiveWindowHours int `env:"DEEP_DIVE_WINDOW_HOURS" envDefault:"24"`
}

// LoadConfig carga la configuracion desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SignalHalfLife devuelve la half-life como duracion.
func (c *Config) SignalHalfLife() time.Duration {
	return time.Duration(c.SignalHalfLifeHours) * time.Hour
}

// PredictionStaleness devuelve la ventana de frescura del cache.
func (c *Config) PredictionStaleness() time.Duration {
	return time.Duration(c.PredictionStaleDays) * 24 * time.Hour
}

// DeepDiveWindow devuelve la ventana movil de deteccion de deep dive.
func (c *Config) DeepDiveWindow() time.Duration {
	return time.Duration(c.DeepDiveWindowHours) * time.Hour
}
