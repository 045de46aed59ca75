package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort       string   `env:"HTTP_PORT" envDefault:"3000"`
	DatabaseURL    string   `env:"DATABASE_URL,required"`
	JWTSecret      string   `env:"JWT_SECRET,required"`
	JWTTTLMinutes  int      `env:"JWT_TTL_MINUTES" envDefault:"1440"`
	GoogleClientID string   `env:"GOOGLE_CLIENT_ID"`
	CORSOrigins    []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	MigrateOnStart bool     `env:"MIGRATE_ON_START" envDefault:"true"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
