package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config reúne toda la configuración del servicio, cargada de variables de
// entorno (con .env opcional para desarrollo).
type Config struct {
	Server struct {
		Port     string `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		CORS     struct {
			AllowOrigins string `envconfig:"ALLOW_ORIGINS" default:"http://localhost:3000"`
		} `envconfig:"CORS"`
	} `envconfig:"SERVER"`

	DB struct {
		Host     string `envconfig:"HOST" default:"localhost"`
		Port     string `envconfig:"PORT" default:"5432"`
		User     string `envconfig:"USER" default:"postgres"`
		Password string `envconfig:"PASSWORD"`
		Name     string `envconfig:"NAME" default:"aurora"`
		SSLMode  string `envconfig:"SSLMODE" default:"disable"`
	} `envconfig:"DB"`

	Redis struct {
		Addr     string `envconfig:"ADDR" default:"localhost:6379"`
		Password string `envconfig:"PASSWORD"`
		DB       int    `envconfig:"DB" default:"0"`
		TTL      int    `envconfig:"TTL" default:"300"`
	} `envconfig:"REDIS"`

	JWT struct {
		Secret        string `envconfig:"SECRET"`
		ExpireMinutes int    `envconfig:"EXPIRE_MIN" default:"480"`
	} `envconfig:"JWT"`

	S3 struct {
		Region string `envconfig:"REGION" default:"us-east-1"`
		Bucket string `envconfig:"BUCKET"`
	} `envconfig:"S3"`

	RateLimit struct {
		WindowSeconds int `envconfig:"WINDOW_SECONDS" default:"60"`
		MaxRequests   int `envconfig:"MAX_REQUESTS" default:"10"`
	} `envconfig:"RATE_LIMIT"`
}

var (
	conf Config
	once sync.Once
)

// LoadConfig carga la configuración una sola vez y la valida.
func LoadConfig() (*Config, error) {
	var err error
	once.Do(func() {
		if dotErr := godotenv.Load(); dotErr != nil {
			log.Info().Msg("archivo .env no encontrado, usando variables de entorno")
		}
		err = envconfig.Process("", &conf)
	})
	if err != nil {
		return nil, fmt.Errorf("error procesando variables de entorno: %w", err)
	}
	if conf.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET es requerido")
	}
	return &conf, nil
}

// GetDBConnString arma el connection string de Postgres.
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name, c.DB.SSLMode,
	)
}
