package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`
	DBURL       string `env:"DB_URL" env-required:"true"`
	CORSOrigin  string `env:"CORS_ORIGIN" env-default:"http://localhost:5173"`

	JWTSecret string        `env:"JWT_SECRET" env-required:"true"`
	JWTTTL    time.Duration `env:"JWT_TTL" env-default:"24h"`

	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"LOG_FORMAT" env-default:"json"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"30s"`
	MaxUploadMB    int64         `env:"MAX_UPLOAD_MB" env-default:"50"`

	S3        S3
	RateLimit RateLimit
}

type S3 struct {
	Region          string `env:"AWS_REGION" env-default:"us-east-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	Bucket          string `env:"AWS_S3_BUCKET_NAME" env-required:"true"`
	// Endpoint is only set for S3-compatible stores (minio, localstack).
	Endpoint string `env:"AWS_S3_ENDPOINT"`
}

// RateLimit holds requests per minute for each route class.
type RateLimit struct {
	GeneralPerMin int `env:"RATE_GENERAL_PER_MIN" env-default:"300"`
	AuthPerMin    int `env:"RATE_AUTH_PER_MIN" env-default:"10"`
	WritePerMin   int `env:"RATE_WRITE_PER_MIN" env-default:"60"`
	UploadPerMin  int `env:"RATE_UPLOAD_PER_MIN" env-default:"20"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found. Using system environment variables.")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
