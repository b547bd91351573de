package config

import "github.com/kelseyhightower/envconfig"

// Config is the process configuration, read from the environment once at
// startup. A .env file loaded by cmd/main.go can supply the values in
// development.
type Config struct {
	HTTPAddr      string `envconfig:"HTTP_ADDR" default:":8080"`
	PostgresDSN   string `envconfig:"POSTGRES_DSN" default:"host=localhost user=user password=password dbname=partygo port=5432 sslmode=disable"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	JWTSecret     string `envconfig:"JWT_SECRET" required:"true"`
}

func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
