package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN            string `env:"DSN,required"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout   int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		MaxOpenConns   int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns   int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime    int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	Redis struct {
		Host           string `env:"HOST" envDefault:"localhost"`
		Port           int    `env:"PORT" envDefault:"6379"`
		Password       string `env:"PASSWORD,required"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		LockExpiration int    `env:"LOCK_EXPIRATION" envDefault:"120"` // seconds
	} `envPrefix:"REDIS_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Email struct {
		MaintainerAddress string `env:"MAINTAINER_ADDRESS,required"`
		SMTP              struct {
			Username    string `env:"USERNAME,required"`
			Password    string `env:"PASSWORD,required"`
			Host        string `env:"HOST,required"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	JWT struct {
		Expiration int    `env:"EXPIRATION" envDefault:"86400"` // 1 day
		Secret     string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	Admin struct {
		Username string `env:"USERNAME" envDefault:"admin"`
		Password string `env:"PASSWORD,required"`
	} `envPrefix:"ADMIN_"`
	Cache struct {
		MaxAgeHours int `env:"MAX_AGE_HOURS" envDefault:"12"`
	} `envPrefix:"CACHE_"`
	Source struct {
		// BaseURL is expanded with the region id: BASE_URL/<region>.pdf
		BaseURL      string `env:"BASE_URL,required"`
		FetchTimeout int    `env:"FETCH_TIMEOUT" envDefault:"30"`
		// Backend selects the extraction strategy: coordinate or stream.
		Backend string `env:"BACKEND" envDefault:"coordinate"`
	} `envPrefix:"SOURCE_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// Returning only the first error keeps the log readable
			return nil, aggErr.Errors[0]
		}
	}

	return cfg, nil
}
