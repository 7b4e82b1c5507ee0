package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// RedisAddr switches the cart store to redis when set.
	RedisAddr string `envconfig:"REDIS_ADDR" default:""`

	// KafkaBrokers (comma separated) switches event publishing to
	// kafka when set.
	KafkaBrokers string `envconfig:"KAFKA_BROKERS" default:""`
	OrderTopic   string `envconfig:"ORDER_TOPIC" default:"campuseats.orders"`

	CartTTL           time.Duration `envconfig:"CART_TTL" default:"5m"`
	CartSweepInterval time.Duration `envconfig:"CART_SWEEP_INTERVAL" default:"1m"`

	SlotCapacity int `envconfig:"SLOT_CAPACITY" default:"5"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
