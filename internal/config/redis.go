package config

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig locates the Redis server used for snapshots and the
// response cache. Host and Port take precedence over Addr when both are set.
type RedisConfig struct {
	Addr      string `envconfig:"VENUESIM_REDIS_ADDR" default:"localhost:6379"`
	Host      string `envconfig:"VENUESIM_REDIS_HOST"`
	Port      string `envconfig:"VENUESIM_REDIS_PORT"`
	Password  string `envconfig:"VENUESIM_REDIS_PASSWORD"`
	DB        int    `envconfig:"VENUESIM_REDIS_DB" default:"0"`
	TLS       bool   `envconfig:"VENUESIM_REDIS_TLS" default:"false"`
	KeyPrefix string `envconfig:"VENUESIM_REDIS_KEY_PREFIX" default:"venuesim"`
}

func (r RedisConfig) address() string {
	if r.Host != "" && r.Port != "" {
		return r.Host + ":" + r.Port
	}
	if r.Addr == "" {
		return "localhost:6379"
	}
	return r.Addr
}

// NewRedisClient builds a client and pings it with a short timeout. It
// returns nil when the server cannot be reached; callers degrade by
// disabling whatever needed Redis.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	var tlsConf *tls.Config
	if cfg.TLS {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      cfg.address(),
		Password:  cfg.Password,
		DB:        cfg.DB,
		TLSConfig: tlsConf,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
