package redis

import "time"

// Config holds connection settings, loaded from the environment by cmd/folio.
type Config struct {
	URL           string        `env:"REDIS_URL"`
	PoolSize      int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns  int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	Retries       int           `env:"REDIS_CONNECT_RETRIES" envDefault:"3"`
	RetryInterval time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"1s"`
	DialTimeout   time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout   time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout  time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}
