package campusdir

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

// Store drivers.
const (
	driverValkey = "valkey"
	driverRedis  = "redis"
	driverMongo  = "mongo"
	driverMemory = "memory"
)

type clientConfig struct {
	driver    string
	addrs     []string
	password  string
	keyPrefix string
	mongoURI  string
	mongoDB   string

	prefixes         []CodePrefix
	readinessTimeout time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithValkey connects to a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverValkey
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis connects to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithMongo connects to a MongoDB deployment. Batch writes use transactions,
// so the deployment must be a replica set.
func WithMongo(uri, database string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverMongo
		c.mongoURI = uri
		c.mongoDB = database
	})
}

// WithMemory keeps all data in process memory. Useful for tests and tools.
func WithMemory() Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverMemory
	})
}

// WithKeyPrefix namespaces Valkey/Redis keys. Default: "campusdir:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithCodePrefixes replaces the room-code prefix table used by Search.
// Default: T-, PG-, MA-, MB-, G-, L-.
func WithCodePrefixes(prefixes ...CodePrefix) Option {
	return optionFunc(func(c *clientConfig) {
		c.prefixes = prefixes
	})
}

// WithReadinessTimeout bounds the initial wait for the store. Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
