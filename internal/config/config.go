// Package config handles runtime configuration for the users API: development
// defaults first, then environment variable overlay. The -production flag
// switches the MongoDB URI from the local default to one composed from the
// MONGO_* credentials, matching how the server is deployed behind docker.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// ErrNoTokenSecret is returned when no signing secret is configured.
var ErrNoTokenSecret = errors.New("TOKEN_SECRET is not set")

// Config holds runtime settings for the users API server.
type Config struct {
	// Port the HTTP server listens on.
	Port int
	// MongoURI is the connection string for the backing store. Empty means
	// the connection provider cannot lazily construct a client.
	MongoURI string
	// DatabaseName is the Mongo database holding the users and accounts collections.
	DatabaseName string
	// TokenSecret is the HMAC secret used to sign JWTs (HS256).
	TokenSecret string
	// RabbitMQAddr enables user lifecycle event publishing when non-empty.
	RabbitMQAddr string
	RabbitMQUser string
	RabbitMQPass string
	// Production reports whether the -production flag was set.
	Production bool
}

// LoadDefaults populates Config with local development defaults.
// NOTE: these values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Port = 5000
	c.MongoURI = "mongodb://localhost:27017"
	c.DatabaseName = "userdb"
	c.RabbitMQUser = "guest"
	c.RabbitMQPass = "guest"
}

// Load builds a Config by applying defaults and overlaying environment
// variables. In production mode the Mongo URI is composed from
// MONGO_INITDB_ROOT_USERNAME, MONGO_INITDB_ROOT_PASSWORD and MONGO_IP;
// a plain MONGODB_URI overrides either choice when set.
func Load(production bool) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.Production = production

	if production {
		user := os.Getenv("MONGO_INITDB_ROOT_USERNAME")
		pass := os.Getenv("MONGO_INITDB_ROOT_PASSWORD")
		host := os.Getenv("MONGO_IP")
		if user == "" || pass == "" || host == "" {
			// Leave the URI empty so the connection provider fails with a
			// configuration error instead of silently dialing localhost.
			cfg.MongoURI = ""
		} else {
			cfg.MongoURI = fmt.Sprintf("mongodb://%s:%s@%s:27017", user, pass, host)
		}
	}
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		cfg.MongoURI = uri
	}

	if name := os.Getenv("MONGODB_DATABASE"); name != "" {
		cfg.DatabaseName = name
	}

	cfg.TokenSecret = os.Getenv("TOKEN_SECRET")
	if cfg.TokenSecret == "" {
		return nil, ErrNoTokenSecret
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Port = p
	}

	cfg.RabbitMQAddr = os.Getenv("RABBITMQ_ADDR")
	if user := os.Getenv("RABBITMQ_DEFAULT_USER"); user != "" {
		cfg.RabbitMQUser = user
	}
	if pass := os.Getenv("RABBITMQ_DEFAULT_PASS"); pass != "" {
		cfg.RabbitMQPass = pass
	}

	return cfg, nil
}
