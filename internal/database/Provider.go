// Package database contains the connection provider for the MongoDB backing
// store. The provider owns the process-wide client handle: it can be injected
// explicitly (startup wiring, tests swapping in a mock or in-memory server)
// or constructed lazily from configuration on first use. Every repository
// resolves its collection through the provider per operation, so replacing
// the handle never requires touching a call site.
package database

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tedlabs/users-api/internal/config"
	"github.com/tedlabs/users-api/internal/log"
)

// ErrNotConfigured is returned when no client was injected and no Mongo URI
// is resolvable from configuration.
var ErrNotConfigured = errors.New("no database connection configured")

type Provider struct {
	mu     sync.Mutex
	client *mongo.Client
	cfg    *config.Config
	logger *log.Logger
}

// NewProvider creates a Provider that lazily dials cfg.MongoURI on first use.
func NewProvider(cfg *config.Config, logger *log.Logger) *Provider {
	return &Provider{
		cfg:    cfg,
		logger: logger,
	}
}

// Set replaces the process-wide client handle unconditionally.
func (p *Provider) Set(client *mongo.Client) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.client = client
}

// Client returns the current client handle, lazily dialing the configured
// URI if none has been injected yet. The established client is cached for
// subsequent calls.
func (p *Provider) Client(ctx context.Context) (*mongo.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}
	if p.cfg == nil || p.cfg.MongoURI == "" {
		return nil, ErrNotConfigured
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(p.cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		// Tear the half-open client down so the next call retries cleanly.
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	p.logger.Info("Connected to MongoDB")
	p.client = client
	return p.client, nil
}

// Database resolves the configured application database through Client.
func (p *Provider) Database(ctx context.Context) (*mongo.Database, error) {
	client, err := p.Client(ctx)
	if err != nil {
		return nil, err
	}
	name := "userdb"
	if p.cfg != nil && p.cfg.DatabaseName != "" {
		name = p.cfg.DatabaseName
	}
	return client.Database(name), nil
}

// Disconnect closes the current client handle, if any.
func (p *Provider) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client == nil {
		return nil
	}
	err := p.client.Disconnect(ctx)
	p.client = nil
	return err
}
