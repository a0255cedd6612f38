package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tedlabs/users-api/internal/config"
	"github.com/tedlabs/users-api/internal/log"
)

func TestClient_NotConfigured(t *testing.T) {
	t.Parallel()

	p := NewProvider(&config.Config{}, log.NewNop())
	if _, err := p.Client(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestClient_UsesInjectedHandle(t *testing.T) {
	t.Parallel()

	// The driver does not dial until the client is used, so this is safe
	// without a running server.
	injected, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Fatalf("mongo.Connect error: %v", err)
	}
	t.Cleanup(func() { _ = injected.Disconnect(context.Background()) })

	// No URI configured: without the injected handle, Client would fail.
	p := NewProvider(&config.Config{}, log.NewNop())
	p.Set(injected)

	got, err := p.Client(context.Background())
	if err != nil {
		t.Fatalf("Client error: %v", err)
	}
	if got != injected {
		t.Fatal("Client did not return the injected handle")
	}
}

func TestClient_LazyDialFailure(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{MongoURI: "mongodb://127.0.0.1:1", DatabaseName: "userdb"}
	p := NewProvider(cfg, log.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	if _, err := p.Client(ctx); err == nil {
		t.Fatal("expected a dial error for an unreachable store")
	}

	// The failed attempt must not leave a half-open handle behind.
	if _, err := p.Client(ctx); errors.Is(err, ErrNotConfigured) {
		t.Fatalf("retry reported ErrNotConfigured, URI is configured: %v", err)
	}
}

func TestDisconnect_ClearsHandle(t *testing.T) {
	t.Parallel()

	injected, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Fatalf("mongo.Connect error: %v", err)
	}

	p := NewProvider(&config.Config{}, log.NewNop())
	p.Set(injected)

	if err := p.Disconnect(context.Background()); err != nil {
		t.Fatalf("Disconnect error: %v", err)
	}
	if _, err := p.Client(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured after disconnect, got %v", err)
	}
}
