package config

import (
	"errors"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TOKEN_SECRET", "PORT", "MONGODB_URI", "MONGODB_DATABASE",
		"MONGO_INITDB_ROOT_USERNAME", "MONGO_INITDB_ROOT_PASSWORD", "MONGO_IP",
		"RABBITMQ_ADDR", "RABBITMQ_DEFAULT_USER", "RABBITMQ_DEFAULT_PASS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_SECRET", "s3cret")

	cfg, err := Load(false)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Fatalf("unexpected default URI: %q", cfg.MongoURI)
	}
	if cfg.Port != 5000 {
		t.Fatalf("unexpected default port: %d", cfg.Port)
	}
	if cfg.DatabaseName != "userdb" {
		t.Fatalf("unexpected default database: %q", cfg.DatabaseName)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	clearEnv(t)

	_, err := Load(false)
	if !errors.Is(err, ErrNoTokenSecret) {
		t.Fatalf("expected ErrNoTokenSecret, got %v", err)
	}
}

func TestLoad_PortOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_SECRET", "s3cret")
	t.Setenv("PORT", "8080")

	cfg, err := Load(false)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("PORT override not honored: %d", cfg.Port)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_SECRET", "s3cret")
	t.Setenv("PORT", "not-a-port")

	if _, err := Load(false); err == nil {
		t.Fatal("expected an error for a non-numeric PORT")
	}
}

func TestLoad_ProductionComposesURI(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_SECRET", "s3cret")
	t.Setenv("MONGO_INITDB_ROOT_USERNAME", "root")
	t.Setenv("MONGO_INITDB_ROOT_PASSWORD", "pw")
	t.Setenv("MONGO_IP", "mongo")

	cfg, err := Load(true)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := "mongodb://root:pw@mongo:27017"
	if cfg.MongoURI != want {
		t.Fatalf("composed URI mismatch: got %q want %q", cfg.MongoURI, want)
	}
	if !cfg.Production {
		t.Fatal("Production flag not recorded")
	}
}

func TestLoad_ProductionMissingComponents(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_SECRET", "s3cret")
	t.Setenv("MONGO_INITDB_ROOT_USERNAME", "root")

	cfg, err := Load(true)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.MongoURI != "" {
		t.Fatalf("expected empty URI when components are missing, got %q", cfg.MongoURI)
	}
}

func TestLoad_ExplicitURIWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_SECRET", "s3cret")
	t.Setenv("MONGODB_URI", "mongodb://elsewhere:27017")
	t.Setenv("MONGO_INITDB_ROOT_USERNAME", "root")
	t.Setenv("MONGO_INITDB_ROOT_PASSWORD", "pw")
	t.Setenv("MONGO_IP", "mongo")

	cfg, err := Load(true)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.MongoURI != "mongodb://elsewhere:27017" {
		t.Fatalf("MONGODB_URI should override the composed URI, got %q", cfg.MongoURI)
	}
}
