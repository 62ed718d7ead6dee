package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadContext_Defaults(t *testing.T) {
	cfg, err := LoadContext(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" {
		t.Fatalf("unexpected http defaults: %+v", cfg)
	}
	if cfg.Auth.AccessTTL != 24*time.Hour || cfg.Auth.ResetTTL != time.Hour {
		t.Fatalf("unexpected token ttls: %+v", cfg.Auth)
	}
	if cfg.Notify.Workers != 4 || cfg.Notify.Timeout != 10*time.Second {
		t.Fatalf("unexpected notify defaults: %+v", cfg.Notify)
	}
	if cfg.Laundry.RejectUnknownItems {
		t.Fatal("unknown laundry items should be dropped by default")
	}
	if cfg.RabbitMQ.URL != "" || cfg.RabbitMQ.Exchange != "hotel.events" {
		t.Fatalf("unexpected rabbitmq defaults: %+v", cfg.RabbitMQ)
	}
	if !cfg.IsDevelopment() {
		t.Fatal("expected development env")
	}
}

func TestLoadContext_Overrides(t *testing.T) {
	cfg, err := LoadContext(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":                   "s3cret",
		"ENV":                          "production",
		"ACCESS_TOKEN_TTL":             "2h",
		"LAUNDRY_REJECT_UNKNOWN_ITEMS": "true",
		"CORS_ORIGINS":                 "https://a.example,https://b.example",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Auth.AccessTTL != 2*time.Hour {
		t.Fatalf("expected 2h access ttl, got %s", cfg.Auth.AccessTTL)
	}
	if !cfg.Laundry.RejectUnknownItems {
		t.Fatal("expected strict laundry pricing")
	}
	if len(cfg.AllowOrigins) != 2 {
		t.Fatalf("expected two origins, got %v", cfg.AllowOrigins)
	}
	if cfg.IsDevelopment() {
		t.Fatal("production must not be development")
	}
}

func TestLoadContext_MissingSecret(t *testing.T) {
	if _, err := LoadContext(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
}
