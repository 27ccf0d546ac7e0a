package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/dmedina-dev/consultorio-backend/internal/config"
	"github.com/dmedina-dev/consultorio-backend/internal/dto"
)

func TestHealthEndpoints(t *testing.T) {
	cfg := &config.Config{AppName: "Consultorio Management System", AppVersion: "0.1.0"}
	h := NewHealthHandler(cfg, nil)

	app := fiber.New()
	app.Get("/", h.Root)
	app.Get("/health", h.Check)

	res, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("root request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var root dto.RootResponse
	if err := json.NewDecoder(res.Body).Decode(&root); err != nil {
		t.Fatalf("failed to decode root response: %v", err)
	}
	if root.App != cfg.AppName || root.Status != "running" {
		t.Fatalf("unexpected root payload %+v", root)
	}

	res, err = app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	var health dto.HealthResponse
	if err := json.NewDecoder(res.Body).Decode(&health); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if health.Status != "healthy" {
		t.Fatalf("unexpected health payload %+v", health)
	}
}
