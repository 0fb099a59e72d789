package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	for _, key := range []string{
		"SEED_ENDPOINT", "SEED_USER_COUNT", "SEED_USERNAME_PREFIX", "SEED_PASSWORD",
		"SEED_OUTPUT_PATH", "SEED_ON_ERROR", "SEED_HTTP_TIMEOUT", "DEMO_MODE",
	} {
		t.Setenv(key, "")
	}

	cfg := New()

	assert.Equal(t, "http://localhost:8080/api/auth", cfg.Seed.Endpoint)
	assert.Equal(t, 1000, cfg.Seed.UserCount)
	assert.Equal(t, "user_", cfg.Seed.UsernamePrefix)
	assert.Equal(t, "password", cfg.Seed.Password)
	assert.Equal(t, "users.txt", cfg.Seed.OutputPath)
	assert.Equal(t, "abort", cfg.Seed.OnError)
	assert.Zero(t, cfg.Seed.HTTPTimeout)
	assert.True(t, cfg.DemoMode)
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("SEED_USER_COUNT", "25")
	t.Setenv("SEED_HTTP_TIMEOUT", "3s")
	t.Setenv("SEED_ON_ERROR", "skip")

	cfg := New()

	assert.Equal(t, 25, cfg.Seed.UserCount)
	assert.Equal(t, 3*time.Second, cfg.Seed.HTTPTimeout)
	assert.Equal(t, "skip", cfg.Seed.OnError)
}

func TestNew_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("SEED_USER_COUNT", "many")
	t.Setenv("SEED_HTTP_TIMEOUT", "soon")

	cfg := New()

	assert.Equal(t, 1000, cfg.Seed.UserCount)
	assert.Zero(t, cfg.Seed.HTTPTimeout)
}

func TestGetDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5432", User: "seed", Password: "secret", DBName: "authstub", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://seed:secret@db:5432/authstub?sslmode=disable", cfg.GetDatabaseURL())

	cfg.Database.Password = ""
	cfg.Database.SSLMode = ""
	assert.Equal(t, "postgres://seed@db:5432/authstub", cfg.GetDatabaseURL())
}

func TestGetJWTExpiry(t *testing.T) {
	cfg := &Config{JWT: JWTConfig{Expiry: "2h"}}
	assert.Equal(t, 2*time.Hour, cfg.GetJWTExpiry())

	cfg.JWT.Expiry = "bogus"
	assert.Equal(t, 24*time.Hour, cfg.GetJWTExpiry())
}
