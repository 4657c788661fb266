package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AMADEUS_CLIENT_ID", "")
	t.Setenv("AMADEUS_CLIENT_SECRET", "")
	t.Setenv("AMADEUS_ENV", "")
	t.Setenv("UPSTREAM_TIMEOUT", "")
	t.Setenv("DATABASE_URL", "")

	cfg := Load()

	assert.False(t, cfg.Amadeus.Configured())
	assert.Equal(t, "https://test.api.amadeus.com", cfg.Amadeus.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Contains(t, cfg.DSN(), "sslmode=")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AMADEUS_CLIENT_ID", "id")
	t.Setenv("AMADEUS_CLIENT_SECRET", "secret")
	t.Setenv("AMADEUS_ENV", "production")
	t.Setenv("UPSTREAM_TIMEOUT", "5s")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/travel")
	t.Setenv("ALLOWED_ORIGIN", "https://a.example, https://b.example,")

	cfg := Load()

	assert.True(t, cfg.Amadeus.Configured())
	assert.Equal(t, "https://api.amadeus.com", cfg.Amadeus.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "postgres://u:p@db:5432/travel", cfg.DSN())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.FrontendURLs)
}

func TestCredentialsNeedBothHalves(t *testing.T) {
	assert.False(t, Credentials{ClientID: "id"}.Configured())
	assert.False(t, Credentials{ClientSecret: "secret"}.Configured())
	assert.True(t, Credentials{ClientID: "id", ClientSecret: "secret"}.Configured())
}

func TestParseDurationFallsBack(t *testing.T) {
	assert.Equal(t, time.Second, parseDuration("nope", time.Second))
	assert.Equal(t, time.Second, parseDuration("-3s", time.Second))
	assert.Equal(t, 2*time.Minute, parseDuration("2m", time.Second))
}
