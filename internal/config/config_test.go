package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("EMAIL_USER", "owner@example.com")

	cfg, err := Load("testdata/does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, BackendMongo, cfg.Delivery.Backend)
	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, "portfolio", cfg.Mongo.Database)
	assert.Equal(t, "contacts", cfg.Mongo.Collection)
	assert.Equal(t, 10*time.Second, cfg.Delivery.ConnectTimeout)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "owner@example.com", cfg.SMTP.Recipient, "recipient falls back to the SMTP account")
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.AdminEnabled())
}

func TestLoadStoreBackendsFailFast(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")

	t.Setenv("DELIVERY_BACKEND", "database")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadRelayDefersCredentials(t *testing.T) {
	t.Setenv("DELIVERY_BACKEND", "SMTP")
	t.Setenv("EMAIL_USER", "")
	t.Setenv("EMAIL_PASS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendSMTP, cfg.Delivery.Backend)
	assert.Empty(t, cfg.SMTP.Username)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("DELIVERY_BACKEND", "carrier-pigeon")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon")
}

func TestLoadAdminRequiresSecret(t *testing.T) {
	t.Setenv("DELIVERY_BACKEND", "ses")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("SECRET_KEY", "short")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("SECRET_KEY", "0123456789abcdef0123456789abcdef")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.AdminEnabled())
}

func TestAllowedOriginsTrimmed(t *testing.T) {
	t.Setenv("DELIVERY_BACKEND", "smtp")
	t.Setenv("ALLOWED_ORIGINS", "https://me.dev, https://www.me.dev,")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://me.dev", "https://www.me.dev"}, cfg.CORS.AllowedOrigins)
}

func TestDatabaseURLHelpers(t *testing.T) {
	tests := []struct {
		url      string
		postgres bool
		dsn      string
	}{
		{
			url:      "postgresql://ana:s3:cret@db.internal:6543/contacts?sslmode=require",
			postgres: true,
			dsn:      "host=db.internal port=6543 user=ana dbname=contacts sslmode=require password=s3:cret",
		},
		{
			url:      "postgres://ana@localhost",
			postgres: true,
			dsn:      "host=localhost port=5432 user=ana dbname=postgres sslmode=disable",
		},
		{
			url:      "host=localhost user=ana dbname=contacts",
			postgres: true,
			dsn:      "host=localhost user=ana dbname=contacts",
		},
	}
	for _, tt := range tests {
		c := DatabaseConfig{URL: tt.url}
		assert.Equal(t, tt.postgres, c.IsPostgres(), tt.url)
		assert.Equal(t, tt.dsn, c.GetPostgresDSN(), tt.url)
	}

	sqlite := DatabaseConfig{URL: "sqlite:///./contacts.db"}
	assert.False(t, sqlite.IsPostgres())
	assert.Equal(t, "./contacts.db", sqlite.GetSQLitePath())
}
