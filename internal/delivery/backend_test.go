package delivery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio/internal/config"
	"portfolio/internal/domain"
)

func TestNewSelectsBackend(t *testing.T) {
	tests := []struct {
		backend string
		name    string
		kind    domain.DeliveryKind
	}{
		{config.BackendMongo, "mongo", domain.KindPersistence},
		{config.BackendDatabase, "database", domain.KindPersistence},
		{config.BackendSMTP, "smtp", domain.KindRelay},
		{config.BackendSES, "ses", domain.KindRelay},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := &config.Config{Delivery: config.DeliveryConfig{Backend: tt.backend, ConnectTimeout: time.Second}}
			b, err := New(context.Background(), cfg, zap.NewNop())
			require.NoError(t, err)
			assert.Equal(t, tt.name, b.Name())
			assert.Equal(t, tt.kind, b.Kind())
			assert.NoError(t, b.Close(context.Background()))
		})
	}

	_, err := New(context.Background(), &config.Config{Delivery: config.DeliveryConfig{Backend: "fax"}}, zap.NewNop())
	assert.Error(t, err)
}

func TestStoreBackendsSatisfyLister(t *testing.T) {
	var b Backend = &Store{}
	_, ok := b.(Lister)
	assert.True(t, ok)

	b = &Relay{}
	_, ok = b.(Lister)
	assert.False(t, ok)
}
