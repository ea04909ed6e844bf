// Package delivery turns a validated contact submission into either a
// stored record or an outbound email. Exactly one Backend is active per
// deployment; New picks it from configuration.
package delivery

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/domain"
)

// Backend delivers a submission exactly once per call.
type Backend interface {
	Name() string
	Kind() domain.DeliveryKind
	// Deliver returns an *errors.AppError coded STORE_UNAVAILABLE,
	// WRITE_FAILED, TRANSPORT_UNAVAILABLE or SEND_FAILED on failure.
	Deliver(ctx context.Context, s domain.Submission) (*domain.Receipt, error)
	Close(ctx context.Context) error
}

// Lister is implemented by backends that keep what they deliver.
type Lister interface {
	List(ctx context.Context, skip, limit int) ([]domain.ContactInquiry, error)
}

// New builds the backend selected by cfg.Delivery.Backend. Store backends
// do not dial here; the connection is established on first delivery.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Backend, error) {
	log := logger.Named("delivery")
	timeout := cfg.Delivery.ConnectTimeout

	switch cfg.Delivery.Backend {
	case config.BackendMongo:
		handle := database.NewLazy[database.Collection](config.BackendMongo, timeout, database.DialMongo(cfg.Mongo, log.Named("db")))
		return NewStore(handle), nil
	case config.BackendDatabase:
		handle := database.NewLazy[database.Collection](config.BackendDatabase, timeout, database.DialSQL(cfg.Database, log.Named("db")))
		return NewStore(handle), nil
	case config.BackendSMTP:
		return NewRelay(NewSMTPTransport(cfg.SMTP), cfg.SMTP.Recipient), nil
	case config.BackendSES:
		return NewRelay(NewSESTransport(ctx, cfg.SES, log), cfg.SES.Recipient), nil
	}
	return nil, fmt.Errorf("unknown delivery backend %q", cfg.Delivery.Backend)
}
