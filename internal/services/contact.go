package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"portfolio/internal/delivery"
	"portfolio/internal/domain"
	"portfolio/internal/logging"
	"portfolio/internal/metrics"
	apperrors "portfolio/pkg/errors"
)

// ContactService validates contact submissions and hands them to the
// configured delivery backend.
type ContactService struct {
	backend delivery.Backend
	log     *zap.Logger
}

// NewContactService creates a new contact service
func NewContactService(backend delivery.Backend, logger *zap.Logger) *ContactService {
	return &ContactService{
		backend: backend,
		log:     logger.Named("contact"),
	}
}

// Backend returns the active delivery backend
func (s *ContactService) Backend() delivery.Backend {
	return s.backend
}

// Submit validates sub and delivers it exactly once. Validation failures
// are returned as BAD_REQUEST wrapping a *ValidationError; delivery
// failures keep the backend's code.
func (s *ContactService) Submit(ctx context.Context, sub domain.Submission) (*domain.Receipt, error) {
	backend := s.backend.Name()

	if err := ValidateSubmission(sub); err != nil {
		s.log.Info("submission rejected", zap.String("backend", backend), zap.Error(err))
		metrics.RecordContactSubmission(backend, metrics.OutcomeInvalid)
		return nil, apperrors.Wrap(apperrors.ErrCodeBadRequest, ReasonAllFieldsRequired, err)
	}

	start := time.Now()
	receipt, err := s.backend.Deliver(ctx, sub)
	metrics.RecordDelivery(backend, time.Since(start))

	if err != nil {
		s.log.Error("delivery failed",
			zap.String("backend", backend),
			zap.String("code", string(apperrors.CodeOf(err))),
			zap.String("email", logging.RedactEmail(sub.Email)),
			zap.Error(err),
		)
		metrics.RecordContactSubmission(backend, metrics.OutcomeFailed)
		return nil, err
	}

	metrics.RecordContactSubmission(backend, metrics.OutcomeDelivered)
	s.log.Info("submission delivered",
		zap.String("backend", backend),
		zap.String("id", receipt.ID),
		zap.String("email", logging.RedactEmail(sub.Email)),
	)
	return receipt, nil
}

// List returns stored inquiries when the backend keeps them
func (s *ContactService) List(ctx context.Context, skip, limit int) ([]domain.ContactInquiry, error) {
	lister, ok := s.backend.(delivery.Lister)
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeNotFound,
			fmt.Sprintf("Listing not supported by %s backend", s.backend.Name()))
	}

	inquiries, err := lister.List(ctx, skip, limit)
	if err != nil {
		s.log.Error("list failed", zap.Int("skip", skip), zap.Int("limit", limit), zap.Error(err))
		return nil, err
	}

	s.log.Debug("list successful", zap.Int("count", len(inquiries)))
	return inquiries, nil
}
