package delivery

import (
	"context"
	"time"

	"portfolio/internal/database"
	"portfolio/internal/domain"
	apperrors "portfolio/pkg/errors"
)

// Store persists submissions in a document store reached through a shared
// lazily established handle.
type Store struct {
	handle *database.Lazy[database.Collection]
	now    func() time.Time
}

// NewStore returns the persistence backend over handle.
func NewStore(handle *database.Lazy[database.Collection]) *Store {
	return &Store{
		handle: handle,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Name() string { return s.handle.Name() }

func (s *Store) Kind() domain.DeliveryKind { return domain.KindPersistence }

func (s *Store) Deliver(ctx context.Context, sub domain.Submission) (*domain.Receipt, error) {
	coll, err := s.handle.Get(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "document store unavailable", err)
	}

	inquiry := domain.NewContactInquiry(sub, s.now())
	if err := coll.Insert(ctx, inquiry); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeWriteFailed, "insert rejected", err)
	}

	return &domain.Receipt{
		ID:        inquiry.ID,
		Backend:   s.Name(),
		CreatedAt: inquiry.CreatedAt,
	}, nil
}

// List returns stored inquiries, newest first.
func (s *Store) List(ctx context.Context, skip, limit int) ([]domain.ContactInquiry, error) {
	coll, err := s.handle.Get(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "document store unavailable", err)
	}
	inquiries, err := coll.List(ctx, skip, limit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "list failed", err)
	}
	return inquiries, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.handle.Close(ctx)
}
