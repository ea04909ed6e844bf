package database

import (
	"context"

	"portfolio/internal/domain"
)

// Collection stores contact inquiries.
type Collection interface {
	Closer
	// Insert stores inquiry and sets its ID.
	Insert(ctx context.Context, inquiry *domain.ContactInquiry) error
	// List returns stored inquiries, newest first.
	List(ctx context.Context, skip, limit int) ([]domain.ContactInquiry, error)
}
