package delivery

import (
	"context"
	"strings"
	"time"

	"portfolio/internal/domain"
	apperrors "portfolio/pkg/errors"
)

// Transport hands a composed email to a mail provider. Send returns the
// provider's message id, and an *errors.AppError coded
// TRANSPORT_UNAVAILABLE or SEND_FAILED on failure.
type Transport interface {
	Name() string
	Send(ctx context.Context, env Envelope) (string, error)
}

// Relay forwards submissions as email to a fixed operator address.
type Relay struct {
	transport Transport
	recipient string
	now       func() time.Time
}

// NewRelay returns the relay backend sending to recipient through t.
func NewRelay(t Transport, recipient string) *Relay {
	return &Relay{
		transport: t,
		recipient: strings.TrimSpace(recipient),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (r *Relay) Name() string { return r.transport.Name() }

func (r *Relay) Kind() domain.DeliveryKind { return domain.KindRelay }

func (r *Relay) Deliver(ctx context.Context, sub domain.Submission) (*domain.Receipt, error) {
	if r.recipient == "" {
		return nil, apperrors.New(apperrors.ErrCodeTransportUnavailable, "no recipient address configured")
	}

	id, err := r.transport.Send(ctx, ComposeEnvelope(sub, r.recipient))
	if err != nil {
		if !apperrors.IsDelivery(err) {
			err = apperrors.Wrap(apperrors.ErrCodeSendFailed, "send failed", err)
		}
		return nil, err
	}

	return &domain.Receipt{
		ID:        id,
		Backend:   r.Name(),
		CreatedAt: r.now(),
	}, nil
}

func (r *Relay) Close(context.Context) error { return nil }
