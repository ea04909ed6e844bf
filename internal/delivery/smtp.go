package delivery

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"portfolio/internal/config"
	apperrors "portfolio/pkg/errors"
)

const (
	smtpDialTimeout = 10 * time.Second
	smtpIOTimeout   = 30 * time.Second
	smtpsPort       = 465
)

// SMTPTransport sends mail through an authenticated SMTP account.
// Failures before authentication completes are TRANSPORT_UNAVAILABLE;
// rejections after it are SEND_FAILED.
type SMTPTransport struct {
	cfg       config.SMTPConfig
	tlsConfig *tls.Config
}

// NewSMTPTransport returns a transport for cfg. Credentials are checked on
// each Send.
func NewSMTPTransport(cfg config.SMTPConfig) *SMTPTransport {
	return &SMTPTransport{
		cfg:       cfg,
		tlsConfig: &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12},
	}
}

func (t *SMTPTransport) Name() string { return config.BackendSMTP }

func (t *SMTPTransport) Send(ctx context.Context, env Envelope) (string, error) {
	if t.cfg.Host == "" || t.cfg.Username == "" || t.cfg.Password == "" {
		return "", apperrors.New(apperrors.ErrCodeTransportUnavailable, "smtp account not configured")
	}

	client, err := t.connect(ctx)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeTransportUnavailable, "smtp connection failed", err)
	}
	defer client.Close()

	if err := client.Auth(smtp.PlainAuth("", t.cfg.Username, t.cfg.Password, t.cfg.Host)); err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeTransportUnavailable, "smtp authentication failed", err)
	}

	env.MessageID = fmt.Sprintf("<%s@%s>", uuid.NewString(), t.cfg.Host)
	msg, err := renderMIME(env, time.Now())
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeSendFailed, "failed to encode message", err)
	}

	if err := client.Mail(env.From); err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeSendFailed, "sender rejected", err)
	}
	for _, rcpt := range env.To {
		if err := client.Rcpt(rcpt); err != nil {
			return "", apperrors.Wrap(apperrors.ErrCodeSendFailed, "recipient rejected", err)
		}
	}
	w, err := client.Data()
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeSendFailed, "data rejected", err)
	}
	if _, err := w.Write(msg); err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeSendFailed, "failed to write message", err)
	}
	if err := w.Close(); err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeSendFailed, "message rejected", err)
	}

	// The message is accepted once DATA completes; QUIT errors don't undo that.
	_ = client.Quit()
	return env.MessageID, nil
}

// connect dials the server, greets it and upgrades to TLS when possible.
func (t *SMTPTransport) connect(ctx context.Context) (*smtp.Client, error) {
	addr := net.JoinHostPort(t.cfg.Host, strconv.Itoa(t.cfg.Port))
	dialer := &net.Dialer{Timeout: smtpDialTimeout}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	deadline := time.Now().Add(smtpIOTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	if t.cfg.Port == smtpsPort {
		conn = tls.Client(conn, t.tlsConfig)
	}

	client, err := smtp.NewClient(conn, t.cfg.Host)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if ok, _ := client.Extension("STARTTLS"); ok && t.cfg.Port != smtpsPort {
		if err := client.StartTLS(t.tlsConfig); err != nil {
			client.Close()
			return nil, err
		}
	}
	return client, nil
}
