// Package contactclient drives a contact form against the submission
// endpoint: it holds the draft, posts it and turns the reply into a
// message for the visitor.
package contactclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Acknowledgment messages shown when the server does not supply one
const (
	DefaultSuccessMessage = "Message sent successfully!"
	DefaultFailureMessage = "Failed to send message."
	NetworkErrorMessage   = "Something went wrong. Please try again later."
)

const maxResponseBytes = 64 << 10

// Draft is the unsent content of the form
type Draft struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Acknowledgment is the outcome shown to the visitor after Submit
type Acknowledgment struct {
	Success bool
	Message string
}

// Form is a contact form bound to one endpoint. It is safe for concurrent use.
type Form struct {
	endpoint string
	client   *http.Client

	mu    sync.Mutex
	draft Draft
}

// Option configures a Form
type Option func(*Form)

// WithHTTPClient sets the client used to post the form
func WithHTTPClient(c *http.Client) Option {
	return func(f *Form) { f.client = c }
}

// New returns an empty form posting to endpoint
func New(endpoint string, opts ...Option) *Form {
	f := &Form{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Form) SetName(v string) {
	f.mu.Lock()
	f.draft.Name = v
	f.mu.Unlock()
}

func (f *Form) SetEmail(v string) {
	f.mu.Lock()
	f.draft.Email = v
	f.mu.Unlock()
}

func (f *Form) SetMessage(v string) {
	f.mu.Lock()
	f.draft.Message = v
	f.mu.Unlock()
}

// Draft returns a copy of the current draft
func (f *Form) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

type reply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Submit posts the current draft. The draft is cleared only when the
// server answers 2xx with success set.
func (f *Form) Submit(ctx context.Context) Acknowledgment {
	sent := f.Draft()

	status, r, err := f.post(ctx, sent)
	if err != nil {
		return Acknowledgment{Message: NetworkErrorMessage}
	}

	if status < 200 || status > 299 || !r.Success {
		msg := r.Message
		if msg == "" {
			msg = DefaultFailureMessage
		}
		return Acknowledgment{Message: msg}
	}

	f.mu.Lock()
	f.draft = Draft{}
	f.mu.Unlock()

	msg := r.Message
	if msg == "" {
		msg = DefaultSuccessMessage
	}
	return Acknowledgment{Success: true, Message: msg}
}

func (f *Form) post(ctx context.Context, d Draft) (int, reply, error) {
	payload, err := json.Marshal(d)
	if err != nil {
		return 0, reply{}, fmt.Errorf("encode draft: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, reply{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, reply{}, fmt.Errorf("post form: %w", err)
	}
	defer resp.Body.Close()

	var r reply
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&r); err != nil {
		return 0, reply{}, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, r, nil
}
