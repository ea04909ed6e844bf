package delivery

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio/internal/config"
	apperrors "portfolio/pkg/errors"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("ses-123")}, nil
}

func TestSESTransportSend(t *testing.T) {
	api := &fakeSES{}
	tr := &SESTransport{cfg: config.SESConfig{FromEmail: "contact@me.dev"}, client: api}

	env := Envelope{From: "ana@x.com", To: []string{"owner@me.dev"}, Subject: "s", Text: "t", HTML: "<p>h</p>"}
	id, err := tr.Send(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, "ses-123", id)

	assert.Equal(t, "contact@me.dev", aws.ToString(api.input.FromEmailAddress))
	assert.Equal(t, []string{"ana@x.com"}, api.input.ReplyToAddresses)
	assert.Equal(t, []string{"owner@me.dev"}, api.input.Destination.ToAddresses)
	assert.Equal(t, "t", aws.ToString(api.input.Content.Simple.Body.Text.Data))
	assert.Equal(t, "<p>h</p>", aws.ToString(api.input.Content.Simple.Body.Html.Data))
}

func TestSESTransportErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.ErrorCode
	}{
		{"bad credentials", &smithy.GenericAPIError{Code: "InvalidClientTokenId", Message: "invalid token"}, apperrors.ErrCodeTransportUnavailable},
		{"rejected", &smithy.GenericAPIError{Code: "MessageRejected", Message: "Email address is not verified"}, apperrors.ErrCodeSendFailed},
		{"network", errors.New("dial tcp: lookup email.us-east-1.amazonaws.com: no such host"), apperrors.ErrCodeTransportUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &SESTransport{cfg: config.SESConfig{FromEmail: "contact@me.dev"}, client: &fakeSES{err: tt.err}}
			_, err := tr.Send(context.Background(), Envelope{From: "ana@x.com", To: []string{"owner@me.dev"}})
			assert.Equal(t, tt.want, apperrors.CodeOf(err))
		})
	}
}

func TestSESTransportUnconfigured(t *testing.T) {
	tr := NewSESTransport(context.Background(), config.SESConfig{Region: "us-east-1"}, zap.NewNop())
	_, err := tr.Send(context.Background(), Envelope{})
	assert.Equal(t, apperrors.ErrCodeTransportUnavailable, apperrors.CodeOf(err))

	tr = &SESTransport{client: &fakeSES{}}
	_, err = tr.Send(context.Background(), Envelope{})
	assert.Equal(t, apperrors.ErrCodeTransportUnavailable, apperrors.CodeOf(err))
}
