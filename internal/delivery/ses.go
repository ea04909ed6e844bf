package delivery

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"portfolio/internal/config"
	apperrors "portfolio/pkg/errors"
)

type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// API error codes that mean the account itself is unusable.
var sesAuthErrorCodes = map[string]bool{
	"InvalidClientTokenId":        true,
	"UnrecognizedClientException": true,
	"SignatureDoesNotMatch":       true,
	"AccessDeniedException":       true,
	"ExpiredTokenException":       true,
}

// SESTransport sends mail through AWS SES v2. SES only accepts verified
// senders, so the submitter goes into Reply-To and From is the configured
// sender identity.
type SESTransport struct {
	cfg    config.SESConfig
	client sesAPI
}

// NewSESTransport returns a transport for cfg. Without static credentials
// the transport stays unconfigured and every Send reports
// TRANSPORT_UNAVAILABLE.
func NewSESTransport(ctx context.Context, cfg config.SESConfig, logger *zap.Logger) *SESTransport {
	t := &SESTransport{cfg: cfg}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return t
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		logger.Warn("failed to initialize AWS config", zap.Error(err))
		return t
	}
	t.client = sesv2.NewFromConfig(awsCfg)
	return t
}

func (t *SESTransport) Name() string { return config.BackendSES }

func (t *SESTransport) Send(ctx context.Context, env Envelope) (string, error) {
	if t.client == nil {
		return "", apperrors.New(apperrors.ErrCodeTransportUnavailable, "SES client not initialized - check credentials")
	}
	if t.cfg.FromEmail == "" {
		return "", apperrors.New(apperrors.ErrCodeTransportUnavailable, "SES sender identity not configured")
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(t.cfg.FromEmail),
		Destination:      &types.Destination{ToAddresses: env.To},
		ReplyToAddresses: []string{env.From},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(env.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(env.Text), Charset: aws.String("UTF-8")},
				},
			},
		},
	}
	if env.HTML != "" {
		input.Content.Simple.Body.Html = &types.Content{Data: aws.String(env.HTML), Charset: aws.String("UTF-8")}
	}

	out, err := t.client.SendEmail(ctx, input)
	if err != nil {
		return "", classifySESError(err)
	}
	return aws.ToString(out.MessageId), nil
}

// classifySESError maps SDK failures onto the delivery taxonomy. Anything
// that is not a service response (network, credential resolution) means the
// transport could not be reached.
func classifySESError(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return apperrors.Wrap(apperrors.ErrCodeTransportUnavailable, "SES unreachable", err)
	}
	if sesAuthErrorCodes[apiErr.ErrorCode()] {
		return apperrors.Wrap(apperrors.ErrCodeTransportUnavailable, "SES authentication failed", err)
	}
	return apperrors.Wrap(apperrors.ErrCodeSendFailed, fmt.Sprintf("SES rejected message (%s)", apiErr.ErrorCode()), err)
}
