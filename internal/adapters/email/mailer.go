package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"jamqueuepro/internal/domain"
)

// SESConfig holds AWS SES credentials and region.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// MailerConfig selects and configures the outbound email backend.
type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
}

// NewMailer selects the delivery backend by provider name. Anything other
// than "ses" falls back to a mailer that only logs, so local setups never
// need AWS credentials.
func NewMailer(cfg MailerConfig, logger *slog.Logger) domain.Mailer {
	if cfg.Provider != "ses" {
		if cfg.Provider != "" && cfg.Provider != "noop" {
			logger.Warn("unknown email provider, falling back to noop", "provider", cfg.Provider)
		}
		return &logMailer{logger: logger}
	}

	if cfg.SES.InsecureSkipVerify {
		logger.Warn("TLS verification disabled for SES, development only")
	}
	awsCfg := aws.Config{
		Region: cfg.SES.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.SES.AccessKeyID, cfg.SES.SecretAccessKey, ""),
		),
		HTTPClient: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: cfg.SES.InsecureSkipVerify,
					MinVersion:         tls.VersionTLS12,
				},
			},
		},
	}
	return &sesMailer{
		client: ses.NewFromConfig(awsCfg),
		source: formatSource(cfg.FromName, cfg.FromAddress),
		logger: logger,
	}
}

func formatSource(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

type sesMailer struct {
	client *ses.Client
	source string
	logger *slog.Logger
}

func (m *sesMailer) Send(to, subject, html, text string) error {
	body := &types.Body{}
	if html != "" {
		body.Html = sesContent(html)
	}
	if text != "" {
		body.Text = sesContent(text)
	}
	out, err := m.client.SendEmail(context.Background(), &ses.SendEmailInput{
		Source:      aws.String(m.source),
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: sesContent(subject),
			Body:    body,
		},
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	m.logger.Debug("email sent", "message_id", aws.ToString(out.MessageId))
	return nil
}

func sesContent(s string) *types.Content {
	return &types.Content{Data: aws.String(s), Charset: aws.String("UTF-8")}
}

// logMailer stands in when no real provider is configured.
type logMailer struct {
	logger *slog.Logger
}

func (m *logMailer) Send(to, subject, html, text string) error {
	m.logger.Info("email suppressed, no provider configured", "to", to, "subject", subject)
	return nil
}
