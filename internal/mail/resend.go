package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/infrastructure/config"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
)

// ResendSender delivers mail through the Resend HTTP API.
type ResendSender struct {
	config *config.MailConfig
	client *resty.Client
}

// NewResendSender creates the sender. Without an API key sending degrades
// to a logged no-op so local development works without credentials.
func NewResendSender(cfg *config.MailConfig) *ResendSender {
	var client *resty.Client
	if cfg.ResendAPIKey != "" {
		client = resty.New().
			SetBaseURL("https://api.resend.com").
			SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.ResendAPIKey))
	}
	return &ResendSender{
		config: cfg,
		client: client,
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send delivers one HTML mail.
func (s *ResendSender) Send(ctx context.Context, to string, subject string, html string) error {
	if s.client == nil {
		common.LogWarn("mail sender not configured, skipping delivery",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(sendRequest{
			From:    s.config.From,
			To:      []string{to},
			Subject: subject,
			HTML:    html,
		}).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("mail provider returned status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
