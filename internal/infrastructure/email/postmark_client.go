package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/feathermail/newsletter-service/internal/core/domain/secret"
	"github.com/feathermail/newsletter-service/internal/core/domain/subscription"
	"github.com/feathermail/newsletter-service/internal/core/ports"
	"github.com/sirupsen/logrus"
)

const serverTokenHeader = "X-Postmark-Server-Token"

// ClientConfig holds email client configuration
type ClientConfig struct {
	BaseURL            string
	Sender             subscription.Email
	AuthorizationToken secret.String
	Timeout            time.Duration
}

// PostmarkClient delivers transactional email through the provider's HTTP
// API. One POST per send, no retry.
type PostmarkClient struct {
	config     *ClientConfig
	logger     *logrus.Logger
	httpClient *http.Client
}

// NewPostmarkClient creates a new email client instance. The configured
// timeout bounds each send call end to end.
func NewPostmarkClient(config *ClientConfig, logger *logrus.Logger) ports.EmailClient {
	return &PostmarkClient{
		config:     config,
		logger:     logger,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// sendEmailRequest is the provider payload. The key names are a compatibility
// contract with the provider and must not change.
type sendEmailRequest struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HtmlBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
}

// Send issues a single POST to the provider. A non-2xx response, a timeout
// and a transport fault are all folded into one *subscription.DispatchError.
func (c *PostmarkClient) Send(ctx context.Context, recipient subscription.Email, subject, htmlBody, textBody string) error {
	payload, err := json.Marshal(sendEmailRequest{
		From:     c.config.Sender.String(),
		To:       recipient.String(),
		Subject:  subject,
		HtmlBody: htmlBody,
		TextBody: textBody,
	})
	if err != nil {
		return &subscription.DispatchError{Err: fmt.Errorf("failed to encode email payload: %w", err)}
	}

	url := c.config.BaseURL + "/email"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &subscription.DispatchError{Err: fmt.Errorf("failed to build email request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(serverTokenHeader, c.config.AuthorizationToken.Expose())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"to": recipient.String(), "subject": subject}).WithError(err).Error("failed to send email")
		}
		return &subscription.DispatchError{Err: fmt.Errorf("failed to send email: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"to": recipient.String(), "subject": subject, "status_code": resp.StatusCode}).Error("email provider rejected send")
		}
		return &subscription.DispatchError{Err: fmt.Errorf("email provider returned status %d", resp.StatusCode)}
	}

	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{"to": recipient.String(), "subject": subject, "status_code": resp.StatusCode}).Info("email sent")
	}

	return nil
}
