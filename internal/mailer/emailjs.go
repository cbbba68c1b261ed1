// Package mailer delivers contact form messages through EmailJS.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/BerylCAtieno/vakeel-gateway/internal/models"
	"github.com/BerylCAtieno/vakeel-gateway/internal/utils"
)

const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// ErrSendFailed is what the user sees when delivery fails for any reason.
var ErrSendFailed = errors.New("Failed to send email. Please try again later.")

var ErrNotConfigured = errors.New("EmailJS service, template and public key must all be set")

type Credentials struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
}

type Mailer interface {
	Send(ctx context.Context, msg *models.ContactMessage) error
}

type emailJS struct {
	endpoint    string
	credentials Credentials
	http        *http.Client
	logger      *utils.Logger
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// NewEmailJS returns a Mailer posting to endpoint, or to DefaultEndpoint
// when endpoint is empty.
func NewEmailJS(endpoint string, credentials Credentials, httpClient *http.Client, logger *utils.Logger) Mailer {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &emailJS{
		endpoint:    endpoint,
		credentials: credentials,
		http:        httpClient,
		logger:      logger,
	}
}

// Send validates msg and posts it. Validation errors are returned as a
// bad request; delivery errors are logged and reported as ErrSendFailed.
func (m *emailJS) Send(ctx context.Context, msg *models.ContactMessage) error {
	if err := msg.Validate(); err != nil {
		return utils.NewBadRequestError(err.Error())
	}
	if m.credentials.ServiceID == "" || m.credentials.TemplateID == "" || m.credentials.PublicKey == "" {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(sendRequest{
		ServiceID:      m.credentials.ServiceID,
		TemplateID:     m.credentials.TemplateID,
		UserID:         m.credentials.PublicKey,
		TemplateParams: msg.Params(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		m.logger.Error("Failed to send email", "error", err)
		return ErrSendFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		m.logger.Error("Email service rejected message",
			"status", resp.StatusCode,
			"body", string(body))
		return ErrSendFailed
	}

	m.logger.Info("Contact message sent", "email", msg.Email)
	return nil
}
