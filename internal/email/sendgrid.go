package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// defaultBaseURL is the production SendGrid v3 API origin.
	defaultBaseURL = "https://api.sendgrid.com/v3"

	// devMessageIDPrefix marks synthetic ids returned by the dev fallback.
	devMessageIDPrefix = "dev-"
)

// ErrMessageNotFound is returned by MessageStatus for unknown or aged-out ids.
var ErrMessageNotFound = errors.New("message not found")

// Payload is one outbound invitation email.
type Payload struct {
	To         string
	ToName     string
	Subject    string
	TextBody   string
	HTMLBody   string
	CustomArgs map[string]string
}

// MessageStatus reports provider-side engagement for a sent message.
// Timestamps are nil until the provider observes the event.
type MessageStatus struct {
	MessageID   string     `json:"message_id"`
	Status      string     `json:"status"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	OpenedAt    *time.Time `json:"opened_at,omitempty"`
	ClickedAt   *time.Time `json:"clicked_at,omitempty"`
}

// Sender dispatches invitation emails and returns a provider message id.
type Sender interface {
	Send(ctx context.Context, p Payload) (string, error)
}

// Client talks to the SendGrid v3 API. With no API key configured it runs in
// dev mode: payloads are logged instead of sent and a synthetic message id is
// returned with success semantics, so development flows are never blocked.
type Client struct {
	apiKey     string
	fromEmail  string
	fromName   string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a SendGrid client. An empty apiKey selects dev mode.
func NewClient(apiKey, fromEmail, fromName string, timeoutMS int) *Client {
	return &Client{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		baseURL:   defaultBaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutMS) * time.Millisecond,
		},
	}
}

// DevMode reports whether the client logs payloads instead of sending.
func (c *Client) DevMode() bool {
	return c.apiKey == ""
}

type sendgridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendgridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendgridPersonalization struct {
	To         []sendgridAddress `json:"to"`
	CustomArgs map[string]string `json:"custom_args,omitempty"`
}

type sendgridSendRequest struct {
	Personalizations []sendgridPersonalization `json:"personalizations"`
	From             sendgridAddress           `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []sendgridContent         `json:"content"`
}

// Send dispatches one email and returns the provider message id. Transport
// failures are logged and returned with the provider status attached; they
// are never retried here.
func (c *Client) Send(ctx context.Context, p Payload) (string, error) {
	if c.DevMode() {
		return c.sendDevMode(p), nil
	}

	reqBody := sendgridSendRequest{
		Personalizations: []sendgridPersonalization{{
			To:         []sendgridAddress{{Email: p.To, Name: p.ToName}},
			CustomArgs: p.CustomArgs,
		}},
		From:    sendgridAddress{Email: c.fromEmail, Name: c.fromName},
		Subject: p.Subject,
		Content: buildContent(p),
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mail/send", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create send request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().
			Err(err).
			Str("to", p.To).
			Msg("Email provider unreachable")
		return "", fmt.Errorf("email provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		log.Warn().
			Int("status_code", resp.StatusCode).
			Str("to", p.To).
			Str("provider_response", string(body)).
			Msg("Email provider returned non-success status")
		return "", fmt.Errorf("email dispatch failed: provider status %d: %s", resp.StatusCode, string(body))
	}

	messageID := resp.Header.Get("X-Message-Id")
	if messageID == "" {
		messageID = uuid.NewString()
	}

	log.Info().
		Str("to", p.To).
		Str("message_id", messageID).
		Msg("Email dispatched")

	return messageID, nil
}

// sendDevMode logs the payload and hands back a synthetic message id.
// This is documented degraded behavior, not an error path.
func (c *Client) sendDevMode(p Payload) string {
	messageID := devMessageIDPrefix + uuid.NewString()

	log.Info().
		Str("to", p.To).
		Str("to_name", p.ToName).
		Str("from", c.fromEmail).
		Str("subject", p.Subject).
		Str("text_body", p.TextBody).
		Interface("custom_args", p.CustomArgs).
		Str("message_id", messageID).
		Msg("Dev mode: email logged instead of sent")

	return messageID
}

type sendgridMessageResponse struct {
	MsgID        string  `json:"msg_id"`
	Status       string  `json:"status"`
	LastEventAt  string  `json:"last_event_time"`
	OpensCount   int     `json:"opens_count"`
	ClicksCount  int     `json:"clicks_count"`
	DeliveredStr *string `json:"delivered_time,omitempty"`
	OpenedStr    *string `json:"opened_time,omitempty"`
	ClickedStr   *string `json:"clicked_time,omitempty"`
}

// Status looks up delivery state for a previously sent message. Synthetic
// dev-mode ids and ids the provider no longer knows return ErrMessageNotFound.
func (c *Client) Status(ctx context.Context, messageID string) (*MessageStatus, error) {
	if c.DevMode() || isDevMessageID(messageID) {
		return nil, ErrMessageNotFound
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/messages/"+messageID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create status request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().
			Err(err).
			Str("message_id", messageID).
			Msg("Email provider unreachable for status lookup")
		return nil, fmt.Errorf("email provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrMessageNotFound
	}
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("status lookup failed: provider status %d: %s", resp.StatusCode, string(body))
	}

	var raw sendgridMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode status response: %w", err)
	}

	status := &MessageStatus{
		MessageID:   messageID,
		Status:      raw.Status,
		DeliveredAt: parseProviderTime(raw.DeliveredStr),
		OpenedAt:    parseProviderTime(raw.OpenedStr),
		ClickedAt:   parseProviderTime(raw.ClickedStr),
	}
	return status, nil
}

func isDevMessageID(id string) bool {
	return len(id) > len(devMessageIDPrefix) && id[:len(devMessageIDPrefix)] == devMessageIDPrefix
}

func parseProviderTime(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil
	}
	return &t
}

func buildContent(p Payload) []sendgridContent {
	var content []sendgridContent
	if p.TextBody != "" {
		content = append(content, sendgridContent{Type: "text/plain", Value: p.TextBody})
	}
	if p.HTMLBody != "" {
		content = append(content, sendgridContent{Type: "text/html", Value: p.HTMLBody})
	}
	return content
}
