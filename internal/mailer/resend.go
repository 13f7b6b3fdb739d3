package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const resendBaseURL = "https://api.resend.com"

// ResendMailer delivers mail through the Resend HTTPS API.
type ResendMailer struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
}

// NewResendMailer creates a Resend API mailer.
func NewResendMailer(apiKey, from string, httpClient *http.Client) *ResendMailer {
	return &ResendMailer{
		baseURL:    resendBaseURL,
		apiKey:     apiKey,
		from:       from,
		httpClient: httpClient,
	}
}

// Name returns the provider's display name.
func (m *ResendMailer) Name() string { return "Resend" }

// Send delivers a single plain-text message via POST /emails.
func (m *ResendMailer) Send(ctx context.Context, to, subject, body string) error {
	payload := struct {
		From    string   `json:"from"`
		To      []string `json:"to"`
		Subject string   `json:"subject"`
		Text    string   `json:"text"`
	}{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", strings.NewReader(string(jsonBody)))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sending mail to %s: unexpected status %d", to, resp.StatusCode)
	}
	return nil
}
