package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Client implements ports.Mailer by posting to a transactional email API
// (SendGrid-compatible message shape).
type Client struct {
	baseURL string
	apiKey  string
	from    string
	http    *http.Client
	log     *slog.Logger
}

func NewClient(baseURL, apiKey, from string, log *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// SendTimesheet delivers a rendered HTML timesheet to the client address.
func (c *Client) SendTimesheet(ctx context.Context, to, subject, htmlBody string) error {
	if c.baseURL == "" || c.apiKey == "" {
		return errors.New("mailer: not configured")
	}
	if to == "" {
		return errors.New("mailer: recipient is required")
	}

	payload, err := json.Marshal(rawMessage{
		From:     c.from,
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/send", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("mailer: unexpected status %d: %s", resp.StatusCode, string(b))
	}
	c.log.Info("timesheet mailed", slog.String("to", to), slog.String("subject", subject))
	return nil
}

// rawMessage mirrors the email API JSON payload.
type rawMessage struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
}
