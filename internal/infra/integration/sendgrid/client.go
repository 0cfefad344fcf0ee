package sendgrid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/electronicart/marketing-agent/internal/usecase"
)

const defaultBaseURL = "https://api.sendgrid.com/v3"

type Client struct {
	baseURL string
	apiKey  string
	from    string
	http    *http.Client
}

// Compile-time check that Client satisfies usecase.MailDispatcher.
var _ usecase.MailDispatcher = (*Client)(nil)

func NewClient(apiKey, from, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Send delivers one plain-text email through the v3 mail/send endpoint.
func (c *Client) Send(ctx context.Context, to, subject, body string) (*usecase.DispatchResult, error) {
	if c.from == "" {
		return nil, fmt.Errorf("EMAIL_FROM is not configured")
	}

	url := fmt.Sprintf("%s/mail/send", c.baseURL)

	payload := sendRequest{
		Personalizations: []personalization{
			{To: []address{{Email: to}}},
		},
		From:    address{Email: c.from},
		Subject: subject,
		Content: []content{
			{Type: "text/plain", Value: body},
		},
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal mail: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sendgrid request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("sendgrid rejected the send (status %d): %s", resp.StatusCode, string(respBody))
	}

	messageID := resp.Header.Get("X-Message-Id")
	if messageID == "" {
		// Local reference so the approval response always carries one.
		messageID = uuid.New().String()
	}

	return &usecase.DispatchResult{
		Provider:   "sendgrid",
		MessageID:  messageID,
		StatusCode: resp.StatusCode,
	}, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
}
