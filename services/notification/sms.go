package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SMSClient posts messages to the configured SMS gateway.
type SMSClient interface {
	Send(ctx context.Context, phone, body string) error
}

// HTTPSMSClient is a thin JSON client for the gateway's send endpoint.
type HTTPSMSClient struct {
	URL      string
	APIKey   string
	SenderID string
	Client   *http.Client
}

func NewHTTPSMSClient(url, apiKey, senderID string) *HTTPSMSClient {
	return &HTTPSMSClient{
		URL:      url,
		APIKey:   apiKey,
		SenderID: senderID,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type smsPayload struct {
	To     string `json:"to"`
	From   string `json:"from"`
	Body   string `json:"body"`
	APIKey string `json:"api_key"`
}

func (c *HTTPSMSClient) Send(ctx context.Context, phone, body string) error {
	if c.URL == "" {
		return fmt.Errorf("sms gateway not configured")
	}
	payload, err := json.Marshal(smsPayload{
		To:     phone,
		From:   c.SenderID,
		Body:   body,
		APIKey: c.APIKey,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}
