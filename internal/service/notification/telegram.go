package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramSender posts messages through the Bot API sendMessage method with
// HTML formatting.
type TelegramSender struct {
	token   string
	baseURL string
	client  *http.Client
}

type TelegramOption func(*TelegramSender)

// WithBaseURL points the sender at a different API host, used in tests.
func WithBaseURL(url string) TelegramOption {
	return func(s *TelegramSender) {
		s.baseURL = url
	}
}

func NewTelegramSender(token string, opts ...TelegramOption) *TelegramSender {
	s := &TelegramSender{
		token:   token,
		baseURL: telegramAPIBase,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TelegramSender) SendMessage(ctx context.Context, chatID string, text string) error {
	body, err := json.Marshal(map[string]any{
		"chat_id":                  chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	})
	if err != nil {
		return fmt.Errorf("telegram: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram: unexpected status %d", resp.StatusCode)
	}
	return nil
}
