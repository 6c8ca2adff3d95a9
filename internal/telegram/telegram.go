// Package telegram delivers text to the bot's single fixed recipient.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.telegram.org"

type Sender interface {
	Send(ctx context.Context, text string) error
}

// LogSender logs messages instead of sending them — used in ENV=local.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) Send(_ context.Context, text string) error {
	s.logger.Info("telegram message (local dev)", "text", text)
	return nil
}

// BotSender sends messages through the Bot API — used in staging/production.
type BotSender struct {
	httpClient *http.Client
	token      string
	chatID     int64
	baseURL    string
}

func NewBotSender(token string, chatID int64) *BotSender {
	return &BotSender{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		token:      token,
		chatID:     chatID,
		baseURL:    defaultBaseURL,
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (s *BotSender) SetBaseURL(url string) {
	s.baseURL = url
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (s *BotSender) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(map[string]any{
		"chat_id": s.chatID,
		"text":    text,
	})
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var api apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&api); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !api.OK {
		return fmt.Errorf("send message: %s", api.Description)
	}
	return nil
}

// Chat identifies the conversation an update belongs to.
type Chat struct {
	ID int64 `json:"id"`
}

// Message is the subset of an incoming message the bot reads.
type Message struct {
	Text string `json:"text"`
	Chat Chat   `json:"chat"`
}

// Update is one entry from getUpdates. Message is nil for update kinds
// the bot does not subscribe to.
type Update struct {
	ID      int64    `json:"update_id"`
	Message *Message `json:"message"`
}

type updatesResponse struct {
	OK          bool     `json:"ok"`
	Description string   `json:"description"`
	Result      []Update `json:"result"`
}

// GetUpdates long-polls for incoming messages starting at offset.
// timeoutSec must stay under the HTTP client timeout.
func (s *BotSender) GetUpdates(ctx context.Context, offset int64, timeoutSec int) ([]Update, error) {
	body, err := json.Marshal(map[string]any{
		"offset":          offset,
		"timeout":         timeoutSec,
		"allowed_updates": []string{"message"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/getUpdates", s.baseURL, s.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var api updatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&api); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !api.OK {
		return nil, fmt.Errorf("get updates: %s", api.Description)
	}
	return api.Result, nil
}

// Ping verifies the bot credential via getMe. Used by the readiness check.
func (s *BotSender) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/bot%s/getMe", s.baseURL, s.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// NewSender returns a LogSender for ENV=local, BotSender otherwise.
func NewSender(env, token string, chatID int64, logger *slog.Logger) Sender {
	if env == "local" {
		return &LogSender{logger: logger}
	}
	return NewBotSender(token, chatID)
}
