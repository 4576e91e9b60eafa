// Package telegram implements the Notifier interface against the
// Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/najahiiii/gh-weebhooks/pkg/domain/interfaces"
)

const (
	defaultAPIBase = "https://api.telegram.org"

	// Telegram rejects messages longer than this many characters.
	maxMessageLength = 4096
)

type client struct {
	apiBase    string
	httpClient *http.Client
}

// Option configures the Telegram client
type Option func(*client)

// WithAPIBase overrides the Telegram API base URL. Used for local API
// servers and tests.
func WithAPIBase(base string) Option {
	return func(c *client) {
		c.apiBase = strings.TrimRight(base, "/")
	}
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// NewClient creates a new Telegram Bot API client
func NewClient(opts ...Option) interfaces.Notifier {
	c := &client{
		apiBase:    defaultAPIBase,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
	MessageThreadID       *int64 `json:"message_thread_id,omitempty"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// SendMessage sends an HTML-formatted message to a chat, splitting it
// into multiple messages when it exceeds the Telegram length limit.
func (c *client) SendMessage(ctx context.Context, token, chatID, text string, topicID *int64) error {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	for _, chunk := range splitMessage(text, maxMessageLength) {
		if err := c.sendChunk(ctx, token, chatID, chunk, topicID); err != nil {
			return err
		}
	}
	return nil
}

func (c *client) sendChunk(ctx context.Context, token, chatID, text string, topicID *int64) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
		MessageThreadID:       topicID,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to encode sendMessage request")
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.apiBase, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "failed to create sendMessage request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The request URL embeds the bot token, do not attach it.
		return goerr.New("failed to call Telegram API", goerr.V("chat_id", chatID))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return goerr.Wrap(err, "failed to read Telegram API response")
	}

	var apiResp sendMessageResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return goerr.Wrap(err, "failed to decode Telegram API response",
			goerr.V("status", resp.StatusCode))
	}

	if !apiResp.OK {
		return goerr.New("Telegram API rejected message",
			goerr.V("status", resp.StatusCode),
			goerr.V("error_code", apiResp.ErrorCode),
			goerr.V("description", apiResp.Description),
			goerr.V("chat_id", chatID))
	}

	return nil
}

// splitMessage splits text into chunks of at most limit characters,
// preferring to break at the last newline within the limit.
func splitMessage(text string, limit int) []string {
	if text == "" {
		return []string{""}
	}

	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
		}
		chunks = append(chunks, strings.TrimRight(text[:cut], "\n"))
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" || len(chunks) == 0 {
		chunks = append(chunks, text)
	}
	return chunks
}
