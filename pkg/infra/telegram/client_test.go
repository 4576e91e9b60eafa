package telegram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestSendMessage(t *testing.T) {
	var gotPath string
	var gotBody sendMessageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		data, err := io.ReadAll(r.Body)
		gt.NoError(t, err)
		gt.NoError(t, json.Unmarshal(data, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(WithAPIBase(srv.URL))
	err := c.SendMessage(context.Background(), "test-token", "12345", "<b>Push</b> to main", nil)
	gt.NoError(t, err)

	gt.Value(t, gotPath).Equal("/bottest-token/sendMessage")
	gt.Value(t, gotBody.ChatID).Equal("12345")
	gt.Value(t, gotBody.Text).Equal("<b>Push</b> to main")
	gt.Value(t, gotBody.ParseMode).Equal("HTML")
	gt.Value(t, gotBody.DisableWebPagePreview).Equal(true)
	gt.Value(t, gotBody.MessageThreadID).Nil()
}

func TestSendMessage_TopicID(t *testing.T) {
	var gotBody sendMessageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	topicID := int64(42)
	c := NewClient(WithAPIBase(srv.URL))
	err := c.SendMessage(context.Background(), "t", "c", "hello", &topicID)
	gt.NoError(t, err)

	gt.Value(t, gotBody.MessageThreadID).NotNil()
	gt.Value(t, *gotBody.MessageThreadID).Equal(int64(42))
}

func TestSendMessage_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	c := NewClient(WithAPIBase(srv.URL))
	err := c.SendMessage(context.Background(), "secret-token", "missing", "hello", nil)
	gt.Error(t, err)

	// The bot token must not leak through error messages.
	if strings.Contains(err.Error(), "secret-token") {
		t.Errorf("error message leaks bot token: %v", err)
	}
}

func TestSendMessage_SplitsLongText(t *testing.T) {
	var texts []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body sendMessageRequest
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		texts = append(texts, body.Text)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	lines := make([]string, 0, 300)
	for range 300 {
		lines = append(lines, strings.Repeat("x", 30))
	}
	text := strings.Join(lines, "\n")

	c := NewClient(WithAPIBase(srv.URL))
	err := c.SendMessage(context.Background(), "t", "c", text, nil)
	gt.NoError(t, err)

	gt.Number(t, len(texts)).Greater(1)
	for _, chunk := range texts {
		gt.Number(t, len(chunk)).LessOrEqual(maxMessageLength)
	}
}

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{
			name:  "Short text unchanged",
			text:  "hello",
			limit: 10,
			want:  []string{"hello"},
		},
		{
			name:  "Empty text yields one empty chunk",
			text:  "",
			limit: 10,
			want:  []string{""},
		},
		{
			name:  "Breaks at newline",
			text:  "aaaa\nbbbb\ncccc",
			limit: 10,
			want:  []string{"aaaa\nbbbb", "cccc"},
		},
		{
			name:  "Hard break without newline",
			text:  "aaaaaaaaaaaa",
			limit: 5,
			want:  []string{"aaaaa", "aaaaa", "aa"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, splitMessage(tt.text, tt.limit)).Equal(tt.want)
		})
	}
}
