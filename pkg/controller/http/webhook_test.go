package http_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	controller "github.com/najahiiii/gh-weebhooks/pkg/controller/http"
	"github.com/najahiiii/gh-weebhooks/pkg/domain/model"
	"github.com/najahiiii/gh-weebhooks/pkg/domain/types"
)

// generateSignature generates HMAC-SHA256 signature for testing
func generateSignature(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

type mockRepo struct {
	subs map[string]*model.Subscription
}

func (m *mockRepo) GetSubscriptionByHookID(ctx context.Context, hookID string) (*model.Subscription, error) {
	if sub, ok := m.subs[hookID]; ok {
		return sub, nil
	}
	return nil, goerr.Wrap(types.ErrNotFound, "subscription not found")
}

func (m *mockRepo) GetBot(ctx context.Context, id string) (*model.Bot, error) {
	return nil, goerr.New("not implemented")
}

func (m *mockRepo) GetDestination(ctx context.Context, id string) (*model.Destination, error) {
	return nil, goerr.New("not implemented")
}

func (m *mockRepo) CreateBot(ctx context.Context, bot *model.Bot) error                 { return nil }
func (m *mockRepo) CreateDestination(ctx context.Context, dst *model.Destination) error { return nil }
func (m *mockRepo) CreateSubscription(ctx context.Context, sub *model.Subscription) error {
	return nil
}
func (m *mockRepo) Close() error { return nil }

type processed struct {
	event *model.WebhookEvent
	sub   *model.Subscription
}

type mockUseCase struct {
	calls chan processed
}

func newMockUseCase() *mockUseCase {
	return &mockUseCase{calls: make(chan processed, 8)}
}

func (m *mockUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent, sub *model.Subscription) error {
	m.calls <- processed{event: event, sub: sub}
	return nil
}

func newTestServer(t *testing.T, uc *mockUseCase) *controller.Server {
	t.Helper()

	repo := &mockRepo{
		subs: map[string]*model.Subscription{
			"hook-1": {
				ID:            "sub-1",
				HookID:        "hook-1",
				BotID:         "bot-1",
				DestinationID: "dst-1",
				Secret:        "test-secret",
				EventsCSV:     "*",
			},
			"hook-filtered": {
				ID:            "sub-2",
				HookID:        "hook-filtered",
				BotID:         "bot-1",
				DestinationID: "dst-1",
				Secret:        "test-secret",
				EventsCSV:     "push",
			},
		},
	}

	server, err := controller.NewServer(
		context.Background(),
		repo,
		uc,
		controller.WithAddr("localhost:0"),
	)
	gt.NoError(t, err)
	return server
}

func postWebhook(t *testing.T, server *controller.Server, hookID, eventType, signature string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/hooks/github/"+hookID, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", eventType)
	req.Header.Set("X-GitHub-Delivery", "test-delivery")
	if signature != "" {
		req.Header.Set("X-Hub-Signature-256", signature)
	}

	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)
	return w
}

func TestWebhookHandler_Accepted(t *testing.T) {
	uc := newMockUseCase()
	server := newTestServer(t, uc)

	payload := []byte(`{"ref":"refs/heads/main","repository":{"full_name":"test/repo"},"pusher":{"name":"testuser"}}`)
	w := postWebhook(t, server, "hook-1", "push", generateSignature("test-secret", payload), payload)

	gt.Value(t, w.Code).Equal(http.StatusAccepted)

	var resp map[string]string
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	gt.Value(t, resp["status"]).Equal("accepted")

	select {
	case call := <-uc.calls:
		gt.Value(t, call.event.ID).Equal("test-delivery")
		gt.Value(t, call.event.Type).Equal("push")
		gt.Value(t, call.event.HookID).Equal("hook-1")
		gt.Value(t, call.sub.ID).Equal("sub-1")
		gt.NotNil(t, call.event.Payload)
	case <-time.After(1 * time.Second):
		t.Fatal("use case was not invoked")
	}
}

func TestWebhookHandler_SignatureVerification(t *testing.T) {
	tests := []struct {
		name           string
		signature      func(payload []byte) string
		wantStatusCode int
	}{
		{
			name:           "Valid signature",
			signature:      func(p []byte) string { return generateSignature("test-secret", p) },
			wantStatusCode: http.StatusAccepted,
		},
		{
			name:           "Wrong secret",
			signature:      func(p []byte) string { return generateSignature("wrong-secret", p) },
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "Garbage signature",
			signature:      func(p []byte) string { return "sha256=invalid" },
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "Missing signature",
			signature:      func(p []byte) string { return "" },
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newMockUseCase()
			server := newTestServer(t, uc)

			payload := []byte(`{"zen":"Keep it logically awesome."}`)
			w := postWebhook(t, server, "hook-1", "ping", tt.signature(payload), payload)

			gt.Value(t, w.Code).Equal(tt.wantStatusCode)
		})
	}
}

func TestWebhookHandler_UnknownHook(t *testing.T) {
	uc := newMockUseCase()
	server := newTestServer(t, uc)

	payload := []byte(`{}`)
	w := postWebhook(t, server, "no-such-hook", "push", generateSignature("test-secret", payload), payload)

	gt.Value(t, w.Code).Equal(http.StatusNotFound)
}

func TestWebhookHandler_InvalidJSON(t *testing.T) {
	uc := newMockUseCase()
	server := newTestServer(t, uc)

	payload := []byte(`{not json`)
	w := postWebhook(t, server, "hook-1", "push", generateSignature("test-secret", payload), payload)

	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
}

func TestWebhookHandler_EventFilter(t *testing.T) {
	uc := newMockUseCase()
	server := newTestServer(t, uc)

	payload := []byte(`{"action":"opened"}`)

	t.Run("Allowed event is dispatched", func(t *testing.T) {
		w := postWebhook(t, server, "hook-filtered", "push", generateSignature("test-secret", payload), payload)
		gt.Value(t, w.Code).Equal(http.StatusAccepted)

		select {
		case <-uc.calls:
		case <-time.After(1 * time.Second):
			t.Fatal("use case was not invoked")
		}
	})

	t.Run("Filtered event is ignored", func(t *testing.T) {
		w := postWebhook(t, server, "hook-filtered", "issues", generateSignature("test-secret", payload), payload)
		gt.Value(t, w.Code).Equal(http.StatusOK)

		var resp map[string]string
		gt.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		gt.Value(t, resp["status"]).Equal("ignored")

		select {
		case <-uc.calls:
			t.Fatal("use case should not be invoked for filtered events")
		case <-time.After(100 * time.Millisecond):
		}
	})
}
