package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/najahiiii/gh-weebhooks/pkg/domain/interfaces"
	"github.com/najahiiii/gh-weebhooks/pkg/domain/model"
	"github.com/najahiiii/gh-weebhooks/pkg/domain/types"
	"github.com/najahiiii/gh-weebhooks/pkg/utils/async"
)

// maxPayloadSize caps webhook bodies. GitHub limits payloads to 25MB.
const maxPayloadSize = 25 << 20

// WebhookHandler handles GitHub webhooks addressed to a subscription
type WebhookHandler struct {
	repo      interfaces.SubscriptionRepository
	webhookUC interfaces.WebhookUseCase
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(repo interfaces.SubscriptionRepository, webhookUC interfaces.WebhookUseCase) *WebhookHandler {
	return &WebhookHandler{
		repo:      repo,
		webhookUC: webhookUC,
	}
}

// Handle processes webhook requests. Delivery is dispatched
// asynchronously so GitHub gets a fast response.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	hookID := chi.URLParam(r, "hookID")
	sub, err := h.repo.GetSubscriptionByHookID(ctx, hookID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			writeError(w, goerr.New("unknown hook"), http.StatusNotFound)
			return
		}
		logger.Error("Failed to load subscription", "error", err, "hook_id", hookID)
		writeError(w, goerr.New("internal error"), http.StatusInternalServerError)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadSize))
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeError(w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get("X-Hub-Signature-256")
	if signature == "" {
		signature = r.Header.Get("X-Hub-Signature")
	}
	if err := github.ValidateSignature(signature, body, []byte(sub.Secret)); err != nil {
		logger.Warn("Invalid webhook signature", "hook_id", hookID)
		writeError(w, goerr.New("invalid signature"), http.StatusUnauthorized)
		return
	}

	eventType := github.WebHookType(r)
	if eventType == "" {
		writeError(w, goerr.New("missing event type header"), http.StatusBadRequest)
		return
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		logger.Error("Failed to parse webhook payload", "error", err)
		writeError(w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return
	}

	if !sub.AllowsEvent(eventType) {
		logger.Info("Event filtered by subscription",
			"type", eventType,
			"hook_id", hookID,
		)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	event := &model.WebhookEvent{
		ID:         github.DeliveryID(r),
		Type:       eventType,
		HookID:     hookID,
		ReceivedAt: time.Now(),
		Payload:    payload,
		RawPayload: body,
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		return h.webhookUC.ProcessEvent(ctx, event, sub)
	})

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func writeJSON(w http.ResponseWriter, status int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(context.Background()).Error("Failed to encode response", "error", err)
	}
}
