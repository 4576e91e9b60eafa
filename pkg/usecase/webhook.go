// Package usecase wires webhook events through summarization and
// delivery.
package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/najahiiii/gh-weebhooks/pkg/domain/interfaces"
	"github.com/najahiiii/gh-weebhooks/pkg/domain/model"
	"github.com/najahiiii/gh-weebhooks/pkg/summary"
)

type webhookUseCase struct {
	repo     interfaces.SubscriptionRepository
	notifier interfaces.Notifier
}

// NewWebhook creates a new instance of WebhookUseCase
func NewWebhook(repo interfaces.SubscriptionRepository, notifier interfaces.Notifier) *webhookUseCase {
	return &webhookUseCase{
		repo:     repo,
		notifier: notifier,
	}
}

// ProcessEvent summarizes the event and sends the result to the
// subscription's Telegram destination
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent, sub *model.Subscription) error {
	logger := ctxlog.From(ctx)

	logger.Info("Processing webhook event",
		"id", event.ID,
		"type", event.Type,
		"hook_id", event.HookID,
		"subscription_id", sub.ID,
	)

	bot, err := uc.repo.GetBot(ctx, sub.BotID)
	if err != nil {
		return goerr.Wrap(err, "failed to load bot", goerr.V("bot_id", sub.BotID))
	}

	dst, err := uc.repo.GetDestination(ctx, sub.DestinationID)
	if err != nil {
		return goerr.Wrap(err, "failed to load destination", goerr.V("destination_id", sub.DestinationID))
	}

	text := summary.Summarize(event.Type, event.Payload)

	if err := uc.notifier.SendMessage(ctx, bot.Token, dst.ChatID, text, dst.TopicID); err != nil {
		return goerr.Wrap(err, "failed to deliver notification",
			goerr.V("event_type", event.Type),
			goerr.V("destination_id", dst.ID))
	}

	logger.Info("Delivered webhook notification",
		"id", event.ID,
		"type", event.Type,
		"chat_id", dst.ChatID,
	)

	return nil
}
