package interfaces

import (
	"context"

	"github.com/najahiiii/gh-weebhooks/pkg/domain/model"
)

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessEvent summarizes an event and delivers it to the
	// subscription's destination
	ProcessEvent(ctx context.Context, event *model.WebhookEvent, sub *model.Subscription) error
}
