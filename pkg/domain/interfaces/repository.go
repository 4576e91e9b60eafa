package interfaces

import (
	"context"

	"github.com/najahiiii/gh-weebhooks/pkg/domain/model"
)

// SubscriptionRepository defines persistence operations for bots,
// destinations, and subscriptions
type SubscriptionRepository interface {
	// GetSubscriptionByHookID looks up the subscription addressed by a
	// webhook URL path segment
	GetSubscriptionByHookID(ctx context.Context, hookID string) (*model.Subscription, error)

	// GetBot returns the bot credentials for a subscription
	GetBot(ctx context.Context, id string) (*model.Bot, error)

	// GetDestination returns the chat destination for a subscription
	GetDestination(ctx context.Context, id string) (*model.Destination, error)

	CreateBot(ctx context.Context, bot *model.Bot) error
	CreateDestination(ctx context.Context, dst *model.Destination) error
	CreateSubscription(ctx context.Context, sub *model.Subscription) error

	Close() error
}
