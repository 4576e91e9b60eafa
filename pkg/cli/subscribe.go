package cli

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/najahiiii/gh-weebhooks/pkg/cli/config"
	"github.com/najahiiii/gh-weebhooks/pkg/domain/model"
	"github.com/najahiiii/gh-weebhooks/pkg/infra/storage"
	"github.com/najahiiii/gh-weebhooks/pkg/summary"
	"github.com/urfave/cli/v3"
)

// cmdSubscribe registers a bot, destination, and subscription in one
// step and prints the webhook URL path to configure on GitHub.
func cmdSubscribe() *cli.Command {
	var (
		dbCfg     config.Database
		botName   string
		botToken  string
		chatID    string
		topicID   int64
		secret    string
		eventsCSV string
	)

	flags := append(dbCfg.Flags(),
		&cli.StringFlag{
			Name:        "bot-name",
			Usage:       "Display name for the Telegram bot",
			Value:       "github-notifier",
			Destination: &botName,
		},
		&cli.StringFlag{
			Name:        "bot-token",
			Usage:       "Telegram bot token",
			Required:    true,
			Destination: &botToken,
			Sources:     cli.EnvVars("GHWH_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "chat-id",
			Usage:       "Telegram chat ID to deliver notifications to",
			Required:    true,
			Destination: &chatID,
		},
		&cli.Int64Flag{
			Name:        "topic-id",
			Usage:       "Forum topic ID within the chat (0 for none)",
			Destination: &topicID,
		},
		&cli.StringFlag{
			Name:        "secret",
			Usage:       "Webhook signing secret (generated when empty)",
			Destination: &secret,
			Sources:     cli.EnvVars("GHWH_WEBHOOK_SECRET"),
		},
		&cli.StringFlag{
			Name:        "events",
			Usage:       "Comma-separated event filter, or * for all",
			Value:       "*",
			Destination: &eventsCSV,
		},
	)

	return &cli.Command{
		Name:  "subscribe",
		Usage: "Register a webhook subscription",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			repo, err := storage.New(dbCfg.Path)
			if err != nil {
				return goerr.Wrap(err, "failed to open database")
			}
			defer repo.Close()

			if err := validateEvents(eventsCSV); err != nil {
				return err
			}

			if secret == "" {
				secret, err = generateSecret()
				if err != nil {
					return err
				}
			}

			bot := &model.Bot{
				ID:    uuid.NewString(),
				Name:  botName,
				Token: botToken,
			}
			if err := repo.CreateBot(ctx, bot); err != nil {
				return err
			}

			dst := &model.Destination{
				ID:     uuid.NewString(),
				ChatID: chatID,
			}
			if topicID != 0 {
				dst.TopicID = &topicID
			}
			if err := repo.CreateDestination(ctx, dst); err != nil {
				return err
			}

			sub := &model.Subscription{
				ID:            uuid.NewString(),
				HookID:        uuid.NewString(),
				BotID:         bot.ID,
				DestinationID: dst.ID,
				Secret:        secret,
				EventsCSV:     eventsCSV,
			}
			if err := repo.CreateSubscription(ctx, sub); err != nil {
				return err
			}

			logger.Info("Subscription created",
				slog.String("subscription_id", sub.ID),
				slog.String("hook_id", sub.HookID),
			)

			fmt.Printf("Webhook path: /hooks/github/%s\n", sub.HookID)
			fmt.Printf("Webhook secret: %s\n", secret)
			return nil
		},
	}
}

func validateEvents(eventsCSV string) error {
	if eventsCSV == "" || eventsCSV == "*" {
		return nil
	}
	known := summary.EventNames()
	for _, name := range strings.Split(eventsCSV, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !slices.Contains(known, name) {
			return goerr.New("unknown event type in filter", goerr.V("event", name))
		}
	}
	return nil
}

func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", goerr.Wrap(err, "failed to generate webhook secret")
	}
	return hex.EncodeToString(buf), nil
}
