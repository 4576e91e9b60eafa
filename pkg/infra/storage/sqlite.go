// Package storage implements SubscriptionRepository on SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/m-mizutani/goerr/v2"
	"github.com/najahiiii/gh-weebhooks/pkg/domain/interfaces"
	"github.com/najahiiii/gh-weebhooks/pkg/domain/model"
	"github.com/najahiiii/gh-weebhooks/pkg/domain/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS bots (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	token TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS destinations (
	id TEXT PRIMARY KEY,
	chat_id TEXT NOT NULL,
	topic_id INTEGER
);

CREATE TABLE IF NOT EXISTS subscriptions (
	id TEXT PRIMARY KEY,
	hook_id TEXT NOT NULL UNIQUE,
	bot_id TEXT NOT NULL,
	destination_id TEXT NOT NULL,
	secret TEXT NOT NULL,
	events TEXT NOT NULL DEFAULT '*',
	FOREIGN KEY (bot_id) REFERENCES bots(id),
	FOREIGN KEY (destination_id) REFERENCES destinations(id)
);

CREATE INDEX IF NOT EXISTS idx_subscriptions_hook_id ON subscriptions(hook_id);
`

type repository struct {
	db *sql.DB
}

// New opens or creates the SQLite database at dbPath and applies the
// schema
func New(dbPath string) (interfaces.SubscriptionRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, goerr.Wrap(err, "failed to create database directory", goerr.V("dir", dir))
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database", goerr.V("path", dbPath))
	}

	// WAL mode allows concurrent readers while handling webhooks
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to enable WAL mode")
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to apply schema")
	}

	return &repository{db: db}, nil
}

func (r *repository) GetSubscriptionByHookID(ctx context.Context, hookID string) (*model.Subscription, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, hook_id, bot_id, destination_id, secret, events FROM subscriptions WHERE hook_id = ?`,
		hookID)

	var sub model.Subscription
	err := row.Scan(&sub.ID, &sub.HookID, &sub.BotID, &sub.DestinationID, &sub.Secret, &sub.EventsCSV)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(types.ErrNotFound, "subscription not found", goerr.V("hook_id", hookID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query subscription", goerr.V("hook_id", hookID))
	}
	return &sub, nil
}

func (r *repository) GetBot(ctx context.Context, id string) (*model.Bot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, token FROM bots WHERE id = ?`, id)

	var bot model.Bot
	err := row.Scan(&bot.ID, &bot.Name, &bot.Token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(types.ErrNotFound, "bot not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query bot", goerr.V("id", id))
	}
	return &bot, nil
}

func (r *repository) GetDestination(ctx context.Context, id string) (*model.Destination, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, chat_id, topic_id FROM destinations WHERE id = ?`, id)

	var dst model.Destination
	var topicID sql.NullInt64
	err := row.Scan(&dst.ID, &dst.ChatID, &topicID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(types.ErrNotFound, "destination not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query destination", goerr.V("id", id))
	}
	if topicID.Valid {
		dst.TopicID = &topicID.Int64
	}
	return &dst, nil
}

func (r *repository) CreateBot(ctx context.Context, bot *model.Bot) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bots (id, name, token) VALUES (?, ?, ?)`,
		bot.ID, bot.Name, bot.Token)
	if err != nil {
		return goerr.Wrap(err, "failed to insert bot", goerr.V("id", bot.ID))
	}
	return nil
}

func (r *repository) CreateDestination(ctx context.Context, dst *model.Destination) error {
	var topicID sql.NullInt64
	if dst.TopicID != nil {
		topicID = sql.NullInt64{Int64: *dst.TopicID, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO destinations (id, chat_id, topic_id) VALUES (?, ?, ?)`,
		dst.ID, dst.ChatID, topicID)
	if err != nil {
		return goerr.Wrap(err, "failed to insert destination", goerr.V("id", dst.ID))
	}
	return nil
}

func (r *repository) CreateSubscription(ctx context.Context, sub *model.Subscription) error {
	events := sub.EventsCSV
	if events == "" {
		events = "*"
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subscriptions (id, hook_id, bot_id, destination_id, secret, events) VALUES (?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.HookID, sub.BotID, sub.DestinationID, sub.Secret, events)
	if err != nil {
		return goerr.Wrap(err, "failed to insert subscription", goerr.V("id", sub.ID))
	}
	return nil
}

func (r *repository) Close() error {
	return r.db.Close()
}
