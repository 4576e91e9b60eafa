package model

import "strings"

// Bot is a registered Telegram bot used to deliver notifications.
type Bot struct {
	ID    string
	Name  string
	Token string `masq:"secret"`
}

// Destination is a Telegram chat, channel, or forum topic that receives
// forwarded notifications. TopicID is nil for plain chats.
type Destination struct {
	ID      string
	ChatID  string
	TopicID *int64
}

// Subscription binds a GitHub repository webhook to a (bot, destination)
// pair. HookID appears in the webhook URL and Secret signs its deliveries.
type Subscription struct {
	ID            string
	HookID        string
	BotID         string
	DestinationID string
	Secret        string `masq:"secret"`
	EventsCSV     string
}

// AllowsEvent reports whether the subscription's event filter accepts the
// event type. An empty filter or "*" accepts everything.
func (s *Subscription) AllowsEvent(event string) bool {
	if s.EventsCSV == "" || s.EventsCSV == "*" {
		return true
	}
	for _, allowed := range strings.Split(s.EventsCSV, ",") {
		if strings.TrimSpace(allowed) == event {
			return true
		}
	}
	return false
}
