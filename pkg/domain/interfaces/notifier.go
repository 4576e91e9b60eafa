package interfaces

import "context"

// Notifier defines operations for delivering messages to a chat service
type Notifier interface {
	// SendMessage sends an HTML-formatted message to a chat. topicID
	// targets a forum topic when non-nil.
	SendMessage(ctx context.Context, token, chatID, text string, topicID *int64) error
}
