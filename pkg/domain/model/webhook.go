package model

import "time"

// WebhookEvent represents one webhook delivery received from GitHub
type WebhookEvent struct {
	ID         string    // Retrieved from X-GitHub-Delivery header
	Type       string    // Retrieved from X-GitHub-Event header
	HookID     string    // Subscription hook ID from the request path
	ReceivedAt time.Time // Time when the event was received
	Payload    any       // JSON-decoded payload
	RawPayload []byte    // Raw JSON payload
}
