package model_test

import (
	"testing"

	"github.com/najahiiii/gh-weebhooks/pkg/domain/model"
)

func TestSubscription_AllowsEvent(t *testing.T) {
	tests := []struct {
		name      string
		eventsCSV string
		event     string
		expected  bool
	}{
		{
			name:      "Wildcard accepts everything",
			eventsCSV: "*",
			event:     "push",
			expected:  true,
		},
		{
			name:      "Empty filter accepts everything",
			eventsCSV: "",
			event:     "issues",
			expected:  true,
		},
		{
			name:      "Listed event accepted",
			eventsCSV: "push,pull_request",
			event:     "pull_request",
			expected:  true,
		},
		{
			name:      "Unlisted event rejected",
			eventsCSV: "push,pull_request",
			event:     "issues",
			expected:  false,
		},
		{
			name:      "Whitespace around entries tolerated",
			eventsCSV: "push, pull_request , release",
			event:     "release",
			expected:  true,
		},
		{
			name:      "No partial matches",
			eventsCSV: "pull_request",
			event:     "pull",
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &model.Subscription{EventsCSV: tt.eventsCSV}
			got := sub.AllowsEvent(tt.event)
			if got != tt.expected {
				t.Errorf("AllowsEvent(%q) = %v, want %v", tt.event, got, tt.expected)
			}
		})
	}
}
