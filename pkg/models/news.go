package models

import "time"

// NewsItem is one headline from the provider's league news feed
type NewsItem struct {
	ID          string    `json:"id"`
	SportKey    string    `json:"sport_key"`
	Headline    string    `json:"headline"`
	Description string    `json:"description,omitempty"`
	Link        string    `json:"link,omitempty"`
	Published   time.Time `json:"published"`
}
