package database

import (
	"time"
)

// Subscriber is a registered alert recipient with region and minimum-level
// preferences.
type Subscriber struct {
	UserID   int64
	Username string
	Region   string
	MinLevel int
	JoinedAt time.Time
	Active   bool
}

// SentArticle records an article already delivered, keyed by URL.
type SentArticle struct {
	URL    string
	Title  string
	SentAt time.Time
}
