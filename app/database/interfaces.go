package database

// SubscriberRepository manages alert recipients.
type SubscriberRepository interface {
	Add(userID int64, username string) error
	Remove(userID int64) error
	// ListForAlert returns active subscriber IDs whose minimum level is at
	// most level and whose region matches region or is "all". Passing region
	// "all" (or "") matches every active subscriber at that level.
	ListForAlert(region string, level int) ([]int64, error)
	SetRegion(userID int64, region string) error
	SetLevel(userID int64, level int) error
	Count() (int, error)
}

// ArticleHistoryRepository tracks delivered articles and the alert log.
type ArticleHistoryRepository interface {
	MarkSent(url, title string) error
	WasSent(url string) (bool, error)
	// PurgeOlderThan deletes sent-article records older than the given number
	// of days and returns how many were removed.
	PurgeOlderThan(days int) (int64, error)
	LogAlert(title string, level int, sentTo int) error
}

// SearchHistoryRepository is an append log of user search queries.
type SearchHistoryRepository interface {
	Log(userID int64, query string) error
	Recent(userID int64, limit int) ([]string, error)
}
