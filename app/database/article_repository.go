package database

import (
	"database/sql"
	"fmt"
)

var _ ArticleHistoryRepository = (*ArticleHistoryRepo)(nil)

type ArticleHistoryRepo struct {
	db *DB
}

func NewArticleHistoryRepo(db *DB) *ArticleHistoryRepo {
	return &ArticleHistoryRepo{db: db}
}

func (r *ArticleHistoryRepo) MarkSent(url, title string) error {
	_, err := r.db.Exec(`
		INSERT OR IGNORE INTO sent_articles (url, title) VALUES (?, ?)
	`, url, title)
	if err != nil {
		return fmt.Errorf("failed to mark article sent: %w", err)
	}
	return nil
}

func (r *ArticleHistoryRepo) WasSent(url string) (bool, error) {
	var one int
	err := r.db.QueryRow(`SELECT 1 FROM sent_articles WHERE url = ?`, url).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check sent article: %w", err)
	}
	return true, nil
}

func (r *ArticleHistoryRepo) PurgeOlderThan(days int) (int64, error) {
	result, err := r.db.Exec(`
		DELETE FROM sent_articles WHERE sent_at < datetime('now', ?)
	`, fmt.Sprintf("-%d days", days))
	if err != nil {
		return 0, fmt.Errorf("failed to purge sent articles: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged articles: %w", err)
	}
	return removed, nil
}

func (r *ArticleHistoryRepo) LogAlert(title string, level int, sentTo int) error {
	_, err := r.db.Exec(`
		INSERT INTO alerts_log (title, level, sent_to) VALUES (?, ?, ?)
	`, title, level, sentTo)
	if err != nil {
		return fmt.Errorf("failed to log alert: %w", err)
	}
	return nil
}
