package database

import (
	"fmt"
)

var _ SearchHistoryRepository = (*SearchHistoryRepo)(nil)

type SearchHistoryRepo struct {
	db *DB
}

func NewSearchHistoryRepo(db *DB) *SearchHistoryRepo {
	return &SearchHistoryRepo{db: db}
}

func (r *SearchHistoryRepo) Log(userID int64, query string) error {
	_, err := r.db.Exec(`
		INSERT INTO search_history (user_id, query) VALUES (?, ?)
	`, userID, query)
	if err != nil {
		return fmt.Errorf("failed to log search: %w", err)
	}
	return nil
}

// Recent returns the user's latest distinct queries, newest first.
func (r *SearchHistoryRepo) Recent(userID int64, limit int) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT query FROM search_history
		WHERE user_id = ?
		GROUP BY query
		ORDER BY MAX(searched_at) DESC, MAX(id) DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read search history: %w", err)
	}
	defer rows.Close()

	var queries []string
	for rows.Next() {
		var query string
		if err := rows.Scan(&query); err != nil {
			return nil, fmt.Errorf("failed to scan search history: %w", err)
		}
		queries = append(queries, query)
	}

	return queries, rows.Err()
}
