package database

import (
	"fmt"
)

var _ SubscriberRepository = (*SubscriberRepo)(nil)

type SubscriberRepo struct {
	db *DB
}

func NewSubscriberRepo(db *DB) *SubscriberRepo {
	return &SubscriberRepo{db: db}
}

// Add registers a subscriber, reactivating a previously removed one.
func (r *SubscriberRepo) Add(userID int64, username string) error {
	_, err := r.db.Exec(`
		INSERT INTO subscribers (user_id, username, active)
		VALUES (?, ?, 1)
		ON CONFLICT(user_id) DO UPDATE SET active = 1
	`, userID, username)
	if err != nil {
		return fmt.Errorf("failed to add subscriber: %w", err)
	}
	return nil
}

// Remove deactivates a subscriber without deleting preferences.
func (r *SubscriberRepo) Remove(userID int64) error {
	_, err := r.db.Exec(`UPDATE subscribers SET active = 0 WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to remove subscriber: %w", err)
	}
	return nil
}

func (r *SubscriberRepo) ListForAlert(region string, level int) ([]int64, error) {
	var query string
	var args []interface{}

	if region != "" && region != "all" {
		query = `
			SELECT user_id FROM subscribers
			WHERE active = 1 AND min_level <= ? AND (region = ? OR region = 'all')
		`
		args = []interface{}{level, region}
	} else {
		query = `
			SELECT user_id FROM subscribers
			WHERE active = 1 AND min_level <= ?
		`
		args = []interface{}{level}
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	var userIDs []int64
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		userIDs = append(userIDs, userID)
	}

	return userIDs, rows.Err()
}

func (r *SubscriberRepo) SetRegion(userID int64, region string) error {
	_, err := r.db.Exec(`UPDATE subscribers SET region = ? WHERE user_id = ?`, region, userID)
	if err != nil {
		return fmt.Errorf("failed to set subscriber region: %w", err)
	}
	return nil
}

func (r *SubscriberRepo) SetLevel(userID int64, level int) error {
	_, err := r.db.Exec(`UPDATE subscribers SET min_level = ? WHERE user_id = ?`, level, userID)
	if err != nil {
		return fmt.Errorf("failed to set subscriber level: %w", err)
	}
	return nil
}

func (r *SubscriberRepo) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM subscribers WHERE active = 1`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return count, nil
}
