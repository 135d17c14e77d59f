package models

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Click struct {
	ID        string    `json:"id"`
	LinkID    string    `json:"link_id"`
	Platform  string    `json:"platform"`
	Source    string    `json:"source"`
	Country   string    `json:"country"`
	City      string    `json:"city"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

func BatchInsertClicks(db *sql.DB, clicks []Click) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO clicks (id, link_id, platform, source, country, city, user_agent, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, c := range clicks {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now().UTC()
		}
		_, err := stmt.Exec(c.ID, c.LinkID, c.Platform, c.Source, c.Country, c.City, c.UserAgent, c.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert click: %w", err)
		}
	}

	return tx.Commit()
}

func ClicksForLink(db *sql.DB, linkID string) ([]Click, error) {
	rows, err := db.Query(
		`SELECT id, link_id, platform, source, country, city, user_agent, created_at FROM clicks WHERE link_id = ? ORDER BY created_at DESC`,
		linkID,
	)
	if err != nil {
		return nil, fmt.Errorf("clicks for link: %w", err)
	}
	defer rows.Close()

	var clicks []Click
	for rows.Next() {
		var c Click
		if err := rows.Scan(&c.ID, &c.LinkID, &c.Platform, &c.Source, &c.Country, &c.City, &c.UserAgent, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan click: %w", err)
		}
		clicks = append(clicks, c)
	}
	return clicks, rows.Err()
}
