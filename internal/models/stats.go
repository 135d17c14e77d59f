package models

import (
	"database/sql"
	"fmt"
	"strings"
)

// LinkStats is one dashboard snapshot row: a link plus its full click
// history, newest first.
type LinkStats struct {
	Link
	Clicks []Click
}

// LinksWithClicks fetches every link ordered by creation descending with
// its nested clicks. The dashboard recomputes all aggregates from this
// snapshot on each load.
func LinksWithClicks(db *sql.DB) ([]LinkStats, error) {
	links, err := ListLinks(db)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, nil
	}

	byLink, err := clicksByLink(db, linkIDs(links))
	if err != nil {
		return nil, err
	}

	stats := make([]LinkStats, len(links))
	for i, l := range links {
		stats[i] = LinkStats{Link: l, Clicks: byLink[l.ID]}
	}
	return stats, nil
}

// ClickCountsForLinks returns click totals keyed by link id.
func ClickCountsForLinks(db *sql.DB, ids []string) (map[string]int, error) {
	counts := make(map[string]int, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	query := fmt.Sprintf(`SELECT link_id, COUNT(*) FROM clicks WHERE link_id IN (%s) GROUP BY link_id`, placeholders(len(ids)))
	rows, err := db.Query(query, idArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("click counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("scan click count: %w", err)
		}
		counts[id] = count
	}
	return counts, rows.Err()
}

func clicksByLink(db *sql.DB, ids []string) (map[string][]Click, error) {
	query := fmt.Sprintf(
		`SELECT id, link_id, platform, source, country, city, user_agent, created_at FROM clicks WHERE link_id IN (%s) ORDER BY created_at DESC`,
		placeholders(len(ids)),
	)
	rows, err := db.Query(query, idArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("clicks by link: %w", err)
	}
	defer rows.Close()

	byLink := make(map[string][]Click)
	for rows.Next() {
		var c Click
		if err := rows.Scan(&c.ID, &c.LinkID, &c.Platform, &c.Source, &c.Country, &c.City, &c.UserAgent, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan click: %w", err)
		}
		byLink[c.LinkID] = append(byLink[c.LinkID], c)
	}
	return byLink, rows.Err()
}

func linkIDs(links []Link) []string {
	ids := make([]string, len(links))
	for i, l := range links {
		ids[i] = l.ID
	}
	return ids
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func idArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
