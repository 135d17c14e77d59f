package models

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Platform tags recorded against clicks and used to pick destinations.
const (
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
	PlatformWeb     = "web"
)

func ValidPlatform(p string) bool {
	return p == PlatformIOS || p == PlatformAndroid || p == PlatformWeb
}

type Link struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IOSURL      string    `json:"ios_url"`
	AndroidURL  string    `json:"android_url"`
	WebURL      string    `json:"web_url"`
	ShowIOS     bool      `json:"show_ios"`
	ShowAndroid bool      `json:"show_android"`
	ShowWeb     bool      `json:"show_web"`
	LogoURL     string    `json:"logo_url"`
	Screenshots []string  `json:"screenshots"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Destination holds one offered platform choice on the landing page.
type Destination struct {
	Platform string
	URL      string
}

// Destination returns the URL for a platform. A destination is offered
// only when its visibility flag is set and the URL is non-empty.
func (l *Link) Destination(platform string) (string, bool) {
	var show bool
	var u string
	switch platform {
	case PlatformIOS:
		show, u = l.ShowIOS, l.IOSURL
	case PlatformAndroid:
		show, u = l.ShowAndroid, l.AndroidURL
	case PlatformWeb:
		show, u = l.ShowWeb, l.WebURL
	default:
		return "", false
	}
	if !show || u == "" {
		return "", false
	}
	return u, true
}

// Destinations returns the offered choices in iOS, Android, Web order.
func (l *Link) Destinations() []Destination {
	var out []Destination
	for _, p := range []string{PlatformIOS, PlatformAndroid, PlatformWeb} {
		if u, ok := l.Destination(p); ok {
			out = append(out, Destination{Platform: p, URL: u})
		}
	}
	return out
}

const linkColumns = `id, user_id, title, description, ios_url, android_url, web_url, show_ios, show_android, show_web, logo_url, screenshots, rating, review_count, created_at`

func CreateLink(db *sql.DB, l *Link) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	shots, err := json.Marshal(screenshotsOrEmpty(l.Screenshots))
	if err != nil {
		return fmt.Errorf("marshal screenshots: %w", err)
	}

	_, err = db.Exec(
		`INSERT INTO links (id, user_id, title, description, ios_url, android_url, web_url, show_ios, show_android, show_web, logo_url, screenshots, rating, review_count) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.UserID, l.Title, l.Description, l.IOSURL, l.AndroidURL, l.WebURL,
		boolInt(l.ShowIOS), boolInt(l.ShowAndroid), boolInt(l.ShowWeb),
		l.LogoURL, string(shots), l.Rating, l.ReviewCount,
	)
	if err != nil {
		return fmt.Errorf("insert link: %w", err)
	}

	// Re-read to get the store-assigned timestamp
	return GetLinkByID(db, l)
}

func GetLinkByID(db *sql.DB, l *Link) error {
	row := db.QueryRow(`SELECT `+linkColumns+` FROM links WHERE id = ?`, l.ID)
	return scanLink(row, l)
}

func ListLinks(db *sql.DB) ([]Link, error) {
	rows, err := db.Query(`SELECT ` + linkColumns + ` FROM links ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	defer rows.Close()

	var links []Link
	for rows.Next() {
		var l Link
		if err := scanLinkRows(rows, &l); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func UpdateLink(db *sql.DB, l *Link) error {
	shots, err := json.Marshal(screenshotsOrEmpty(l.Screenshots))
	if err != nil {
		return fmt.Errorf("marshal screenshots: %w", err)
	}

	res, err := db.Exec(
		`UPDATE links SET title = ?, description = ?, ios_url = ?, android_url = ?, web_url = ?, show_ios = ?, show_android = ?, show_web = ?, logo_url = ?, screenshots = ?, rating = ?, review_count = ? WHERE id = ?`,
		l.Title, l.Description, l.IOSURL, l.AndroidURL, l.WebURL,
		boolInt(l.ShowIOS), boolInt(l.ShowAndroid), boolInt(l.ShowWeb),
		l.LogoURL, string(shots), l.Rating, l.ReviewCount, l.ID,
	)
	if err != nil {
		return fmt.Errorf("update link: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return GetLinkByID(db, l)
}

// DeleteLink removes a link; the store cascades the delete to its clicks.
func DeleteLink(db *sql.DB, id string) error {
	res, err := db.Exec(`DELETE FROM links WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLink(row *sql.Row, l *Link) error {
	return scanLinkRows(row, l)
}

func scanLinkRows(row rowScanner, l *Link) error {
	var showIOS, showAndroid, showWeb int
	var shots string
	if err := row.Scan(
		&l.ID, &l.UserID, &l.Title, &l.Description,
		&l.IOSURL, &l.AndroidURL, &l.WebURL,
		&showIOS, &showAndroid, &showWeb,
		&l.LogoURL, &shots, &l.Rating, &l.ReviewCount, &l.CreatedAt,
	); err != nil {
		return err
	}
	l.ShowIOS = showIOS == 1
	l.ShowAndroid = showAndroid == 1
	l.ShowWeb = showWeb == 1
	l.Screenshots = nil
	if shots != "" {
		if err := json.Unmarshal([]byte(shots), &l.Screenshots); err != nil {
			return fmt.Errorf("unmarshal screenshots: %w", err)
		}
	}
	return nil
}

func screenshotsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
