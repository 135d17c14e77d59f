package db

import "database/sql"

func Migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS links (
    id           TEXT PRIMARY KEY,
    user_id      TEXT    NOT NULL DEFAULT '',
    title        TEXT    NOT NULL,
    description  TEXT    NOT NULL DEFAULT '',
    ios_url      TEXT    NOT NULL DEFAULT '',
    android_url  TEXT    NOT NULL DEFAULT '',
    web_url      TEXT    NOT NULL DEFAULT '',
    show_ios     INTEGER NOT NULL DEFAULT 1,
    show_android INTEGER NOT NULL DEFAULT 1,
    show_web     INTEGER NOT NULL DEFAULT 1,
    logo_url     TEXT    NOT NULL DEFAULT '',
    screenshots  TEXT    NOT NULL DEFAULT '[]',
    rating       REAL    NOT NULL DEFAULT 0,
    review_count INTEGER NOT NULL DEFAULT 0,
    created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_links_user_id ON links(user_id);
CREATE INDEX IF NOT EXISTS idx_links_created_at ON links(created_at);

CREATE TABLE IF NOT EXISTS clicks (
    id         TEXT PRIMARY KEY,
    link_id    TEXT NOT NULL,
    platform   TEXT NOT NULL,
    source     TEXT NOT NULL DEFAULT 'direct',
    country    TEXT NOT NULL DEFAULT 'Unknown',
    city       TEXT NOT NULL DEFAULT 'Unknown',
    user_agent TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL,
    FOREIGN KEY (link_id) REFERENCES links(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_clicks_link_id ON clicks(link_id);
CREATE INDEX IF NOT EXISTS idx_clicks_created_at ON clicks(created_at);
`
