package database

import (
	"database/sql"
	"fmt"
)

// schema is applied on every start; all statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	token_version INTEGER NOT NULL DEFAULT 0,
	created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS user_favorites (
	user_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	pokemon  TEXT NOT NULL,
	note     TEXT NOT NULL DEFAULT '',
	added_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (user_id, pokemon)
);

CREATE INDEX IF NOT EXISTS idx_user_favorites_added
	ON user_favorites (user_id, added_at DESC);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
