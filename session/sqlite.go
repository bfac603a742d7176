package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS cookies (
	host      TEXT    NOT NULL,
	name      TEXT    NOT NULL,
	path      TEXT    NOT NULL,
	url       TEXT    NOT NULL,
	value     TEXT    NOT NULL,
	domain    TEXT    NOT NULL DEFAULT '',
	expires   INTEGER NOT NULL DEFAULT 0,
	secure    INTEGER NOT NULL DEFAULT 0,
	http_only INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (host, name, path)
)`

var _ Repo = (*SQLiteRepo)(nil)

// SQLiteRepo stores cookies in a single SQLite file so a session survives between
// CLI invocations.
type SQLiteRepo struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the cookie database at path. ":memory:" gives
// a private in-memory store.
func OpenSQLite(path string) (*SQLiteRepo, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, apperrors.Wrapf(err, "creating cookie store directory")
		}
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, apperrors.Wrapf(err, "opening cookie store %s", path)
	}
	// One connection keeps ":memory:" a single database and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, apperrors.Wrapf(err, "creating cookie schema")
	}
	return &SQLiteRepo{db: db}, nil
}

func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepo) Save(c Cookie) error {
	var expires int64
	if !c.Expires.IsZero() {
		expires = c.Expires.Unix()
	}
	_, err := r.db.Exec(`
		INSERT INTO cookies (host, name, path, url, value, domain, expires, secure, http_only)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (host, name, path) DO UPDATE SET
			url = excluded.url,
			value = excluded.value,
			domain = excluded.domain,
			expires = excluded.expires,
			secure = excluded.secure,
			http_only = excluded.http_only`,
		c.Host, c.Name, c.Path, c.URL, c.Value, c.Domain, expires, c.Secure, c.HttpOnly)
	return apperrors.Wrapf(err, "saving cookie %s", c.Name)
}

func (r *SQLiteRepo) Delete(host, name, path string) error {
	_, err := r.db.Exec(`DELETE FROM cookies WHERE host = ? AND name = ? AND path = ?`, host, name, path)
	return apperrors.Wrapf(err, "deleting cookie %s", name)
}

func (r *SQLiteRepo) Clear(host string) error {
	_, err := r.db.Exec(`DELETE FROM cookies WHERE host = ?`, host)
	return apperrors.Wrapf(err, "clearing cookies for %s", host)
}

func (r *SQLiteRepo) Load() ([]Cookie, error) {
	rows, err := r.db.Query(`
		SELECT host, name, path, url, value, domain, expires, secure, http_only
		FROM cookies ORDER BY host, name`)
	if err != nil {
		return nil, apperrors.Wrapf(err, "loading cookies")
	}
	defer rows.Close()

	var cookies []Cookie
	for rows.Next() {
		var (
			c       Cookie
			expires int64
		)
		if err := rows.Scan(&c.Host, &c.Name, &c.Path, &c.URL, &c.Value, &c.Domain, &expires, &c.Secure, &c.HttpOnly); err != nil {
			return nil, fmt.Errorf("scanning cookie: %w", err)
		}
		if expires != 0 {
			c.Expires = time.Unix(expires, 0)
		}
		cookies = append(cookies, c)
	}
	return cookies, apperrors.Wrapf(rows.Err(), "loading cookies")
}
