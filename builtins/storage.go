package builtins

import (
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/example/minjs/runtime"
)

// Storage backs localStorage and sessionStorage with a SQLite database.
// Passing ":memory:" as the path gives a session-scoped store; a file path
// persists across runs the way localStorage does.
type Storage struct {
	db *sql.DB
}

// OpenStorage opens (and if needed initializes) a storage database.
func OpenStorage(path string) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, runtime.Errf("storage open: %v", err)
	}
	const schema = `CREATE TABLE IF NOT EXISTS kv (
		area TEXT NOT NULL,
		key  TEXT NOT NULL,
		val  TEXT NOT NULL,
		seq  INTEGER,
		PRIMARY KEY (area, key)
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, runtime.Errf("storage init: %v", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error { return s.db.Close() }

// Method dispatches a localStorage or sessionStorage call. area is the
// storage bucket name.
func (s *Storage) Method(area, name string, args []*runtime.Value) (*runtime.Value, error) {
	switch name {
	case "getItem":
		var val string
		err := s.db.QueryRow(
			`SELECT val FROM kv WHERE area = ? AND key = ?`,
			area, argString(args, 0)).Scan(&val)
		if err == sql.ErrNoRows {
			return runtime.Null, nil
		}
		if err != nil {
			return nil, runtime.Errf("storage read: %v", err)
		}
		return runtime.NewString(val), nil
	case "setItem":
		_, err := s.db.Exec(
			`INSERT INTO kv (area, key, val, seq) VALUES (?, ?, ?,
				(SELECT COALESCE(MAX(seq), 0) + 1 FROM kv WHERE area = ?))
			 ON CONFLICT (area, key) DO UPDATE SET val = excluded.val`,
			area, argString(args, 0), argString(args, 1), area)
		if err != nil {
			return nil, runtime.Errf("storage write: %v", err)
		}
		return runtime.Undefined, nil
	case "removeItem":
		if _, err := s.db.Exec(
			`DELETE FROM kv WHERE area = ? AND key = ?`,
			area, argString(args, 0)); err != nil {
			return nil, runtime.Errf("storage delete: %v", err)
		}
		return runtime.Undefined, nil
	case "clear":
		if _, err := s.db.Exec(`DELETE FROM kv WHERE area = ?`, area); err != nil {
			return nil, runtime.Errf("storage clear: %v", err)
		}
		return runtime.Undefined, nil
	case "key":
		var key string
		err := s.db.QueryRow(
			`SELECT key FROM kv WHERE area = ? ORDER BY seq LIMIT 1 OFFSET ?`,
			area, toInteger(argAt(args, 0))).Scan(&key)
		if err == sql.ErrNoRows {
			return runtime.Null, nil
		}
		if err != nil {
			return nil, runtime.Errf("storage read: %v", err)
		}
		return runtime.NewString(key), nil
	}
	return nil, runtime.Errf("%q is not a function on storage", name)
}

// Length resolves the length accessor form.
func (s *Storage) Length(area string) (*runtime.Value, error) {
	var n int64
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM kv WHERE area = ?`, area).Scan(&n); err != nil {
		return nil, runtime.Errf("storage read: %v", err)
	}
	return runtime.NewNumber(n), nil
}
