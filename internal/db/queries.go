// Package db contains query helpers for the Campus Connect schema.
package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// nowUnix returns the current Unix timestamp in seconds.
func nowUnix() int64 { return time.Now().Unix() }

// GetConfig fetches a single config key from the database.
// The boolean indicates whether the key exists.
func (d *DB) GetConfig(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := d.sql.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&v)
	if err == nil {
		return v, true, nil
	}
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	return "", false, err
}

// SetConfig upserts a config key/value pair and updates its timestamp.
func (d *DB) SetConfig(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("config key is required")
	}
	_, err := d.sql.ExecContext(ctx, `
INSERT INTO config(key, value, updated_at) VALUES(?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value, nowUnix())
	return err
}

// IsInitialized reports whether setup has completed.
func (d *DB) IsInitialized(ctx context.Context) (bool, error) {
	v, ok, err := d.GetConfig(ctx, "initialized")
	if err != nil {
		return false, err
	}
	return ok && v == "1", nil
}

// SetInitialized marks the database as setup-complete.
func (d *DB) SetInitialized(ctx context.Context) error {
	return d.SetConfig(ctx, "initialized", "1")
}

// GetNotesDir returns the notes directory recorded by setup.
func (d *DB) GetNotesDir(ctx context.Context) (string, bool, error) {
	return d.GetConfig(ctx, "notes_dir")
}

// SetNotesDir records the notes directory used for uploaded files.
func (d *DB) SetNotesDir(ctx context.Context, dir string) error {
	return d.SetConfig(ctx, "notes_dir", dir)
}

// CreateAccount inserts a new account and returns it. The username UNIQUE
// constraint makes the insert atomic: a duplicate fails without touching
// prior state, and the failure satisfies IsUniqueViolation.
func (d *DB) CreateAccount(ctx context.Context, username, passwordHash string) (*Account, error) {
	if username == "" || passwordHash == "" {
		return nil, errors.New("username and password hash are required")
	}
	now := nowUnix()
	res, err := d.sql.ExecContext(ctx, `
INSERT INTO accounts(username, password_hash, created_at) VALUES(?, ?, ?)
`, username, passwordHash, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Account{ID: id, Username: username, PasswordHash: passwordHash, CreatedAt: now}, nil
}

// GetAccountByUsername looks up an account by its exact username.
func (d *DB) GetAccountByUsername(ctx context.Context, username string) (*Account, bool, error) {
	var a Account
	err := d.sql.QueryRowContext(ctx, `
SELECT id, username, password_hash, created_at FROM accounts WHERE username=?
`, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err == nil {
		return &a, true, nil
	}
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	return nil, false, err
}

// GetAccountByID looks up an account by ID.
func (d *DB) GetAccountByID(ctx context.Context, id int64) (*Account, bool, error) {
	var a Account
	err := d.sql.QueryRowContext(ctx, `
SELECT id, username, password_hash, created_at FROM accounts WHERE id=?
`, id).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err == nil {
		return &a, true, nil
	}
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	return nil, false, err
}

// InsertNote stores a note. Content may be empty when file is set and vice
// versa; the schema rejects a note with neither. The timestamp is generated
// here, never taken from the caller.
func (d *DB) InsertNote(ctx context.Context, accountID int64, subject, topic, content string, file *StoredFile) (*Note, error) {
	if accountID <= 0 {
		return nil, errors.New("invalid account id")
	}
	if subject == "" || topic == "" {
		return nil, errors.New("subject and topic are required")
	}
	if content == "" && file == nil {
		return nil, errors.New("note needs content or a file")
	}

	now := nowUnix()
	var contentCol, origCol, nameCol, pathCol any
	if content != "" {
		contentCol = content
	}
	if file != nil {
		origCol = file.OriginalName
		nameCol = file.StoredName
		pathCol = file.StoredPath
	}
	res, err := d.sql.ExecContext(ctx, `
INSERT INTO notes(account_id, subject, topic, content, file_original_name, file_name, file_path, created_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, accountID, subject, topic, contentCol, origCol, nameCol, pathCol, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	n := &Note{ID: id, AccountID: accountID, Subject: subject, Topic: topic, Content: content, CreatedAt: now}
	if file != nil {
		f := *file
		n.File = &f
	}
	return n, nil
}

// SearchMode selects which note fields a keyword search inspects.
type SearchMode int

const (
	// SearchContent matches the keyword against inline note content.
	SearchContent SearchMode = iota
	// SearchSubjectTopic matches the keyword against subject or topic.
	SearchSubjectTopic
)

// SearchNotes returns every note whose searched field contains keyword as a
// case-insensitive substring, in insertion order. The result is a finite
// snapshot; no matches yields an empty slice.
func (d *DB) SearchNotes(ctx context.Context, keyword string, mode SearchMode) ([]Note, error) {
	if keyword == "" {
		return nil, errors.New("keyword is required")
	}

	// LIKE is case-insensitive for ASCII in SQLite. Wildcards in the
	// keyword are escaped so it always matches literally.
	pat := "%" + escapeLike(keyword) + "%"
	var where string
	args := []any{pat}
	switch mode {
	case SearchContent:
		where = `content LIKE ? ESCAPE '\'`
	case SearchSubjectTopic:
		where = `subject LIKE ? ESCAPE '\' OR topic LIKE ? ESCAPE '\'`
		args = append(args, pat)
	default:
		return nil, errors.New("unknown search mode")
	}

	rows, err := d.sql.QueryContext(ctx, `
SELECT id, account_id, subject, topic, content, file_original_name, file_name, file_path, created_at
FROM notes WHERE `+where+` ORDER BY id ASC
`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func scanNote(rows *sql.Rows) (Note, error) {
	var n Note
	var content, orig, name, path sql.NullString
	if err := rows.Scan(&n.ID, &n.AccountID, &n.Subject, &n.Topic, &content, &orig, &name, &path, &n.CreatedAt); err != nil {
		return Note{}, err
	}
	n.Content = content.String
	if name.Valid {
		n.File = &StoredFile{OriginalName: orig.String, StoredName: name.String, StoredPath: path.String}
	}
	return n, nil
}

// escapeLike escapes LIKE wildcards so keyword matches are literal.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// InsertDoubt stores a question on the doubt board.
func (d *DB) InsertDoubt(ctx context.Context, accountID int64, subject, question string) (*Doubt, error) {
	if accountID <= 0 {
		return nil, errors.New("invalid account id")
	}
	if subject == "" || question == "" {
		return nil, errors.New("subject and question are required")
	}
	now := nowUnix()
	res, err := d.sql.ExecContext(ctx, `
INSERT INTO doubts(account_id, subject, question, created_at) VALUES(?, ?, ?, ?)
`, accountID, subject, question, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Doubt{ID: id, AccountID: accountID, Subject: subject, Question: question, CreatedAt: now}, nil
}

// ListDoubts returns all doubts joined with the author's username, newest
// first. The id tiebreak keeps same-second posts in posting order.
func (d *DB) ListDoubts(ctx context.Context) ([]DoubtEntry, error) {
	rows, err := d.sql.QueryContext(ctx, `
SELECT d.id, d.account_id, d.subject, d.question, d.created_at, a.username
FROM doubts d JOIN accounts a ON d.account_id = a.id
ORDER BY d.created_at DESC, d.id DESC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DoubtEntry{}
	for rows.Next() {
		var e DoubtEntry
		if err := rows.Scan(&e.ID, &e.AccountID, &e.Subject, &e.Question, &e.CreatedAt, &e.Author); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
