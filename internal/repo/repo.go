// Package repo implements the repository facade: the single entry point the
// presentation layer calls for accounts, notes, and the doubt board. It owns
// the storage handle for the process lifetime and sequences multi-step
// operations so they are all-or-nothing.
package repo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"campusconnect/internal/auth"
	"campusconnect/internal/db"
	"campusconnect/internal/fileplace"
	"campusconnect/internal/validate"
)

// Session identifies an authenticated account. The presentation layer holds
// one after a successful Authenticate and passes it to write operations; its
// account id is never taken from user input.
type Session struct {
	AccountID int64
	Username  string
}

// Options configures a Repository. DB and NotesDir are required.
type Options struct {
	DB       *db.DB
	NotesDir string
	Files    *fileplace.Service
	Logger   *slog.Logger
}

// Repository is the facade over the credential store, note repository,
// doubt board, and file placement service.
type Repository struct {
	db       *db.DB
	files    *fileplace.Service
	notesDir string
	lg       *slog.Logger
}

// New builds a Repository. The caller keeps ownership of the DB handle and
// closes it at shutdown.
func New(opt Options) (*Repository, error) {
	if opt.DB == nil {
		return nil, fmt.Errorf("db handle is required")
	}
	if opt.NotesDir == "" {
		return nil, fmt.Errorf("notes directory is required")
	}
	files := opt.Files
	if files == nil {
		files = fileplace.New()
	}
	lg := opt.Logger
	if lg == nil {
		lg = slog.Default()
	}
	return &Repository{db: opt.DB, files: files, notesDir: opt.NotesDir, lg: lg}, nil
}

// Register creates an account. The password is digested before storage and
// never logged. A taken username yields ErrDuplicateUsername with no state
// change.
func (r *Repository) Register(ctx context.Context, username, password string) (*db.Account, error) {
	if err := validate.Required("username", username); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := validate.Required("password", password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	a, err := r.db.CreateAccount(ctx, username, auth.HashPassword(password))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUsername, username)
		}
		return nil, err
	}
	r.lg.Info("account registered", "username", username, "id", a.ID)
	return a, nil
}

// Authenticate verifies a username/password pair. A mismatch is a
// legitimate outcome, not an error: it returns (nil, false, nil).
func (r *Repository) Authenticate(ctx context.Context, username, password string) (*Session, bool, error) {
	a, ok, err := r.db.GetAccountByUsername(ctx, username)
	if err != nil {
		return nil, false, err
	}
	if !ok || !auth.VerifyPassword(password, a.PasswordHash) {
		return nil, false, nil
	}
	r.lg.Debug("login", "username", username)
	return &Session{AccountID: a.ID, Username: a.Username}, true, nil
}

// UploadNote stores a note owned by the session's account. At least one of
// content and sourcePath must be given. When a file is attached it is placed
// first; the note row is only inserted after a successful placement, and a
// failed insert removes the placed copy so the operation is all-or-nothing.
func (r *Repository) UploadNote(ctx context.Context, s *Session, subject, topic, content, sourcePath string) (*db.Note, error) {
	if s == nil {
		return nil, ErrNotAuthenticated
	}
	if err := validate.Required("subject", subject); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := validate.Required("topic", topic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if strings.TrimSpace(content) == "" && sourcePath == "" {
		return nil, fmt.Errorf("%w: note needs content or a file", ErrValidation)
	}

	var stored *db.StoredFile
	if sourcePath != "" {
		placed, err := r.files.Place(sourcePath, r.notesDir)
		if err != nil {
			return nil, err
		}
		stored = &db.StoredFile{
			OriginalName: placed.OriginalName,
			StoredName:   placed.StoredName,
			StoredPath:   placed.StoredPath,
		}
	}

	n, err := r.db.InsertNote(ctx, s.AccountID, subject, topic, content, stored)
	if err != nil {
		if stored != nil {
			// No orphan file for a note that was never created.
			if rmErr := r.files.Remove(stored.StoredPath); rmErr != nil {
				r.lg.Warn("could not remove placed file after failed insert", "path", stored.StoredPath, "err", rmErr)
			}
		}
		return nil, err
	}
	r.lg.Info("note uploaded", "id", n.ID, "subject", subject, "topic", topic, "has_file", stored != nil)
	return n, nil
}

// SearchNotes returns a fresh snapshot of notes whose searched field
// contains keyword as a case-insensitive substring, oldest first.
func (r *Repository) SearchNotes(ctx context.Context, keyword string, mode db.SearchMode) ([]db.Note, error) {
	if err := validate.Required("keyword", keyword); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return r.db.SearchNotes(ctx, keyword, mode)
}

// PostDoubt stores a question on the doubt board.
func (r *Repository) PostDoubt(ctx context.Context, s *Session, subject, question string) (*db.Doubt, error) {
	if s == nil {
		return nil, ErrNotAuthenticated
	}
	if err := validate.Required("subject", subject); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := validate.Required("question", question); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	d, err := r.db.InsertDoubt(ctx, s.AccountID, subject, question)
	if err != nil {
		return nil, err
	}
	r.lg.Info("doubt posted", "id", d.ID, "subject", subject)
	return d, nil
}

// ListDoubts returns all doubts with their author's username, newest first.
// It never mutates state and returns an empty slice when the board is empty.
func (r *Repository) ListDoubts(ctx context.Context) ([]db.DoubtEntry, error) {
	return r.db.ListDoubts(ctx)
}
