// Package ui tests drive the model through its message loop against a real
// repository.
package ui

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"campusconnect/internal/db"
	"campusconnect/internal/repo"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	ctx := context.Background()
	d, err := db.Open(ctx, filepath.Join(t.TempDir(), "campus.db"))
	if err != nil {
		t.Fatalf("db.Open: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	r, err := repo.New(repo.Options{
		DB:       d,
		NotesDir: t.TempDir(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("repo.New: %v", err)
	}
	if _, err := r.Register(ctx, "alice", "pw"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	s, ok, err := r.Authenticate(ctx, "alice", "pw")
	if err != nil || !ok {
		t.Fatalf("Authenticate: ok=%v err=%v", ok, err)
	}

	m := New(r)
	m.session = s
	return m
}

// TestPostDoubtRefreshesBoard posts a doubt through the message loop and
// expects the follow-up refresh to already contain it, newest first.
func TestPostDoubtRefreshesBoard(t *testing.T) {
	m := newTestModel(t)
	m.st = statePostDoubt
	m.doubtSubject.SetValue("Math")
	m.doubtQuestion.SetValue("What is a limit?")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(Model)
	if m.st != stateDoubts {
		t.Fatalf("expected doubts screen after enter, got state %d", m.st)
	}
	if cmd == nil {
		t.Fatalf("expected a post command")
	}

	// The post command completes before any refresh is issued.
	msg := cmd()
	if _, ok := msg.(doubtPostedMsg); !ok {
		t.Fatalf("expected doubtPostedMsg, got %T: %v", msg, msg)
	}

	model, refresh := m.Update(msg)
	m = model.(Model)
	if refresh == nil {
		t.Fatalf("expected a refresh command after the post")
	}
	entries, ok := refresh().(doubtsMsg)
	if !ok {
		t.Fatalf("expected doubtsMsg from refresh")
	}
	if len(entries) != 1 {
		t.Fatalf("expected the new doubt on the board, got %d entries", len(entries))
	}
	if entries[0].Subject != "Math" || entries[0].Author != "alice" {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}

	model, _ = m.Update(refresh())
	m = model.(Model)
	if len(m.doubtLst.Items()) != 1 {
		t.Fatalf("expected board list to render 1 item, got %d", len(m.doubtLst.Items()))
	}
}
