// Package ui implements the interactive Campus Connect terminal UI using
// Bubble Tea. It contains no repository logic: every action calls the
// facade and renders the returned records.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"campusconnect/internal/db"
	"campusconnect/internal/repo"
)

// state represents the current screen.
type state int

const (
	stateLogin state = iota
	stateHome
	stateUpload
	stateSearch
	stateDoubts
	statePostDoubt
)

// Model holds all UI state.
type Model struct {
	repo *repo.Repository

	st      state
	err     string
	info    string
	session *repo.Session

	username textinput.Model
	password textinput.Model

	subject  textinput.Model
	topic    textinput.Model
	content  textinput.Model
	filePath textinput.Model

	keyword    textinput.Model
	searchMode db.SearchMode
	noteLst    list.Model

	doubtLst      list.Model
	doubtSubject  textinput.Model
	doubtQuestion textinput.Model
}

// New constructs a UI model over the repository facade.
func New(r *repo.Repository) Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.Prompt = "Username: "
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.Prompt = "Password: "

	m := Model{repo: r, st: stateLogin, username: username, password: password}

	m.subject = textinput.New()
	m.subject.Placeholder = "subject"
	m.subject.Prompt = "Subject: "
	m.topic = textinput.New()
	m.topic.Placeholder = "topic"
	m.topic.Prompt = "Topic: "
	m.content = textinput.New()
	m.content.Placeholder = "inline text (optional when a file is given)"
	m.content.Prompt = "Content: "
	m.filePath = textinput.New()
	m.filePath.Placeholder = "/path/to/file.pdf (optional)"
	m.filePath.Prompt = "File: "

	m.keyword = textinput.New()
	m.keyword.Placeholder = "keyword"
	m.keyword.Prompt = "Keyword: "

	noteLst := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	noteLst.Title = "Notes"
	m.noteLst = noteLst

	doubtLst := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	doubtLst.Title = "Doubts"
	m.doubtLst = doubtLst

	m.doubtSubject = textinput.New()
	m.doubtSubject.Placeholder = "subject"
	m.doubtSubject.Prompt = "Subject: "
	m.doubtQuestion = textinput.New()
	m.doubtQuestion.Placeholder = "question"
	m.doubtQuestion.Prompt = "Question: "

	return m
}

// Init returns the initial command for the Bubble Tea runtime.
func (m Model) Init() tea.Cmd {
	return nil
}

type errMsg string
type infoMsg string
type sessionMsg *repo.Session
type notesMsg []db.Note
type doubtsMsg []db.DoubtEntry

// doubtPostedMsg signals a completed post; Update reacts with a board
// refresh so the new doubt is on screen immediately.
type doubtPostedMsg struct{}

// Update routes messages based on UI state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.noteLst.SetSize(msg.Width-4, msg.Height-10)
		m.doubtLst.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	case errMsg:
		m.err = string(msg)
		m.info = ""
		return m, nil
	case infoMsg:
		m.info = string(msg)
		m.err = ""
		return m, nil
	case sessionMsg:
		m.session = msg
		m.err = ""
		m.info = "Welcome, " + m.session.Username + "!"
		m.st = stateHome
		return m, nil
	case notesMsg:
		items := make([]list.Item, 0, len(msg))
		for _, n := range msg {
			items = append(items, noteItem(n))
		}
		m.noteLst.SetItems(items)
		m.err = ""
		if len(msg) == 0 {
			m.info = "No notes found."
		} else {
			m.info = fmt.Sprintf("%d note(s) found.", len(msg))
		}
		return m, nil
	case doubtPostedMsg:
		m.info = "Doubt posted."
		m.err = ""
		return m, refreshDoubtsCmd(m.repo)
	case doubtsMsg:
		items := make([]list.Item, 0, len(msg))
		for _, e := range msg {
			items = append(items, doubtItem(e))
		}
		m.doubtLst.SetItems(items)
		m.err = ""
		return m, nil
	}

	switch m.st {
	case stateLogin:
		return m.updateLogin(msg)
	case stateHome:
		return m.updateHome(msg)
	case stateUpload:
		return m.updateUpload(msg)
	case stateSearch:
		return m.updateSearch(msg)
	case stateDoubts:
		return m.updateDoubts(msg)
	case statePostDoubt:
		return m.updatePostDoubt(msg)
	default:
		return m, nil
	}
}

// View renders the current screen as a string.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString("Campus Connect")
	if m.session != nil {
		b.WriteString(" (" + m.session.Username + ")")
	}
	b.WriteString("\n\n")

	switch m.st {
	case stateLogin:
		b.WriteString("Login\n")
		b.WriteString(m.username.View() + "\n")
		b.WriteString(m.password.View() + "\n\n")
		b.WriteString("Enter=login  ctrl+r=register  esc=quit\n")
	case stateHome:
		b.WriteString("u=upload note  s=search notes  d=doubt board  l=logout  q=quit\n")
	case stateUpload:
		b.WriteString("Upload note\n\n")
		b.WriteString(m.subject.View() + "\n")
		b.WriteString(m.topic.View() + "\n")
		b.WriteString(m.content.View() + "\n")
		b.WriteString(m.filePath.View() + "\n\n")
		b.WriteString("Enter=upload  tab=next field  esc=back\n")
	case stateSearch:
		b.WriteString("Search notes (" + searchModeLabel(m.searchMode) + ")\n\n")
		b.WriteString(m.keyword.View() + "\n\n")
		b.WriteString(m.noteLst.View())
		b.WriteString("\nEnter=search  alt+m=switch mode  esc=back\n")
	case stateDoubts:
		b.WriteString(m.doubtLst.View())
		b.WriteString("\np=post doubt  r=refresh  esc=back\n")
	case statePostDoubt:
		b.WriteString("Post doubt\n\n")
		b.WriteString(m.doubtSubject.View() + "\n")
		b.WriteString(m.doubtQuestion.View() + "\n\n")
		b.WriteString("Enter=post  tab=next field  esc=back\n")
	}

	if m.info != "" {
		b.WriteString("\n" + m.info + "\n")
	}
	if m.err != "" {
		b.WriteString("\nError: " + m.err + "\n")
	}

	return b.String()
}

func searchModeLabel(mode db.SearchMode) string {
	if mode == db.SearchSubjectTopic {
		return "subject/topic"
	}
	return "content"
}

func formatTime(unix int64) string {
	return time.Unix(unix, 0).Format("2006-01-02 15:04:05")
}

type noteItem db.Note

func (n noteItem) Title() string { return n.Subject + " / " + n.Topic }
func (n noteItem) Description() string {
	note := db.Note(n)
	switch note.Kind() {
	case db.BodyFileRef:
		return fmt.Sprintf("file=%s uploaded=%s", note.File.StoredName, formatTime(note.CreatedAt))
	case db.BodyBoth:
		return fmt.Sprintf("%s (file=%s) uploaded=%s", note.Content, note.File.StoredName, formatTime(note.CreatedAt))
	default:
		return fmt.Sprintf("%s uploaded=%s", note.Content, formatTime(note.CreatedAt))
	}
}
func (n noteItem) FilterValue() string { return n.Subject + " " + n.Topic }

type doubtItem db.DoubtEntry

func (d doubtItem) Title() string { return d.Subject + " — by " + d.Author }
func (d doubtItem) Description() string {
	return d.Question + " (" + formatTime(d.CreatedAt) + ")"
}
func (d doubtItem) FilterValue() string { return d.Subject + " " + d.Author }

func loginCmd(r *repo.Repository, username, password string) tea.Cmd {
	return func() tea.Msg {
		s, ok, err := r.Authenticate(context.Background(), username, password)
		if err != nil {
			return errMsg(err.Error())
		}
		if !ok {
			return errMsg("invalid credentials")
		}
		return sessionMsg(s)
	}
}

func registerCmd(r *repo.Repository, username, password string) tea.Cmd {
	return func() tea.Msg {
		if _, err := r.Register(context.Background(), username, password); err != nil {
			return errMsg(err.Error())
		}
		return infoMsg("Registration successful! Press Enter to login.")
	}
}

func uploadCmd(r *repo.Repository, s *repo.Session, subject, topic, content, filePath string) tea.Cmd {
	return func() tea.Msg {
		n, err := r.UploadNote(context.Background(), s, subject, topic, content, filePath)
		if err != nil {
			return errMsg(err.Error())
		}
		if n.File != nil {
			return infoMsg(n.File.StoredName + " uploaded successfully.")
		}
		return infoMsg("Note uploaded!")
	}
}

func searchCmd(r *repo.Repository, keyword string, mode db.SearchMode) tea.Cmd {
	return func() tea.Msg {
		notes, err := r.SearchNotes(context.Background(), keyword, mode)
		if err != nil {
			return errMsg(err.Error())
		}
		return notesMsg(notes)
	}
}

func postDoubtCmd(r *repo.Repository, s *repo.Session, subject, question string) tea.Cmd {
	return func() tea.Msg {
		if _, err := r.PostDoubt(context.Background(), s, subject, question); err != nil {
			return errMsg(err.Error())
		}
		return doubtPostedMsg{}
	}
}

func refreshDoubtsCmd(r *repo.Repository) tea.Cmd {
	return func() tea.Msg {
		entries, err := r.ListDoubts(context.Background())
		if err != nil {
			return errMsg(err.Error())
		}
		return doubtsMsg(entries)
	}
}

// updateLogin handles the login/register screen.
func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			return m, loginCmd(m.repo, m.username.Value(), m.password.Value())
		case "ctrl+r":
			return m, registerCmd(m.repo, m.username.Value(), m.password.Value())
		}
	}

	// Focus order: username -> password.
	var cmd tea.Cmd
	if m.username.Focused() {
		m.username, cmd = m.username.Update(msg)
		if km, ok := msg.(tea.KeyMsg); ok && km.String() == "tab" {
			m.username.Blur()
			m.password.Focus()
		}
		return m, cmd
	}
	m.password, cmd = m.password.Update(msg)
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "tab" {
		m.password.Blur()
		m.username.Focus()
	}
	return m, cmd
}

// updateHome handles the main menu.
func (m Model) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "u":
			m.st = stateUpload
			m.err = ""
			m.info = ""
			m.subject.SetValue("")
			m.topic.SetValue("")
			m.content.SetValue("")
			m.filePath.SetValue("")
			m.subject.Focus()
			return m, nil
		case "s":
			m.st = stateSearch
			m.err = ""
			m.info = ""
			m.keyword.SetValue("")
			m.noteLst.SetItems(nil)
			m.keyword.Focus()
			return m, nil
		case "d":
			m.st = stateDoubts
			m.err = ""
			m.info = ""
			return m, refreshDoubtsCmd(m.repo)
		case "l":
			m.session = nil
			m.st = stateLogin
			m.err = ""
			m.info = ""
			m.username.SetValue("")
			m.password.SetValue("")
			m.password.Blur()
			m.username.Focus()
			return m, nil
		}
	}
	return m, nil
}

// updateUpload handles the note upload form.
func (m Model) updateUpload(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.st = stateHome
			return m, nil
		case "enter":
			cmd := uploadCmd(m.repo, m.session, strings.TrimSpace(m.subject.Value()), strings.TrimSpace(m.topic.Value()), strings.TrimSpace(m.content.Value()), strings.TrimSpace(m.filePath.Value()))
			m.st = stateHome
			return m, cmd
		}
	}

	// Focus order: subject -> topic -> content -> file.
	var cmd tea.Cmd
	tab := false
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "tab" {
		tab = true
	}
	switch {
	case m.subject.Focused():
		m.subject, cmd = m.subject.Update(msg)
		if tab {
			m.subject.Blur()
			m.topic.Focus()
		}
	case m.topic.Focused():
		m.topic, cmd = m.topic.Update(msg)
		if tab {
			m.topic.Blur()
			m.content.Focus()
		}
	case m.content.Focused():
		m.content, cmd = m.content.Update(msg)
		if tab {
			m.content.Blur()
			m.filePath.Focus()
		}
	default:
		m.filePath, cmd = m.filePath.Update(msg)
		if tab {
			m.filePath.Blur()
			m.subject.Focus()
		}
	}
	return m, cmd
}

// updateSearch handles the keyword search screen.
func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.st = stateHome
			m.info = ""
			return m, nil
		case "alt+m":
			if m.searchMode == db.SearchContent {
				m.searchMode = db.SearchSubjectTopic
			} else {
				m.searchMode = db.SearchContent
			}
			return m, nil
		case "enter":
			return m, searchCmd(m.repo, strings.TrimSpace(m.keyword.Value()), m.searchMode)
		}
	}

	var cmd tea.Cmd
	if m.keyword.Focused() {
		m.keyword, cmd = m.keyword.Update(msg)
		if km, ok := msg.(tea.KeyMsg); ok && km.String() == "tab" {
			m.keyword.Blur()
		}
		return m, cmd
	}
	m.noteLst, cmd = m.noteLst.Update(msg)
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "tab" {
		m.keyword.Focus()
	}
	return m, cmd
}

// updateDoubts handles the doubt board list.
func (m Model) updateDoubts(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.st = stateHome
			m.info = ""
			return m, nil
		case "r":
			return m, refreshDoubtsCmd(m.repo)
		case "p":
			m.st = statePostDoubt
			m.err = ""
			m.info = ""
			m.doubtSubject.SetValue("")
			m.doubtQuestion.SetValue("")
			m.doubtSubject.Focus()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.doubtLst, cmd = m.doubtLst.Update(msg)
	return m, cmd
}

// updatePostDoubt handles the doubt posting form.
func (m Model) updatePostDoubt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.st = stateDoubts
			return m, refreshDoubtsCmd(m.repo)
		case "enter":
			cmd := postDoubtCmd(m.repo, m.session, strings.TrimSpace(m.doubtSubject.Value()), strings.TrimSpace(m.doubtQuestion.Value()))
			m.st = stateDoubts
			return m, cmd
		}
	}

	var cmd tea.Cmd
	if m.doubtSubject.Focused() {
		m.doubtSubject, cmd = m.doubtSubject.Update(msg)
		if km, ok := msg.(tea.KeyMsg); ok && km.String() == "tab" {
			m.doubtSubject.Blur()
			m.doubtQuestion.Focus()
		}
		return m, cmd
	}
	m.doubtQuestion, cmd = m.doubtQuestion.Update(msg)
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "tab" {
		m.doubtQuestion.Blur()
		m.doubtSubject.Focus()
	}
	return m, cmd
}
