// Package db defines persistence models for Campus Connect.
package db

// Account is a registered user. Accounts are created by registration and
// never updated or deleted afterwards.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    int64
}

// BodyKind tags what a note carries: inline text, a stored file, or both.
type BodyKind int

const (
	BodyInline BodyKind = iota
	BodyFileRef
	BodyBoth
)

// StoredFile describes an uploaded file copied into the notes directory.
// StoredName may carry a numeric suffix when the original name collided.
type StoredFile struct {
	OriginalName string
	StoredName   string
	StoredPath   string
}

// Note is a stored unit of study material. Content and File follow the
// tagged union reported by Kind: at least one of them is always present.
type Note struct {
	ID        int64
	AccountID int64
	Subject   string
	Topic     string
	Content   string
	File      *StoredFile
	CreatedAt int64
}

// Kind reports which body variant the note carries.
func (n *Note) Kind() BodyKind {
	switch {
	case n.Content != "" && n.File != nil:
		return BodyBoth
	case n.File != nil:
		return BodyFileRef
	default:
		return BodyInline
	}
}

// Doubt is a question posted to the shared board.
type Doubt struct {
	ID        int64
	AccountID int64
	Subject   string
	Question  string
	CreatedAt int64
}

// DoubtEntry is a doubt joined with its author's username for display.
type DoubtEntry struct {
	Doubt
	Author string
}
