package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/light-bringer/procat-orm/internal/pkg/crud"
)

var ErrPostNotFound = errors.New("post not found")

// Field names for change tracking
const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldWriter  = "writer"
)

// Post is a board post. Like Product, its identity and timestamps come from
// the persistence engine; an empty id marks a post that was never saved.
type Post struct {
	id         string
	title      string
	content    string
	writer     string
	createDate time.Time
	updateDate time.Time

	changes *crud.ChangeTracker
}

// Option sets one field of a new Post.
type Option func(*Post)

func WithTitle(title string) Option {
	return func(p *Post) {
		p.title = title
		p.changes.MarkDirty(FieldTitle)
	}
}

func WithContent(content string) Option {
	return func(p *Post) {
		p.content = content
		p.changes.MarkDirty(FieldContent)
	}
}

func WithWriter(writer string) Option {
	return func(p *Post) {
		p.writer = writer
		p.changes.MarkDirty(FieldWriter)
	}
}

// NewPost builds a transient post from any subset of options.
func NewPost(opts ...Option) *Post {
	p := &Post{changes: crud.NewChangeTracker()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ReconstructPost reconstitutes a stored post (for repositories).
func ReconstructPost(id, title, content, writer string, createDate, updateDate time.Time) *Post {
	return &Post{
		id:         id,
		title:      title,
		content:    content,
		writer:     writer,
		createDate: createDate,
		updateDate: updateDate,
		changes:    crud.NewChangeTracker(),
	}
}

func (p *Post) ID() string                   { return p.id }
func (p *Post) Title() string                { return p.title }
func (p *Post) Content() string              { return p.content }
func (p *Post) Writer() string               { return p.writer }
func (p *Post) CreateDate() time.Time        { return p.createDate }
func (p *Post) UpdateDate() time.Time        { return p.updateDate }
func (p *Post) Changes() *crud.ChangeTracker { return p.changes }
func (p *Post) IsNew() bool                  { return p.id == "" }

func (p *Post) SetTitle(title string) {
	p.title = title
	p.changes.MarkDirty(FieldTitle)
}

func (p *Post) SetContent(content string) {
	p.content = content
	p.changes.MarkDirty(FieldContent)
}

func (p *Post) SetWriter(writer string) {
	p.writer = writer
	p.changes.MarkDirty(FieldWriter)
}

// Equal reports whether every field of p and other is equal.
func (p *Post) Equal(other *Post) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.id == other.id &&
		p.title == other.title &&
		p.content == other.content &&
		p.writer == other.writer &&
		p.createDate.Equal(other.createDate) &&
		p.updateDate.Equal(other.updateDate)
}

func (p *Post) String() string {
	return fmt.Sprintf("Post(id=%s, title=%s, content=%s, writer=%s, createDate=%s, updateDate=%s)",
		p.id, p.title, p.content, p.writer, formatTime(p.createDate), formatTime(p.updateDate))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "null"
	}
	return t.Format(time.RFC3339Nano)
}
