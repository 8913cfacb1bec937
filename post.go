package feed

import (
	"errors"
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/xid"
)

const MaxContentLength = 200

var (
	ErrEmptyContent   = errors.New("post content cannot be empty")
	ErrContentTooLong = errors.New("post content cannot be more than 200 characters")
	ErrUnchanged      = errors.New("post content is unchanged")
	ErrEmptyComment   = errors.New("comment cannot be empty")
	ErrPostNotFound   = errors.New("post not found")
	ErrInvalidID      = errors.New("invalid post id")
)

type PostID string

type CommentID string

type Post struct {
	ID        PostID
	Content   string
	Timestamp time.Time
	Likes     int
	Liked     bool
	Comments  []Comment
}

type Comment struct {
	ID       CommentID
	Username string
	Content  string
}

// NewPost trims content and returns a post with no likes and no comments.
// The caller assigns the id.
func NewPost(content string, now time.Time) (*Post, error) {
	c, err := validContent(content)
	if err != nil {
		return nil, err
	}
	return &Post{Content: c, Timestamp: now, Comments: []Comment{}}, nil
}

func NewComment(username, text string) (*Comment, error) {
	t := strings.TrimSpace(normalizeNewlines(text))
	if t == "" {
		return nil, ErrEmptyComment
	}
	return &Comment{ID: CommentID(xid.New().String()), Username: username, Content: t}, nil
}

func (p *Post) Edit(content string) error {
	c, err := validContent(content)
	if err != nil {
		return err
	}
	if c == p.Content {
		return ErrUnchanged
	}
	p.Content = c
	return nil
}

func (p *Post) ToggleLike() {
	if p.Liked {
		p.Likes--
	} else {
		p.Likes++
	}
	p.Liked = !p.Liked
}

func (p Post) Formatted() template.HTML {
	return FormatText(p.Content)
}

func (c Comment) Formatted() template.HTML {
	return FormatText(c.Content)
}

func (p *Post) clone() Post {
	cp := *p
	cp.Comments = make([]Comment, len(p.Comments))
	copy(cp.Comments, p.Comments)
	return cp
}

func validContent(content string) (string, error) {
	c := strings.TrimSpace(normalizeNewlines(content))
	if c == "" {
		return "", ErrEmptyContent
	}
	if utf8.RuneCountInString(c) > MaxContentLength {
		return "", ErrContentTooLong
	}
	return c, nil
}

// normalizeNewlines turns the CRLF pairs browsers submit into a single \n.
func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func nextID() PostID {
	return PostID(xid.New().String())
}

//IsValidID checks if a given id is valid based on the xid library definition of a valid id
func IsValidID(id string) bool {
	if _, err := xid.FromString(id); err != nil {
		return false
	}
	return true
}
