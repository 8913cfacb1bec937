package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPost(t *testing.T) {
	now := time.Now()
	max := strings.Repeat("a", MaxContentLength)

	tests := []struct {
		content  string
		wantErr  error
		wantPost *Post
	}{
		{"", ErrEmptyContent, nil},
		{"   \n\t ", ErrEmptyContent, nil},
		{max + "a", ErrContentTooLong, nil},
		{"  hello  ", nil, &Post{Content: "hello", Timestamp: now, Comments: []Comment{}}},
		{"  " + max + "  ", nil, &Post{Content: max, Timestamp: now, Comments: []Comment{}}},
		{strings.Repeat("é", MaxContentLength), nil, &Post{Content: strings.Repeat("é", MaxContentLength), Timestamp: now, Comments: []Comment{}}},
	}

	for _, tt := range tests {
		p, err := NewPost(tt.content, now)
		assert.Equal(t, tt.wantErr, err)
		assert.Equal(t, tt.wantPost, p)
	}
}

func TestNewPost_CRLFIsOneLineBreak(t *testing.T) {
	content := strings.Repeat("a", 100) + "\r\n" + strings.Repeat("b", 99)

	p, err := NewPost(content, time.Now())

	assert.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 100)+"\n"+strings.Repeat("b", 99), p.Content)

	_, err = NewPost(content+"c", time.Now())
	assert.Equal(t, ErrContentTooLong, err)
}

func TestPost_Edit(t *testing.T) {
	tests := []struct {
		content     string
		wantErr     error
		wantContent string
	}{
		{"", ErrEmptyContent, "original"},
		{"   ", ErrEmptyContent, "original"},
		{"original", ErrUnchanged, "original"},
		{"  original ", ErrUnchanged, "original"},
		{strings.Repeat("x", MaxContentLength+1), ErrContentTooLong, "original"},
		{" changed ", nil, "changed"},
	}

	for _, tt := range tests {
		ts := time.Now()
		p := &Post{ID: nextID(), Content: "original", Timestamp: ts, Likes: 3, Liked: true, Comments: []Comment{{Username: "u", Content: "c"}}}

		err := p.Edit(tt.content)

		assert.Equal(t, tt.wantErr, err)
		assert.Equal(t, tt.wantContent, p.Content)
		assert.Equal(t, ts, p.Timestamp)
		assert.Equal(t, 3, p.Likes)
		assert.Len(t, p.Comments, 1)
	}
}

func TestPost_ToggleLikeIsAnInvolution(t *testing.T) {
	p := &Post{Likes: 4}

	p.ToggleLike()
	assert.True(t, p.Liked)
	assert.Equal(t, 5, p.Likes)

	p.ToggleLike()
	assert.False(t, p.Liked)
	assert.Equal(t, 4, p.Likes)
}

func TestNewComment(t *testing.T) {
	c, err := NewComment("User Name", "  ")
	assert.Equal(t, ErrEmptyComment, err)
	assert.Nil(t, c)

	c, err = NewComment("User Name", " nice! ")
	assert.NoError(t, err)
	assert.Equal(t, "User Name", c.Username)
	assert.Equal(t, "nice!", c.Content)
	assert.True(t, IsValidID(string(c.ID)))
}

func TestPost_CloneDoesNotShareComments(t *testing.T) {
	p := &Post{Comments: []Comment{{Content: "a"}}}

	cp := p.clone()
	cp.Comments[0].Content = "b"
	cp.Comments = append(cp.Comments, Comment{Content: "c"})

	assert.Equal(t, "a", p.Comments[0].Content)
	assert.Len(t, p.Comments, 1)
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID(string(nextID())))
	assert.False(t, IsValidID(""))
	assert.False(t, IsValidID("not-an-id"))
}
