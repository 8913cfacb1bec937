package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/xid"
)

const DefaultStorageKey = "posts"

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrCorruptFeed = errors.New("stored feed is corrupt")
)

// KeyValueStore is the local key/value storage the feed blob is written to.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Adapter serializes the whole feed to a single value under one key.
type Adapter struct {
	kv  KeyValueStore
	key string
}

type storedComment struct {
	ID       CommentID `json:"id,omitempty"`
	Username string    `json:"username"`
	Content  string    `json:"content"`
}

type storedPost struct {
	ID        PostID          `json:"id,omitempty"`
	Content   string          `json:"content"`
	Likes     string          `json:"likes"`
	Liked     bool            `json:"liked"`
	Comments  []storedComment `json:"comments"`
	Timestamp string          `json:"timestamp"`
}

func NewAdapter(kv KeyValueStore) *Adapter {
	return NewAdapterWithKey(kv, DefaultStorageKey)
}

func NewAdapterWithKey(kv KeyValueStore, key string) *Adapter {
	if key == "" {
		key = DefaultStorageKey
	}
	return &Adapter{kv: kv, key: key}
}

func (a *Adapter) Save(ctx context.Context, posts []Post) error {
	blob, err := encodeFeed(posts)
	if err != nil {
		return err
	}
	if err := a.kv.Set(ctx, a.key, blob); err != nil {
		return fmt.Errorf("error saving feed: %w", err)
	}
	return nil
}

// Load returns the stored posts in stored order. A missing key is an empty
// feed; an unreadable blob is an empty feed plus ErrCorruptFeed.
func (a *Adapter) Load(ctx context.Context) ([]Post, error) {
	blob, err := a.kv.Get(ctx, a.key)
	if errors.Is(err, ErrKeyNotFound) {
		return []Post{}, nil
	}
	if err != nil {
		return []Post{}, fmt.Errorf("error loading feed: %w", err)
	}

	posts, err := decodeFeed(blob)
	if err != nil {
		return []Post{}, fmt.Errorf("%w: %s", ErrCorruptFeed, err)
	}
	return posts, nil
}

func (a *Adapter) Close() error {
	return a.kv.Close()
}

func encodeFeed(posts []Post) (string, error) {
	sp := make([]storedPost, 0, len(posts))
	for _, p := range posts {
		comments := make([]storedComment, 0, len(p.Comments))
		for _, c := range p.Comments {
			comments = append(comments, storedComment{ID: c.ID, Username: c.Username, Content: c.Content})
		}
		sp = append(sp, storedPost{
			ID:        p.ID,
			Content:   p.Content,
			Likes:     strconv.Itoa(p.Likes),
			Liked:     p.Liked,
			Comments:  comments,
			Timestamp: p.Timestamp.Format(time.RFC3339Nano),
		})
	}

	b, err := json.Marshal(sp)
	if err != nil {
		return "", fmt.Errorf("error encoding feed: %w", err)
	}
	return string(b), nil
}

func decodeFeed(blob string) ([]Post, error) {
	var sp []storedPost
	if err := json.Unmarshal([]byte(blob), &sp); err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(sp))
	seen := map[PostID]bool{}
	for i, s := range sp {
		likes, err := strconv.Atoi(s.Likes)
		if err != nil {
			return nil, fmt.Errorf("post %d: likes %q", i, s.Likes)
		}
		if likes < 0 {
			return nil, fmt.Errorf("post %d: negative likes", i)
		}
		if strings.TrimSpace(s.Content) == "" {
			return nil, fmt.Errorf("post %d: empty content", i)
		}
		ts, err := time.Parse(time.RFC3339Nano, s.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("post %d: timestamp %q", i, s.Timestamp)
		}

		p := Post{
			ID:        s.ID,
			Content:   s.Content,
			Timestamp: ts,
			Likes:     likes,
			Liked:     s.Liked && likes > 0,
			Comments:  make([]Comment, 0, len(s.Comments)),
		}
		// ids must be unique for find to reach every post
		if !IsValidID(string(p.ID)) || seen[p.ID] {
			p.ID = nextID()
		}
		seen[p.ID] = true

		seenComments := map[CommentID]bool{}
		for _, c := range s.Comments {
			id := c.ID
			if id == "" || seenComments[id] {
				id = CommentID(xid.New().String())
			}
			seenComments[id] = true
			p.Comments = append(p.Comments, Comment{ID: id, Username: c.Username, Content: c.Content})
		}
		posts = append(posts, p)
	}
	return posts, nil
}
