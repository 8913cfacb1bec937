package feed

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const DefaultUsername = "User Name"

// Store is the authoritative in-memory feed. Every successful mutation is
// followed by a save of the whole feed through the adapter.
type Store struct {
	mu          sync.Mutex
	posts       []*Post
	adapter     *Adapter
	logger      *zap.SugaredLogger
	now         func() time.Time
	username    string
	saveTimeout time.Duration
}

type Option func(*Store)

func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithUsername(username string) Option {
	return func(s *Store) {
		if username != "" {
			s.username = username
		}
	}
}

func WithSaveTimeout(d time.Duration) Option {
	return func(s *Store) { s.saveTimeout = d }
}

// NewStore loads the persisted feed once. A missing or corrupt blob leaves
// the store empty.
func NewStore(adapter *Adapter, opts ...Option) *Store {
	s := &Store{
		adapter:     adapter,
		logger:      zap.NewNop().Sugar(),
		now:         time.Now,
		username:    DefaultUsername,
		saveTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	defer cancel()

	posts, err := adapter.Load(ctx)
	if err != nil {
		s.logger.Warnw("starting with an empty feed", "error", err)
	}
	s.posts = make([]*Post, 0, len(posts))
	for i := range posts {
		s.posts = append(s.posts, &posts[i])
	}
	return s
}

func (s *Store) Username() string {
	return s.username
}

func (s *Store) CreatePost(content string) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := NewPost(content, s.now())
	if err != nil {
		return Post{}, err
	}
	p.ID = nextID()

	s.posts = append([]*Post{p}, s.posts...)
	s.save()
	return p.clone(), nil
}

func (s *Store) EditPost(id PostID, content string) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, _, err := s.find(id)
	if err != nil {
		return Post{}, err
	}
	if err := p.Edit(content); err != nil {
		return Post{}, err
	}

	s.save()
	return p.clone(), nil
}

// DeletePost removes the post and its comments once c confirms. A nil
// confirmer declines.
func (s *Store) DeletePost(id PostID, c Confirmer) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, i, err := s.find(id)
	if err != nil {
		return false, err
	}
	if c == nil || !c.Confirm(DeletePrompt) {
		return false, nil
	}

	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	s.save()
	return true, nil
}

func (s *Store) ToggleLike(id PostID) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, _, err := s.find(id)
	if err != nil {
		return Post{}, err
	}
	p.ToggleLike()

	s.save()
	return p.clone(), nil
}

func (s *Store) AddComment(id PostID, text string) (Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, _, err := s.find(id)
	if err != nil {
		return Comment{}, err
	}
	c, err := NewComment(s.username, text)
	if err != nil {
		return Comment{}, err
	}
	p.Comments = append(p.Comments, *c)

	s.save()
	return *c, nil
}

// Posts returns copies of all posts, newest first.
func (s *Store) Posts() []Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) Post(id PostID) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, _, err := s.find(id)
	if err != nil {
		return Post{}, err
	}
	return p.clone(), nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

func (s *Store) find(id PostID) (*Post, int, error) {
	for i, p := range s.posts {
		if p.ID == id {
			return p, i, nil
		}
	}
	return nil, -1, ErrPostNotFound
}

func (s *Store) snapshot() []Post {
	posts := make([]Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, p.clone())
	}
	return posts
}

// save must be called with mu held.
func (s *Store) save() {
	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	defer cancel()

	if err := s.adapter.Save(ctx, s.snapshot()); err != nil {
		s.logger.Errorw("error persisting feed", "error", err, "posts", len(s.posts))
	}
}
