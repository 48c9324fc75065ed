package feed

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"yatube/models"
)

// Source supplies the full ordered post list of a feed, newest first
type Source interface {
	Posts(ctx context.Context, key Key) ([]models.Post, error)
}

// MemorySource keeps posts in process memory, ordered newest first
type MemorySource struct {
	mu      sync.RWMutex
	posts   []models.Post
	groups  map[string]bool
	authors map[string]bool
}

func NewMemorySource() *MemorySource {
	return &MemorySource{
		groups:  map[string]bool{},
		authors: map[string]bool{},
	}
}

func (s *MemorySource) AddGroup(slug string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups[slug] = true
}

func (s *MemorySource) AddAuthor(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authors[username] = true
}

// Put inserts the post, or replaces the stored post with the same ID
func (s *MemorySource) Put(p models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authors[p.User.Username] = true
	if p.Group != nil {
		s.groups[p.Group.Slug] = true
	}
	replaced := false
	for i := range s.posts {
		if s.posts[i].ID == p.ID {
			s.posts[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		s.posts = append(s.posts, p)
	}
	sort.SliceStable(s.posts, func(i, j int) bool {
		return newerThan(&s.posts[i], &s.posts[j])
	})
}

func (s *MemorySource) Posts(_ context.Context, key Key) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if slug, ok := key.Group(); ok && !s.groups[slug] {
		return nil, fmt.Errorf("%w: group %q", ErrNotFound, slug)
	}
	if username, ok := key.Author(); ok && !s.authors[username] {
		return nil, fmt.Errorf("%w: author %q", ErrNotFound, username)
	}
	result := []models.Post{}
	for i := range s.posts {
		if key.Match(&s.posts[i]) {
			result = append(result, s.posts[i])
		}
	}
	return result, nil
}

func newerThan(a, b *models.Post) bool {
	if a.CreatedAt != b.CreatedAt {
		return a.CreatedAt > b.CreatedAt
	}
	return a.ID > b.ID
}
