package feed

import (
	"fmt"
	"strings"
	"yatube/models"
)

// Key identifies a feed: Global, "group:<slug>" or "author:<username>"
type Key string

const (
	Global Key = "global"

	groupPrefix  = "group:"
	authorPrefix = "author:"
)

func GroupKey(slug string) Key {
	return Key(groupPrefix + slug)
}

func AuthorKey(username string) Key {
	return Key(authorPrefix + username)
}

func ParseKey(s string) (Key, error) {
	k := Key(s)
	if k == Global {
		return k, nil
	}
	if strings.HasPrefix(s, groupPrefix) && len(s) > len(groupPrefix) {
		return k, nil
	}
	if strings.HasPrefix(s, authorPrefix) && len(s) > len(authorPrefix) {
		return k, nil
	}
	return "", fmt.Errorf("%w: bad feed key %q", ErrInvalidArgument, s)
}

// Group returns the group slug for group keys
func (k Key) Group() (string, bool) {
	if !strings.HasPrefix(string(k), groupPrefix) {
		return "", false
	}
	return string(k)[len(groupPrefix):], true
}

// Author returns the username for author keys
func (k Key) Author() (string, bool) {
	if !strings.HasPrefix(string(k), authorPrefix) {
		return "", false
	}
	return string(k)[len(authorPrefix):], true
}

// Match reports whether the post belongs to the feed. Post.User and Post.Group must be loaded
func (k Key) Match(p *models.Post) bool {
	if k == Global {
		return true
	}
	if slug, ok := k.Group(); ok {
		return p.Group != nil && p.Group.Slug == slug
	}
	if username, ok := k.Author(); ok {
		return p.User.Username == username
	}
	return false
}

func (k Key) String() string {
	return string(k)
}
