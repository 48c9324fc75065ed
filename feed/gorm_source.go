package feed

import (
	"context"
	"errors"
	"fmt"
	"yatube/models"

	"gorm.io/gorm"
)

// GormSource reads feeds from the posts table
type GormSource struct {
	DB *gorm.DB
}

func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{DB: db}
}

func (s *GormSource) Posts(ctx context.Context, key Key) ([]models.Post, error) {
	tx := s.DB.WithContext(ctx).
		Preload("User").
		Preload("Group").
		Order("created_at DESC, id DESC")

	if slug, ok := key.Group(); ok {
		group := models.Group{}
		if err := s.DB.WithContext(ctx).First(&group, "slug = ?", slug).Error; err != nil {
			return nil, notFound(err, "group", slug)
		}
		tx = tx.Where("group_id = ?", group.ID)
	} else if username, ok := key.Author(); ok {
		user := models.User{}
		if err := s.DB.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
			return nil, notFound(err, "author", username)
		}
		tx = tx.Where("user_id = ?", user.ID)
	} else if key != Global {
		return nil, fmt.Errorf("%w: bad feed key %q", ErrInvalidArgument, key)
	}

	posts := []models.Post{}
	if err := tx.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func notFound(err error, kind, name string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %q", ErrNotFound, kind, name)
	}
	return err
}
