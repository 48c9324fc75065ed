package models

import (
	"strings"
	"time"
	"yatube/db"
)

type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"autoCreateTime:nano;index:post_order,priority:2"`
	PostID    uint64 `gorm:"index:post_order,priority:1"`
	Post      Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID    uint64
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Text      string `gorm:"type:text"`
}

func CommentCreate(post *Post, author *User, text string) (c Comment, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return c, ErrEmptyText
	}
	c = Comment{
		PostID: post.ID,
		UserID: author.ID,
		User:   *author,
		Text:   text,
	}
	return c, db.Instance.Omit("User", "Post").Create(&c).Error
}

// PostComments returns the comments of a post, oldest first
func PostComments(postID uint64) (comments []Comment, err error) {
	err = db.Instance.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return
}

func (c *Comment) Created() time.Time {
	return time.Unix(0, c.CreatedAt)
}
