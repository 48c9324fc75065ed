package models

import (
	"errors"
	"strings"
	"time"
	"yatube/db"

	"gorm.io/gorm"
)

type Post struct {
	ID        uint64  `gorm:"primaryKey"`
	CreatedAt int64   `gorm:"autoCreateTime:nano;index"`
	UpdatedAt int64
	UserID    uint64  `gorm:"index"`
	User      User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID   *uint64 `gorm:"index"`
	Group     *Group  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Text      string  `gorm:"type:text"`
	Image     string  `gorm:"type:varchar(300)"` // Storage path, empty when there is no image
}

var (
	ErrEmptyText    = errors.New("text is required")
	ErrUnknownGroup = errors.New("group does not exist")
	ErrNotAuthor    = errors.New("only the author can edit a post")
)

// PostCreate stores a new post. groupID == 0 means no group
func PostCreate(author *User, text string, groupID uint64, image string) (p Post, err error) {
	p = Post{
		UserID: author.ID,
		User:   *author,
		Image:  image,
	}
	if err = p.setContent(text, groupID); err != nil {
		return p, err
	}
	return p, db.Instance.Omit("User", "Group").Create(&p).Error
}

// Update changes text, group and (when not empty) image. Only the author may edit
func (p *Post) Update(editorID uint64, text string, groupID uint64, image string) error {
	if editorID != p.UserID {
		return ErrNotAuthor
	}
	if err := p.setContent(text, groupID); err != nil {
		return err
	}
	if image != "" {
		p.Image = image
	}
	return db.Instance.Model(p).Select("text", "group_id", "image", "updated_at").Updates(map[string]interface{}{
		"text":       p.Text,
		"group_id":   p.GroupID,
		"image":      p.Image,
		"updated_at": time.Now().Unix(),
	}).Error
}

func (p *Post) setContent(text string, groupID uint64) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}
	p.Text = text
	p.GroupID = nil
	p.Group = nil
	if groupID == 0 {
		return nil
	}
	group := Group{}
	if err := db.Instance.First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownGroup
		}
		return err
	}
	p.GroupID = &group.ID
	p.Group = &group
	return nil
}

func PostByID(id uint64) (p Post, err error) {
	err = db.Instance.Preload("User").Preload("Group").First(&p, id).Error
	return
}

func (p *Post) Created() time.Time {
	return time.Unix(0, p.CreatedAt)
}

// GroupSlug returns an empty string for posts without a group
func (p *Post) GroupSlug() string {
	if p.Group == nil {
		return ""
	}
	return p.Group.Slug
}
