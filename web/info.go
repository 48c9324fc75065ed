package web

import (
	"yatube/feed"
	"yatube/models"
)

type PostInfo struct {
	ID      uint64 `json:"id"`
	Author  string `json:"author"`
	Group   string `json:"group"`
	Text    string `json:"text"`
	Image   string `json:"image"`
	Created int64  `json:"created"`
}

type PageInfo struct {
	Number      int        `json:"number"`
	TotalPages  int        `json:"total_pages"`
	Count       int        `json:"count"`
	HasNext     bool       `json:"has_next"`
	HasPrevious bool       `json:"has_previous"`
	Posts       []PostInfo `json:"posts"`
}

type GroupInfo struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type CommentInfo struct {
	ID      uint64 `json:"id"`
	Author  string `json:"author"`
	Text    string `json:"text"`
	Created int64  `json:"created"`
}

func NewPostInfo(p *models.Post) PostInfo {
	info := PostInfo{
		ID:      p.ID,
		Author:  p.User.Username,
		Group:   p.GroupSlug(),
		Text:    p.Text,
		Created: p.CreatedAt,
	}
	if p.Image != "" {
		info.Image = "/media/" + p.Image
	}
	return info
}

func NewPageInfo(page *feed.Page) PageInfo {
	info := PageInfo{
		Number:      page.Number,
		TotalPages:  page.TotalPages,
		Count:       page.Count,
		HasNext:     page.HasNext(),
		HasPrevious: page.HasPrevious(),
		Posts:       make([]PostInfo, 0, len(page.Posts)),
	}
	for i := range page.Posts {
		info.Posts = append(info.Posts, NewPostInfo(&page.Posts[i]))
	}
	return info
}

func NewGroupInfo(g *models.Group) GroupInfo {
	return GroupInfo{ID: g.ID, Title: g.Title, Slug: g.Slug, Description: g.Description}
}

func NewCommentInfo(c *models.Comment) CommentInfo {
	return CommentInfo{ID: c.ID, Author: c.User.Username, Text: c.Text, Created: c.CreatedAt}
}
