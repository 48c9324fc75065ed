package feed

import (
	"fmt"
	"yatube/models"
)

// Page is one fixed-size slice of a feed
type Page struct {
	Posts      []models.Post
	Number     int
	Size       int
	Count      int
	TotalPages int
}

// TotalPages is ceil(count / size), 0 for an empty feed
func TotalPages(count, size int) int {
	if count <= 0 || size <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// Slice returns page `page` (1-indexed) of posts. Pages past the end are empty
func Slice(posts []models.Post, page, size int) ([]models.Post, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page number %d", ErrInvalidArgument, page)
	}
	if size < 1 {
		return nil, fmt.Errorf("%w: page size %d", ErrInvalidArgument, size)
	}
	start := (page - 1) * size
	if start >= len(posts) {
		return []models.Post{}, nil
	}
	end := start + size
	if end > len(posts) {
		end = len(posts)
	}
	return posts[start:end], nil
}

func (p *Page) HasNext() bool {
	return p.Number < p.TotalPages
}

func (p *Page) HasPrevious() bool {
	return p.Number > 1
}

func (p *Page) NextNumber() int {
	return p.Number + 1
}

func (p *Page) PreviousNumber() int {
	return p.Number - 1
}

// Numbers lists every page number, for the paginator links
func (p *Page) Numbers() []int {
	result := make([]int, 0, p.TotalPages)
	for i := 1; i <= p.TotalPages; i++ {
		result = append(result, i)
	}
	return result
}
