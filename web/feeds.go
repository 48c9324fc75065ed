package web

import (
	"bytes"
	"html/template"
	"net/http"
	"yatube/feed"
	"yatube/handlers"
	"yatube/models"

	"github.com/gin-gonic/gin"
)

// Index is the global feed. Its post list is served from the render cache
func Index(c *gin.Context) {
	number, err := pageNumber(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	ctx := c.Request.Context()
	if wantsJSON(c) {
		page, err := feeds.Paginate(ctx, feed.Global, number)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"page": NewPageInfo(page)})
		return
	}
	fragment, generation, ok := feeds.GetCachedPage(ctx, feed.Global, number)
	if !ok {
		page, err := feeds.Paginate(ctx, feed.Global, number)
		if err != nil {
			abortWithError(c, err)
			return
		}
		buf := bytes.Buffer{}
		if err = pages.ExecuteTemplate(&buf, "feed_page.tmpl", gin.H{"page": page, "showGroup": true}); err != nil {
			abortWithError(c, err)
			return
		}
		fragment = buf.Bytes()
		// pages past the end are all the same empty page and are not worth a cache entry each
		if number <= max(1, page.TotalPages) {
			feeds.PutCachedPage(ctx, feed.Global, number, generation, fragment)
		}
	}
	data := handlers.PageData(c, "Latest posts")
	data["feed"] = template.HTML(fragment)
	c.HTML(http.StatusOK, "index.tmpl", data)
}

func GroupPosts(c *gin.Context) {
	group, err := models.GroupBySlug(c.Param("slug"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	number, err := pageNumber(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	page, err := feeds.Paginate(c.Request.Context(), feed.GroupKey(group.Slug), number)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"group": NewGroupInfo(&group), "page": NewPageInfo(page)})
		return
	}
	data := handlers.PageData(c, group.Title)
	data["group"] = &group
	data["page"] = page
	data["showGroup"] = false
	c.HTML(http.StatusOK, "group_list.tmpl", data)
}

func Profile(c *gin.Context) {
	author, err := models.UserByUsername(c.Param("username"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	number, err := pageNumber(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	page, err := feeds.Paginate(c.Request.Context(), feed.AuthorKey(author.Username), number)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"author": author.Username, "post_count": page.Count, "page": NewPageInfo(page)})
		return
	}
	data := handlers.PageData(c, "Profile of "+author.FullName())
	data["author"] = &author
	data["post_count"] = page.Count
	data["page"] = page
	data["showGroup"] = true
	c.HTML(http.StatusOK, "profile.tmpl", data)
}
