package web

import (
	"errors"
	"net/http"
	"strconv"
	"yatube/feed"
	"yatube/handlers"
	"yatube/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostForm struct {
	Text  string `form:"text"`
	Group uint64 `form:"group"`
}

type CommentForm struct {
	Text string `form:"text" binding:"required"`
}

func loadPost(c *gin.Context) (post models.Post, ok bool) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		NotFound(c)
		return post, false
	}
	post, err = models.PostByID(id)
	if err != nil {
		abortWithError(c, err)
		return post, false
	}
	return post, true
}

func postURL(post *models.Post) string {
	return "/posts/" + strconv.FormatUint(post.ID, 10) + "/"
}

func PostDetail(c *gin.Context) {
	post, ok := loadPost(c)
	if !ok {
		return
	}
	comments, err := models.PostComments(post.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	postCount := post.User.PostCount()
	if wantsJSON(c) {
		commentInfos := make([]CommentInfo, 0, len(comments))
		for i := range comments {
			commentInfos = append(commentInfos, NewCommentInfo(&comments[i]))
		}
		c.JSON(http.StatusOK, gin.H{"post": NewPostInfo(&post), "post_count": postCount, "comments": commentInfos})
		return
	}
	data := handlers.PageData(c, "Post "+strconv.FormatUint(post.ID, 10))
	user, _ := data["user"].(*models.User)
	data["post"] = &post
	data["post_count"] = postCount
	data["comments"] = comments
	data["is_author"] = user != nil && user.ID == post.UserID
	c.HTML(http.StatusOK, "post_detail.tmpl", data)
}

// renderPostForm shows the create/edit form, status 200 also when the form has errors
func renderPostForm(c *gin.Context, user *models.User, form PostForm, post *models.Post, formError string) {
	groups, err := models.GroupList()
	if err != nil {
		abortWithError(c, err)
		return
	}
	title := "New post"
	action := "/create/"
	if post != nil {
		title = "Edit post"
		action = postURL(post) + "edit/"
	}
	data := handlers.PageDataFor(user, title)
	data["form"] = form
	data["groups"] = groups
	data["is_edit"] = post != nil
	data["action"] = action
	data["error"] = formError
	c.HTML(http.StatusOK, "create_post.tmpl", data)
}

// formErrorMessage returns "" for errors that are not the user's fault
func formErrorMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrEmptyText):
		return "Text is required."
	case errors.Is(err, models.ErrUnknownGroup):
		return "Select a valid group."
	case errors.Is(err, errInvalidImage):
		return "Upload a valid image."
	}
	return ""
}

func PostCreateForm(c *gin.Context, user *models.User) {
	renderPostForm(c, user, PostForm{}, nil, "")
}

func PostCreate(c *gin.Context, user *models.User) {
	form := PostForm{}
	if err := c.ShouldBind(&form); err != nil {
		renderPostForm(c, user, form, nil, "Check the form fields.")
		return
	}
	image, err := saveUploadedImage(c)
	if err == nil {
		_, err = models.PostCreate(user, form.Text, form.Group, image)
	}
	if err != nil {
		if image != "" {
			removeImage(image)
		}
		if msg := formErrorMessage(err); msg != "" {
			renderPostForm(c, user, form, nil, msg)
			return
		}
		abortWithError(c, err)
		return
	}
	invalidateGlobal(c)
	c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}

func PostEditForm(c *gin.Context, user *models.User) {
	post, ok := loadPost(c)
	if !ok {
		return
	}
	if post.UserID != user.ID {
		c.Redirect(http.StatusFound, postURL(&post))
		return
	}
	form := PostForm{Text: post.Text}
	if post.GroupID != nil {
		form.Group = *post.GroupID
	}
	renderPostForm(c, user, form, &post, "")
}

func PostEdit(c *gin.Context, user *models.User) {
	post, ok := loadPost(c)
	if !ok {
		return
	}
	if post.UserID != user.ID {
		c.Redirect(http.StatusFound, postURL(&post))
		return
	}
	form := PostForm{}
	if err := c.ShouldBind(&form); err != nil {
		renderPostForm(c, user, form, &post, "Check the form fields.")
		return
	}
	oldImage := post.Image
	image, err := saveUploadedImage(c)
	if err == nil {
		err = post.Update(user.ID, form.Text, form.Group, image)
	}
	if err != nil {
		if image != "" {
			removeImage(image)
		}
		if msg := formErrorMessage(err); msg != "" {
			renderPostForm(c, user, form, &post, msg)
			return
		}
		abortWithError(c, err)
		return
	}
	if image != "" && oldImage != "" && oldImage != image {
		removeImage(oldImage)
	}
	invalidateGlobal(c)
	c.Redirect(http.StatusFound, postURL(&post))
}

// AddComment always returns to the post, invalid comments are dropped
func AddComment(c *gin.Context, user *models.User) {
	post, ok := loadPost(c)
	if !ok {
		return
	}
	form := CommentForm{}
	if err := c.ShouldBind(&form); err == nil {
		if _, err = models.CommentCreate(&post, user, form.Text); err != nil && !errors.Is(err, models.ErrEmptyText) {
			abortWithError(c, err)
			return
		}
	}
	c.Redirect(http.StatusFound, postURL(&post))
}

// invalidateGlobal runs after every post create/edit. Group and author feeds are never render-cached
func invalidateGlobal(c *gin.Context) {
	if err := feeds.Invalidate(c.Request.Context(), feed.Global); err != nil {
		zap.L().Error("Home page may be stale", zap.Error(err))
	}
}
