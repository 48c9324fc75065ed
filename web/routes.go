package web

import (
	"yatube/auth"
	"yatube/handlers"
	"yatube/utils"

	"github.com/gin-gonic/gin"
)

func Register(router *gin.Engine) {
	router.SetHTMLTemplate(pages)
	authRouter := &auth.Router{Base: router}

	// Feeds
	router.GET("/", Index)
	router.GET("/group/:slug/", GroupPosts)
	router.GET("/profile/:username/", Profile)
	// Posts
	router.GET("/posts/:post_id/", PostDetail)
	authRouter.GET("/create/", PostCreateForm)
	authRouter.POST("/create/", PostCreate)
	authRouter.GET("/posts/:post_id/edit/", PostEditForm)
	authRouter.POST("/posts/:post_id/edit/", PostEdit)
	authRouter.POST("/posts/:post_id/comment/", AddComment)
	// Images
	router.GET("/media/*filepath", utils.CacheControl(utils.MediaMaxAge), Media)
	// Accounts
	router.GET("/auth/signup/", handlers.UserSignupForm)
	router.POST("/auth/signup/", handlers.UserSignup)
	router.GET("/auth/login/", handlers.UserLoginForm)
	router.POST("/auth/login/", handlers.UserLogin)
	router.GET("/auth/logout/", handlers.UserLogout)

	router.NoRoute(NotFound)
}
