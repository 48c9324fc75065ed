package handlers

import (
	"errors"
	"net/http"
	"yatube/auth"
	"yatube/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

type UserSignupRequest struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Username  string `form:"username" binding:"required"`
	Email     string `form:"email"`
	Password  string `form:"password" binding:"required"`
}

type UserLoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

func UserSignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.tmpl", PageData(c, "Sign up"))
}

func UserSignup(c *gin.Context) {
	r := UserSignupRequest{}
	data := PageData(c, "Sign up")
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		data["error"] = "Username and password are required."
		c.HTML(http.StatusOK, "signup.tmpl", data)
		return
	}
	data["username"] = r.Username
	user, err := models.UserCreate(r.Username, r.Email, r.Password)
	if err != nil {
		if errors.Is(err, models.ErrUsernameTaken) || errors.Is(err, models.ErrEmptyUsername) {
			data["error"] = err.Error()
			c.HTML(http.StatusOK, "signup.tmpl", data)
			return
		}
		zap.L().Error("User signup failed", zap.String("username", r.Username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	if r.FirstName != "" || r.LastName != "" {
		if err = user.UpdateNames(r.FirstName, r.LastName); err != nil {
			zap.L().Warn("User names not saved", zap.Uint64("user", user.ID), zap.Error(err))
		}
	}
	if err = auth.LoadSession(c).LoginUser(&user); err != nil {
		zap.L().Error("Session save failed", zap.Error(err))
	}
	c.Redirect(http.StatusFound, "/")
}

func UserLoginForm(c *gin.Context) {
	data := PageData(c, "Log in")
	data["next"] = c.Query("next")
	c.HTML(http.StatusOK, "login.tmpl", data)
}

func UserLogin(c *gin.Context) {
	r := UserLoginRequest{}
	data := PageData(c, "Log in")
	err := c.ShouldBindWith(&r, binding.Form)
	data["next"] = r.Next
	if err != nil {
		data["error"] = "Please enter a username and password."
		c.HTML(http.StatusOK, "login.tmpl", data)
		return
	}
	data["username"] = r.Username
	user, ok := models.UserLogin(r.Username, r.Password)
	if !ok {
		data["error"] = "Please enter a correct username and password."
		c.HTML(http.StatusOK, "login.tmpl", data)
		return
	}
	if err = auth.LoadSession(c).LoginUser(&user); err != nil {
		zap.L().Error("Session save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{"session error"})
		return
	}
	c.Redirect(http.StatusFound, SafeRedirect(r.Next))
}

func UserLogout(c *gin.Context) {
	auth.LoadSession(c).LogoutUser()
	c.Redirect(http.StatusFound, "/")
}
