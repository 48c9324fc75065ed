package models

import (
	"errors"
	"strings"
	"yatube/db"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	Username  string `gorm:"type:varchar(150);index:uniq_username,unique"`
	FirstName string `gorm:"type:varchar(150)"`
	LastName  string `gorm:"type:varchar(150)"`
	Email     string `gorm:"type:varchar(254)"`
	Password  string `gorm:"type:varchar(128)"`
}

var (
	ErrEmptyUsername = errors.New("username is required")
	ErrUsernameTaken = errors.New("username is already taken")
)

func UserCreate(username, email, plainTextPassword string) (u User, err error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return u, ErrEmptyUsername
	}
	if _, err = UserByUsername(username); err == nil {
		return u, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return u, err
	}
	u.Username = username
	u.Email = email
	if err = u.SetPassword(plainTextPassword); err != nil {
		return u, err
	}
	return u, db.Instance.Create(&u).Error
}

func (u *User) SetPassword(plainTextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func UserLogin(username, plainTextPassword string) (u User, success bool) {
	u, err := UserByUsername(username)
	if err != nil {
		return User{}, false
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plainTextPassword)) != nil {
		return User{}, false
	}
	return u, true
}

func UserByUsername(username string) (u User, err error) {
	err = db.Instance.First(&u, "username = ?", username).Error
	return
}

// FullName falls back to the username when no names are set
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

func (u *User) PostCount() (count int64) {
	db.Instance.Model(&Post{}).Where("user_id = ?", u.ID).Count(&count)
	return
}

func (u *User) UpdateNames(firstName, lastName string) error {
	u.FirstName = strings.TrimSpace(firstName)
	u.LastName = strings.TrimSpace(lastName)
	return db.Instance.Model(u).Updates(map[string]interface{}{
		"first_name": u.FirstName,
		"last_name":  u.LastName,
	}).Error
}
