package models

import (
	"yatube/db"
)

func Init() {
	if err := Migrate(db.Instance); err != nil {
		panic(err)
	}
}

func Migrate(tx interface {
	AutoMigrate(dst ...interface{}) error
}) error {
	return tx.AutoMigrate(&User{}, &Group{}, &Post{}, &Comment{})
}
