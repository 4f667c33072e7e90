package models

import "time"

type User struct {
	ID             int64     `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	ProfileImageID *string   `json:"img_id" db:"profile_image_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
