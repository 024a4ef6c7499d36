package models

import "time"

// User is an authenticated tenant account. Every domain row is scoped to a
// user id; a user sees and solves only their own institution's data.
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsDemo       bool      `db:"is_demo" json:"is_demo"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
