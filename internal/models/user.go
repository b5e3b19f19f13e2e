// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// DefaultStatus is assigned to every user at signup.
const DefaultStatus = "I am new!"

// User represents a registered account. Posts is the user's owned-post set,
// derived from the creator reference on each post.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Name      string    `gorm:"not null" json:"name"`
	Password  string    `gorm:"not null" json:"-"`
	Status    string    `gorm:"not null;default:'I am new!'" json:"status"`
	Posts     []Post    `gorm:"foreignKey:CreatorID" json:"posts,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatorSummary is the minimal creator payload attached to feed events and
// create-post responses.
type CreatorSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Summary returns the minimal public view of the user.
func (u *User) Summary() CreatorSummary {
	return CreatorSummary{ID: u.ID, Name: u.Name}
}
