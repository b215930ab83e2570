// Package models contains data structures for the application's domain models.
package models

import "time"

// User is the account record behind a bearer token. Credentials live here;
// everything user-facing lives on the matching Profile row.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
