package models

import "time"

// Profile is the user-facing record, one-to-one with User and sharing its ID.
// Verification fields are only ever written through admin endpoints.
type Profile struct {
	ID                uint       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Email             string     `gorm:"not null" json:"email"`
	RealName          string     `gorm:"size:120" json:"real_name"`
	Location          string     `gorm:"size:120" json:"location"`
	BirthDate         *time.Time `json:"birth_date,omitempty"`
	IsVerified        bool       `gorm:"not null;default:false" json:"is_verified"`
	VerificationDate  *time.Time `json:"verification_date,omitempty"`
	VerifiedBy        *uint      `json:"verified_by,omitempty"`
	VerificationNotes string     `gorm:"type:text" json:"verification_notes,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Profile) TableName() string {
	return "profiles"
}
