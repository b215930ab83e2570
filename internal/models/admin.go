package models

import "time"

// Admin marks a user as an administrator. A user is an admin iff a row
// exists for their user ID; the first admin is provisioned out-of-band.
type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Profile   *Profile  `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	CreatedBy uint      `gorm:"not null" json:"created_by"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Admin) TableName() string {
	return "admins"
}
