package models

import "time"

// Community is a named space users join to post in.
type Community struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:30;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IconURL     string    `gorm:"size:255" json:"icon_url"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	Owner       *Profile  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Community) TableName() string {
	return "communities"
}
