package models

import "time"

// Membership links a profile to a community. Its presence is the predicate
// that gates post and comment creation in that community.
type Membership struct {
	CommunityID uint      `gorm:"primaryKey;autoIncrement:false" json:"community_id"`
	ProfileID   uint      `gorm:"primaryKey;autoIncrement:false" json:"profile_id"`
	Profile     *Profile  `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Membership) TableName() string {
	return "memberships"
}
