package models

import "time"

// Post belongs to a community and may only be created by a member.
// CommentCount is maintained transactionally when comments are added or removed.
type Post struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CommunityID  uint       `gorm:"not null;index" json:"community_id"`
	Community    *Community `gorm:"foreignKey:CommunityID" json:"community,omitempty"`
	AuthorID     uint       `gorm:"not null;index" json:"author_id"`
	Author       *Profile   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Title        string     `gorm:"size:300;not null" json:"title"`
	Content      string     `gorm:"type:text" json:"content"`
	CommentCount int        `gorm:"not null;default:0" json:"comment_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}
