package models

import "time"

// Comment belongs to a post. ParentCommentID, when set, must reference a root
// comment on the same post; replies nest a single level.
type Comment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PostID          uint      `gorm:"not null;index" json:"post_id"`
	AuthorID        uint      `gorm:"not null;index" json:"author_id"`
	Author          *Profile  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	ParentCommentID *uint     `json:"parent_comment_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Comment) TableName() string {
	return "comments"
}
