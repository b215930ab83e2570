package server

import (
	"realme/internal/models"
	"realme/internal/service"
)

// ProfileDTO is the full profile payload returned to the owner and to admins.
type ProfileDTO struct {
	ID                uint   `json:"id"`
	Email             string `json:"email"`
	RealName          string `json:"real_name"`
	Location          string `json:"location"`
	BirthDate         string `json:"birth_date,omitempty"`
	IsVerified        bool   `json:"is_verified"`
	VerificationDate  string `json:"verification_date,omitempty"`
	VerificationNotes string `json:"verification_notes,omitempty"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

func toProfileDTO(p *models.Profile) *ProfileDTO {
	if p == nil {
		return nil
	}
	dto := &ProfileDTO{
		ID:                p.ID,
		Email:             p.Email,
		RealName:          p.RealName,
		Location:          p.Location,
		IsVerified:        p.IsVerified,
		VerificationNotes: p.VerificationNotes,
		CreatedAt:         formatTime(p.CreatedAt),
		UpdatedAt:         formatTime(p.UpdatedAt),
	}
	if p.BirthDate != nil {
		dto.BirthDate = p.BirthDate.UTC().Format("2006-01-02")
	}
	dto.VerificationDate = formatTimePtr(p.VerificationDate)
	return dto
}

// AuthorDTO is the embedded author summary on posts and comments.
type AuthorDTO struct {
	ID       uint   `json:"id"`
	RealName string `json:"real_name"`
	Email    string `json:"email"`
	Location string `json:"location"`
}

func toAuthorDTO(p *models.Profile) *AuthorDTO {
	if p == nil {
		return nil
	}
	return &AuthorDTO{
		ID:       p.ID,
		RealName: p.RealName,
		Email:    p.Email,
		Location: p.Location,
	}
}

// CommunityDTO is the standalone community payload.
type CommunityDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url"`
	OwnerID     uint   `json:"owner_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toCommunityDTO(c *models.Community) *CommunityDTO {
	if c == nil {
		return nil
	}
	return &CommunityDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IconURL:     c.IconURL,
		OwnerID:     c.OwnerID,
		CreatedAt:   formatTime(c.CreatedAt),
		UpdatedAt:   formatTime(c.UpdatedAt),
	}
}

// CommunityRefDTO is the small community summary embedded in feed items.
type CommunityRefDTO struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	IconURL string `json:"icon_url"`
}

// RecentPostDTO is a trimmed post preview on community listing items.
type RecentPostDTO struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	AuthorID  uint   `json:"author_id"`
	CreatedAt string `json:"created_at"`
}

// CommunityListItemDTO flattens a community plus its listing aggregates.
type CommunityListItemDTO struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	IconURL     string           `json:"icon_url"`
	OwnerID     uint             `json:"owner_id"`
	MemberCount int64            `json:"member_count"`
	RecentPosts []*RecentPostDTO `json:"recentPosts"`
	CreatedAt   string           `json:"created_at"`
}

func toCommunityListItemDTO(item *service.CommunityListItem) *CommunityListItemDTO {
	recent := make([]*RecentPostDTO, 0, len(item.RecentPosts))
	for _, post := range item.RecentPosts {
		recent = append(recent, &RecentPostDTO{
			ID:        post.ID,
			Title:     post.Title,
			AuthorID:  post.AuthorID,
			CreatedAt: formatTime(post.CreatedAt),
		})
	}
	return &CommunityListItemDTO{
		ID:          item.Community.ID,
		Name:        item.Community.Name,
		Description: item.Community.Description,
		IconURL:     item.Community.IconURL,
		OwnerID:     item.Community.OwnerID,
		MemberCount: item.MemberCount,
		RecentPosts: recent,
		CreatedAt:   formatTime(item.Community.CreatedAt),
	}
}

// PostDTO is the full post payload.
type PostDTO struct {
	ID           uint       `json:"id"`
	CommunityID  uint       `json:"community_id"`
	AuthorID     uint       `json:"author_id"`
	Author       *AuthorDTO `json:"author,omitempty"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	CommentCount int        `json:"comment_count"`
	CreatedAt    string     `json:"created_at"`
	UpdatedAt    string     `json:"updated_at"`
}

func toPostDTO(p *models.Post) *PostDTO {
	return &PostDTO{
		ID:           p.ID,
		CommunityID:  p.CommunityID,
		AuthorID:     p.AuthorID,
		Author:       toAuthorDTO(p.Author),
		Title:        p.Title,
		Content:      p.Content,
		CommentCount: p.CommentCount,
		CreatedAt:    formatTime(p.CreatedAt),
		UpdatedAt:    formatTime(p.UpdatedAt),
	}
}

// FeedItemDTO is a post as it appears in the personalized feed: a content
// snippet instead of the full body, with author and community summaries.
type FeedItemDTO struct {
	ID             uint             `json:"id"`
	Title          string           `json:"title"`
	ContentSnippet string           `json:"content_snippet"`
	Author         *AuthorDTO       `json:"author,omitempty"`
	Community      *CommunityRefDTO `json:"community,omitempty"`
	CommentCount   int              `json:"comment_count"`
	CreatedAt      string           `json:"created_at"`
}

func toFeedItemDTO(p *models.Post) *FeedItemDTO {
	item := &FeedItemDTO{
		ID:             p.ID,
		Title:          p.Title,
		ContentSnippet: contentSnippet(p.Content),
		Author:         toAuthorDTO(p.Author),
		CommentCount:   p.CommentCount,
		CreatedAt:      formatTime(p.CreatedAt),
	}
	if p.Community != nil {
		item.Community = &CommunityRefDTO{
			ID:      p.Community.ID,
			Name:    p.Community.Name,
			IconURL: p.Community.IconURL,
		}
	}
	return item
}

// CommentDTO is the comment payload.
type CommentDTO struct {
	ID              uint       `json:"id"`
	PostID          uint       `json:"post_id"`
	AuthorID        uint       `json:"author_id"`
	Author          *AuthorDTO `json:"author,omitempty"`
	Content         string     `json:"content"`
	ParentCommentID *uint      `json:"parent_comment_id,omitempty"`
	CreatedAt       string     `json:"created_at"`
	UpdatedAt       string     `json:"updated_at"`
}

func toCommentDTO(c *models.Comment) *CommentDTO {
	return &CommentDTO{
		ID:              c.ID,
		PostID:          c.PostID,
		AuthorID:        c.AuthorID,
		Author:          toAuthorDTO(c.Author),
		Content:         c.Content,
		ParentCommentID: c.ParentCommentID,
		CreatedAt:       formatTime(c.CreatedAt),
		UpdatedAt:       formatTime(c.UpdatedAt),
	}
}

// AdminDTO is the admin roster payload.
type AdminDTO struct {
	ID        uint       `json:"id"`
	UserID    uint       `json:"user_id"`
	Profile   *AuthorDTO `json:"profile,omitempty"`
	CreatedBy uint       `json:"created_by"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt string     `json:"created_at"`
}

func toAdminDTO(a *models.Admin) *AdminDTO {
	return &AdminDTO{
		ID:        a.ID,
		UserID:    a.UserID,
		Profile:   toAuthorDTO(a.Profile),
		CreatedBy: a.CreatedBy,
		Notes:     a.Notes,
		CreatedAt: formatTime(a.CreatedAt),
	}
}
