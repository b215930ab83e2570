// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"realme/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls seeding volume and timestamp spread.
type Options struct {
	Users       int
	Communities int
	Posts       int
	MaxDays     int // how far back created_at timestamps are spread
}

// Seeder populates the database with plausible demo data.
type Seeder struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Seeder{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll deletes all seeded rows, child tables first.
func (s *Seeder) ClearAll() error {
	tables := []string{"comments", "posts", "memberships", "communities", "admins", "profiles", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// pastTime returns a timestamp spread over the configured window.
func (s *Seeder) pastTime() time.Time {
	daysBack := s.rng.Intn(s.opts.MaxDays)
	hoursBack := s.rng.Intn(24)
	minsBack := s.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

// SeedUsers creates accounts with matching profiles. Roughly two thirds of
// profiles come out verified so the public listing has content.
// All users share the password "password123".
func (s *Seeder) SeedUsers() ([]*models.Profile, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profiles := make([]*models.Profile, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		email := fmt.Sprintf("%d.%s", i, gofakeit.Email())
		user := &models.User{Email: email, Password: string(hashed)}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("creating user: %w", err)
		}

		birthDate := gofakeit.DateRange(
			time.Now().AddDate(-60, 0, 0), time.Now().AddDate(-18, 0, 0))
		profile := &models.Profile{
			ID:        user.ID,
			Email:     user.Email,
			RealName:  gofakeit.Name(),
			Location:  fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
			BirthDate: &birthDate,
			CreatedAt: s.pastTime(),
		}
		if s.rng.Intn(3) != 0 {
			now := time.Now().UTC()
			profile.IsVerified = true
			profile.VerificationDate = &now
		}
		if err := s.db.Create(profile).Error; err != nil {
			return nil, fmt.Errorf("creating profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	log.Printf("Seeded %d users with profiles", len(profiles))
	return profiles, nil
}

// SeedAdmin promotes the first profile to administrator.
func (s *Seeder) SeedAdmin(profiles []*models.Profile) error {
	if len(profiles) == 0 {
		return nil
	}
	admin := &models.Admin{
		UserID:    profiles[0].ID,
		CreatedBy: profiles[0].ID,
		Notes:     "bootstrap admin",
	}
	if err := s.db.Create(admin).Error; err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}
	log.Printf("Promoted %s to admin", profiles[0].Email)
	return nil
}

// SeedCommunities creates communities owned by random profiles and joins a
// random subset of profiles (owner always included) to each.
func (s *Seeder) SeedCommunities(profiles []*models.Profile) ([]*models.Community, error) {
	communities := make([]*models.Community, 0, s.opts.Communities)
	for i := 0; i < s.opts.Communities; i++ {
		owner := profiles[s.rng.Intn(len(profiles))]
		name := fmt.Sprintf("%s %s", gofakeit.HackerAdjective(), gofakeit.HackerNoun())
		if len(name) > 30 {
			name = name[:30]
		}
		community := &models.Community{
			Name:        fmt.Sprintf("%.26s #%d", name, i),
			Description: gofakeit.Sentence(12),
			IconURL:     fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
			OwnerID:     owner.ID,
			CreatedAt:   s.pastTime(),
		}
		if err := s.db.Create(community).Error; err != nil {
			return nil, fmt.Errorf("creating community: %w", err)
		}

		members := map[uint]bool{owner.ID: true}
		for _, profile := range profiles {
			if s.rng.Intn(4) == 0 {
				members[profile.ID] = true
			}
		}
		for profileID := range members {
			membership := &models.Membership{CommunityID: community.ID, ProfileID: profileID}
			if err := s.db.Create(membership).Error; err != nil {
				return nil, fmt.Errorf("creating membership: %w", err)
			}
		}
		communities = append(communities, community)
	}

	log.Printf("Seeded %d communities with memberships", len(communities))
	return communities, nil
}

// SeedContent creates posts by community members and threads of comments
// beneath them, keeping comment_count consistent.
func (s *Seeder) SeedContent(communities []*models.Community) error {
	totalComments := 0
	for i := 0; i < s.opts.Posts; i++ {
		community := communities[s.rng.Intn(len(communities))]

		var memberIDs []uint
		if err := s.db.Model(&models.Membership{}).
			Where("community_id = ?", community.ID).
			Pluck("profile_id", &memberIDs).Error; err != nil {
			return fmt.Errorf("loading members: %w", err)
		}
		if len(memberIDs) == 0 {
			continue
		}

		post := &models.Post{
			CommunityID: community.ID,
			AuthorID:    memberIDs[s.rng.Intn(len(memberIDs))],
			Title:       gofakeit.Sentence(6),
			Content:     gofakeit.Paragraph(2, 4, 8, "\n\n"),
			CreatedAt:   s.pastTime(),
		}
		if err := s.db.Create(post).Error; err != nil {
			return fmt.Errorf("creating post: %w", err)
		}

		var rootIDs []uint
		numComments := s.rng.Intn(6)
		for j := 0; j < numComments; j++ {
			comment := &models.Comment{
				PostID:   post.ID,
				AuthorID: memberIDs[s.rng.Intn(len(memberIDs))],
				Content:  gofakeit.Sentence(10),
			}
			// reply to a root comment sometimes, one level only
			if len(rootIDs) > 0 && s.rng.Intn(3) == 0 {
				parentID := rootIDs[s.rng.Intn(len(rootIDs))]
				comment.ParentCommentID = &parentID
			}
			if err := s.db.Create(comment).Error; err != nil {
				return fmt.Errorf("creating comment: %w", err)
			}
			if comment.ParentCommentID == nil {
				rootIDs = append(rootIDs, comment.ID)
			}
			totalComments++
		}
		if numComments > 0 {
			if err := s.db.Model(&models.Post{}).Where("id = ?", post.ID).
				Update("comment_count", numComments).Error; err != nil {
				return fmt.Errorf("updating comment count: %w", err)
			}
		}
	}

	log.Printf("Seeded %d posts and %d comments", s.opts.Posts, totalComments)
	return nil
}
