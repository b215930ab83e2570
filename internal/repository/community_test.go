package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"realme/internal/database"
	"realme/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, id uint) *models.Profile {
	t.Helper()
	user := &models.User{ID: id, Email: fmt.Sprintf("p%d@example.com", id), Password: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	profile := &models.Profile{ID: id, Email: user.Email, RealName: fmt.Sprintf("Profile %d", id)}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}
	return profile
}

func TestCommunityRepository_MemberCounts(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	repo := NewCommunityRepository(db)
	ctx := context.Background()

	owner := seedProfile(t, db, 1)
	a := &models.Community{Name: "Community A", OwnerID: owner.ID}
	b := &models.Community{Name: "Community B", OwnerID: owner.ID}
	empty := &models.Community{Name: "Community C", OwnerID: owner.ID}
	for _, c := range []*models.Community{a, b, empty} {
		if err := db.Create(c).Error; err != nil {
			t.Fatalf("create community: %v", err)
		}
	}
	for i := uint(2); i <= 4; i++ {
		seedProfile(t, db, i)
		if err := db.Create(&models.Membership{CommunityID: a.ID, ProfileID: i}).Error; err != nil {
			t.Fatalf("create membership: %v", err)
		}
	}
	if err := db.Create(&models.Membership{CommunityID: b.ID, ProfileID: 2}).Error; err != nil {
		t.Fatalf("create membership: %v", err)
	}

	counts, err := repo.MemberCounts(ctx, []uint{a.ID, b.ID, empty.ID})
	if err != nil {
		t.Fatalf("MemberCounts: %v", err)
	}
	if counts[a.ID] != 3 || counts[b.ID] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
	if _, present := counts[empty.ID]; present {
		t.Fatalf("empty community should have no entry, got %v", counts[empty.ID])
	}

	counts, err = repo.MemberCounts(ctx, nil)
	if err != nil {
		t.Fatalf("MemberCounts(nil): %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("expected empty map for no IDs")
	}
}

func TestCommunityRepository_RecentPostsWindow(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	repo := NewCommunityRepository(db)
	ctx := context.Background()

	owner := seedProfile(t, db, 1)
	busy := &models.Community{Name: "Busy Community", OwnerID: owner.ID}
	quiet := &models.Community{Name: "Quiet Community", OwnerID: owner.ID}
	for _, c := range []*models.Community{busy, quiet} {
		if err := db.Create(c).Error; err != nil {
			t.Fatalf("create community: %v", err)
		}
	}

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		post := &models.Post{
			CommunityID: busy.ID,
			AuthorID:    owner.ID,
			Title:       fmt.Sprintf("Busy %d", i),
			Content:     "body",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(post).Error; err != nil {
			t.Fatalf("create post: %v", err)
		}
	}
	if err := db.Create(&models.Post{
		CommunityID: quiet.ID, AuthorID: owner.ID, Title: "Only One", Content: "body",
	}).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}

	recent, err := repo.RecentPosts(ctx, []uint{busy.ID, quiet.ID}, 3)
	if err != nil {
		t.Fatalf("RecentPosts: %v", err)
	}

	busyPosts := recent[busy.ID]
	if len(busyPosts) != 3 {
		t.Fatalf("expected 3 previews for busy community, got %d", len(busyPosts))
	}
	if busyPosts[0].Title != "Busy 4" || busyPosts[2].Title != "Busy 2" {
		t.Fatalf("previews out of order: %s .. %s", busyPosts[0].Title, busyPosts[2].Title)
	}
	if len(recent[quiet.ID]) != 1 {
		t.Fatalf("expected 1 preview for quiet community, got %d", len(recent[quiet.ID]))
	}
}

func TestCommunityRepository_ListFilters(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	repo := NewCommunityRepository(db)
	ctx := context.Background()

	alice := seedProfile(t, db, 1)
	bob := seedProfile(t, db, 2)

	owned := &models.Community{Name: "Owned By Alice", OwnerID: alice.ID}
	joined := &models.Community{Name: "Joined By Alice", OwnerID: bob.ID}
	fresh := &models.Community{Name: "Gardening Tips", Description: "plants and soil", OwnerID: bob.ID}
	for _, c := range []*models.Community{owned, joined, fresh} {
		if err := db.Create(c).Error; err != nil {
			t.Fatalf("create community: %v", err)
		}
	}
	if err := db.Create(&models.Membership{CommunityID: joined.ID, ProfileID: alice.ID}).Error; err != nil {
		t.Fatalf("create membership: %v", err)
	}

	// unfiltered
	all, total, err := repo.List(ctx, ListCommunitiesParams{Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 || len(all) != 3 {
		t.Fatalf("unfiltered list: total=%d len=%d", total, len(all))
	}

	// exclusion removes owned and joined rows from page and total alike
	filtered, total, err := repo.List(ctx, ListCommunitiesParams{Limit: 10, ExcludeProfileID: alice.ID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(filtered) != 1 || filtered[0].ID != fresh.ID {
		t.Fatalf("exclusion filter failed: total=%d len=%d", total, len(filtered))
	}

	// search matches name or description, case-insensitively
	found, total, err := repo.List(ctx, ListCommunitiesParams{Limit: 10, Search: "SOIL"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(found) != 1 || found[0].ID != fresh.ID {
		t.Fatalf("search filter failed: total=%d len=%d", total, len(found))
	}
}

func TestCommunityRepository_DependentCounts(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	repo := NewCommunityRepository(db)
	ctx := context.Background()

	owner := seedProfile(t, db, 1)
	community := &models.Community{Name: "With Dependents", OwnerID: owner.ID}
	if err := db.Create(community).Error; err != nil {
		t.Fatalf("create community: %v", err)
	}
	if err := db.Create(&models.Post{CommunityID: community.ID, AuthorID: owner.ID, Title: "t", Content: "c"}).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	if err := db.Create(&models.Membership{CommunityID: community.ID, ProfileID: owner.ID}).Error; err != nil {
		t.Fatalf("create membership: %v", err)
	}

	posts, members, err := repo.DependentCounts(ctx, community.ID)
	if err != nil {
		t.Fatalf("DependentCounts: %v", err)
	}
	if posts != 1 || members != 1 {
		t.Fatalf("got posts=%d members=%d, want 1 and 1", posts, members)
	}
}
