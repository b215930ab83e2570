package server

import (
	"fmt"
	"net/http"
	"testing"

	"realme/internal/cache"
	"realme/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestCreateCommunityAndDuplicateName(t *testing.T) {
	t.Parallel()

	srv, app, db := newTestApp(t, nil)
	owner := createTestAccount(t, db, "Owner")
	auth := bearer(t, srv, owner)

	status, body := doJSON(t, app, http.MethodPost, "/api/communities", auth, map[string]any{
		"name":        "Book Club",
		"description": "We read things",
	})
	if status != http.StatusCreated {
		t.Fatalf("create returned %d: %v", status, body)
	}
	if body["name"] != "Book Club" {
		t.Fatalf("unexpected name %v", body["name"])
	}
	if uint(body["owner_id"].(float64)) != owner.ID {
		t.Fatalf("unexpected owner_id %v", body["owner_id"])
	}

	// same name, case-insensitive, conflicts
	status, body = doJSON(t, app, http.MethodPost, "/api/communities", auth, map[string]any{
		"name": "book club",
	})
	if status != http.StatusConflict {
		t.Fatalf("duplicate create returned %d, want 409", status)
	}
	if body["error"] != "Community name already exists." {
		t.Fatalf("unexpected error %v", body["error"])
	}

	// anonymous create is rejected
	status, _ = doJSON(t, app, http.MethodPost, "/api/communities", "", map[string]any{
		"name": "Anon Club",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("anonymous create returned %d, want 401", status)
	}

	// too-short name fails validation
	status, _ = doJSON(t, app, http.MethodPost, "/api/communities", auth, map[string]any{
		"name": "ab",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("short name returned %d, want 400", status)
	}
}

// Authenticated listings exclude communities the caller owns or has joined;
// anonymous listings show everything.
func TestListCommunitiesExcludesOwnedAndJoined(t *testing.T) {
	t.Parallel()

	srv, app, db := newTestApp(t, nil)
	alice := createTestAccount(t, db, "Alice")
	bob := createTestAccount(t, db, "Bob")

	mkCommunity := func(name string, ownerID uint) *models.Community {
		c := &models.Community{Name: name, OwnerID: ownerID}
		if err := db.Create(c).Error; err != nil {
			t.Fatalf("create community: %v", err)
		}
		return c
	}
	owned := mkCommunity("Alice Owns This", alice.ID)
	joined := mkCommunity("Alice Joined This", bob.ID)
	fresh := mkCommunity("Fresh For Alice", bob.ID)

	if err := db.Create(&models.Membership{CommunityID: joined.ID, ProfileID: alice.ID}).Error; err != nil {
		t.Fatalf("create membership: %v", err)
	}

	names := func(body map[string]any) map[string]bool {
		items, _ := body["items"].([]any)
		out := map[string]bool{}
		for _, item := range items {
			m := item.(map[string]any)
			out[m["name"].(string)] = true
		}
		return out
	}

	// anonymous sees all three
	status, body := doJSON(t, app, http.MethodGet, "/api/communities", "", nil)
	if status != http.StatusOK {
		t.Fatalf("anon list returned %d", status)
	}
	if got := names(body); len(got) != 3 {
		t.Fatalf("anon list returned %v", got)
	}
	if int64(body["totalCount"].(float64)) != 3 {
		t.Fatalf("anon totalCount = %v", body["totalCount"])
	}

	// alice sees only the community she neither owns nor joined
	status, body = doJSON(t, app, http.MethodGet, "/api/communities", bearer(t, srv, alice), nil)
	if status != http.StatusOK {
		t.Fatalf("authed list returned %d", status)
	}
	got := names(body)
	if len(got) != 1 || !got[fresh.Name] {
		t.Fatalf("authed list returned %v, want only %q", got, fresh.Name)
	}
	if got[owned.Name] || got[joined.Name] {
		t.Fatalf("owned or joined community leaked into listing: %v", got)
	}
}

func TestListCommunitiesAggregates(t *testing.T) {
	t.Parallel()

	_, app, db := newTestApp(t, nil)
	owner := createTestAccount(t, db, "Owner")

	community := &models.Community{Name: "Aggregated", OwnerID: owner.ID}
	if err := db.Create(community).Error; err != nil {
		t.Fatalf("create community: %v", err)
	}
	for i := 0; i < 4; i++ {
		member := createTestAccount(t, db, fmt.Sprintf("Member %d", i))
		if err := db.Create(&models.Membership{CommunityID: community.ID, ProfileID: member.ID}).Error; err != nil {
			t.Fatalf("create membership: %v", err)
		}
	}
	// five posts; only the newest three should be previewed
	for i := 0; i < 5; i++ {
		post := &models.Post{
			CommunityID: community.ID,
			AuthorID:    owner.ID,
			Title:       fmt.Sprintf("Post %d", i),
			Content:     "body",
		}
		if err := db.Create(post).Error; err != nil {
			t.Fatalf("create post: %v", err)
		}
	}

	status, body := doJSON(t, app, http.MethodGet, "/api/communities", "", nil)
	if status != http.StatusOK {
		t.Fatalf("list returned %d", status)
	}
	items, _ := body["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}
	item := items[0].(map[string]any)
	if int64(item["member_count"].(float64)) != 4 {
		t.Fatalf("member_count = %v, want 4", item["member_count"])
	}
	recent, _ := item["recentPosts"].([]any)
	if len(recent) != 3 {
		t.Fatalf("expected 3 recent posts, got %d", len(recent))
	}
	newest := recent[0].(map[string]any)
	if newest["title"] != "Post 4" {
		t.Fatalf("expected newest post first, got %v", newest["title"])
	}
}

func TestUpdateCommunityPermissions(t *testing.T) {
	t.Parallel()

	srv, app, db := newTestApp(t, nil)
	owner := createTestAccount(t, db, "Owner")
	stranger := createTestAccount(t, db, "Stranger")
	admin := createTestAccount(t, db, "Admin")
	makeAdmin(t, db, admin.ID)

	community := &models.Community{Name: "Editable", OwnerID: owner.ID}
	if err := db.Create(community).Error; err != nil {
		t.Fatalf("create community: %v", err)
	}
	path := fmt.Sprintf("/api/communities/%d", community.ID)

	status, _ := doJSON(t, app, http.MethodPatch, path, bearer(t, srv, stranger), map[string]any{
		"description": "nope",
	})
	if status != http.StatusForbidden {
		t.Fatalf("stranger update returned %d, want 403", status)
	}

	status, body := doJSON(t, app, http.MethodPatch, path, bearer(t, srv, owner), map[string]any{
		"description": "set by owner",
	})
	if status != http.StatusOK {
		t.Fatalf("owner update returned %d: %v", status, body)
	}
	if body["description"] != "set by owner" {
		t.Fatalf("description not updated: %v", body["description"])
	}

	status, body = doJSON(t, app, http.MethodPatch, path, bearer(t, srv, admin), map[string]any{
		"icon_url": "https://example.com/icon.png",
	})
	if status != http.StatusOK {
		t.Fatalf("admin update returned %d: %v", status, body)
	}
}

func TestDeleteCommunityBlockedByDependents(t *testing.T) {
	t.Parallel()

	srv, app, db := newTestApp(t, nil)
	owner := createTestAccount(t, db, "Owner")
	auth := bearer(t, srv, owner)

	community := &models.Community{Name: "Occupied Place", OwnerID: owner.ID}
	if err := db.Create(community).Error; err != nil {
		t.Fatalf("create community: %v", err)
	}
	if err := db.Create(&models.Membership{CommunityID: community.ID, ProfileID: owner.ID}).Error; err != nil {
		t.Fatalf("create membership: %v", err)
	}
	path := fmt.Sprintf("/api/communities/%d", community.ID)

	status, body := doJSON(t, app, http.MethodDelete, path, auth, nil)
	if status != http.StatusConflict {
		t.Fatalf("delete with members returned %d, want 409", status)
	}
	if body["error"] != "Related data exists for this community" {
		t.Fatalf("unexpected error %v", body["error"])
	}

	// once empty, delete succeeds
	if err := db.Delete(&models.Membership{}, "community_id = ?", community.ID).Error; err != nil {
		t.Fatalf("clear memberships: %v", err)
	}
	status, _ = doJSON(t, app, http.MethodDelete, path, auth, nil)
	if status != http.StatusNoContent {
		t.Fatalf("delete returned %d, want 204", status)
	}

	status, _ = doJSON(t, app, http.MethodGet, path, "", nil)
	if status != http.StatusNotFound {
		t.Fatalf("get after delete returned %d, want 404", status)
	}
}

func TestGetCommunityInvalidID(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestApp(t, nil)

	status, body := doJSON(t, app, http.MethodGet, "/api/communities/abc", "", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if body["error"] != "Invalid ID" {
		t.Fatalf("unexpected error %v", body["error"])
	}
}

// Uses the package-global cache client, so no t.Parallel here.
func TestAnonymousListingCacheTracksWrites(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	srv, app, db := newTestApp(t, nil)
	owner := createTestAccount(t, db, "Cache Owner")
	auth := bearer(t, srv, owner)

	status, _ := doJSON(t, app, http.MethodPost, "/api/communities", auth, map[string]any{
		"name": "First Community",
	})
	if status != http.StatusCreated {
		t.Fatalf("create returned %d", status)
	}

	// warm the anonymous first page for a cached limit and an odd one
	for _, limit := range []int{10, 7} {
		status, body := doJSON(t, app, http.MethodGet,
			fmt.Sprintf("/api/communities?limit=%d", limit), "", nil)
		if status != http.StatusOK {
			t.Fatalf("list limit=%d returned %d", limit, status)
		}
		if items, _ := body["items"].([]any); len(items) != 1 {
			t.Fatalf("list limit=%d returned %d items, want 1", limit, len(items))
		}
	}
	if !mr.Exists(cache.CommunityListKey(10, 0)) {
		t.Fatalf("first page for limit 10 was not cached")
	}
	if mr.Exists(cache.CommunityListKey(7, 0)) {
		t.Fatalf("limit 7 page was cached; invalidation cannot enumerate it")
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/communities", auth, map[string]any{
		"name": "Second Community",
	})
	if status != http.StatusCreated {
		t.Fatalf("second create returned %d", status)
	}

	// both page sizes must reflect the write immediately
	for _, limit := range []int{10, 7} {
		_, body := doJSON(t, app, http.MethodGet,
			fmt.Sprintf("/api/communities?limit=%d", limit), "", nil)
		if items, _ := body["items"].([]any); len(items) != 2 {
			t.Fatalf("stale listing for limit=%d: %d items, want 2", limit, len(items))
		}
	}
}
