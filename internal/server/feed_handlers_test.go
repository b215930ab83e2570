package server

import (
	"net/http"
	"strings"
	"testing"

	"realme/internal/models"
)

func TestFeedRequiresCaller(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestApp(t, nil)

	status, _ := doJSON(t, app, http.MethodGet, "/api/feed", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("anonymous feed returned %d, want 401", status)
	}
}

func TestFeedEmptyWithoutMemberships(t *testing.T) {
	t.Parallel()

	srv, app, db := newTestApp(t, nil)
	loner := createTestAccount(t, db, "Loner")

	status, body := doJSON(t, app, http.MethodGet, "/api/feed", bearer(t, srv, loner), nil)
	if status != http.StatusOK {
		t.Fatalf("feed returned %d", status)
	}
	items, ok := body["items"].([]any)
	if !ok {
		t.Fatalf("items missing or not an array: %v", body)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty feed, got %d items", len(items))
	}
	if int64(body["totalCount"].(float64)) != 0 {
		t.Fatalf("totalCount = %v, want 0", body["totalCount"])
	}
}

func TestFeedScopeSnippetAndOrder(t *testing.T) {
	t.Parallel()

	srv, app, db := newTestApp(t, nil)
	owner := createTestAccount(t, db, "Owner")
	reader := createTestAccount(t, db, "Reader")

	joined := &models.Community{Name: "Joined Space", OwnerID: owner.ID}
	other := &models.Community{Name: "Other Space", OwnerID: owner.ID}
	for _, c := range []*models.Community{joined, other} {
		if err := db.Create(c).Error; err != nil {
			t.Fatalf("create community: %v", err)
		}
	}
	if err := db.Create(&models.Membership{CommunityID: joined.ID, ProfileID: reader.ID}).Error; err != nil {
		t.Fatalf("create membership: %v", err)
	}

	longBody := strings.Repeat("a", 150)
	inFeed := &models.Post{CommunityID: joined.ID, AuthorID: owner.ID, Title: "Visible", Content: longBody}
	outOfFeed := &models.Post{CommunityID: other.ID, AuthorID: owner.ID, Title: "Hidden", Content: "nope"}
	newer := &models.Post{CommunityID: joined.ID, AuthorID: owner.ID, Title: "Visible Newer", Content: "short"}
	for _, p := range []*models.Post{inFeed, outOfFeed, newer} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("create post: %v", err)
		}
	}

	status, body := doJSON(t, app, http.MethodGet, "/api/feed", bearer(t, srv, reader), nil)
	if status != http.StatusOK {
		t.Fatalf("feed returned %d", status)
	}
	items, _ := body["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 feed items, got %d", len(items))
	}
	if int64(body["totalCount"].(float64)) != 2 {
		t.Fatalf("totalCount = %v, want 2", body["totalCount"])
	}

	first := items[0].(map[string]any)
	second := items[1].(map[string]any)
	if first["title"] != "Visible Newer" {
		t.Fatalf("expected newest first, got %v", first["title"])
	}
	for _, item := range items {
		if item.(map[string]any)["title"] == "Hidden" {
			t.Fatalf("post from non-joined community leaked into feed")
		}
	}

	// long bodies are truncated to a snippet with an ellipsis
	snippet, _ := second["content_snippet"].(string)
	if len([]rune(snippet)) != 103 || !strings.HasSuffix(snippet, "...") {
		t.Fatalf("unexpected snippet %q", snippet)
	}
	// short bodies pass through untouched
	if first["content_snippet"] != "short" {
		t.Fatalf("short content was altered: %v", first["content_snippet"])
	}

	// feed items carry author and community summaries
	community, _ := second["community"].(map[string]any)
	if community == nil || community["name"] != "Joined Space" {
		t.Fatalf("missing community summary: %v", second["community"])
	}
	author, _ := second["author"].(map[string]any)
	if author == nil || author["real_name"] != "Owner" {
		t.Fatalf("missing author summary: %v", second["author"])
	}
}
