package server

import (
	"fmt"
	"net/http"
	"testing"

	"realme/internal/models"
)

func TestProfileVisibilityRules(t *testing.T) {
	t.Parallel()

	srv, app, db := newTestApp(t, nil)
	verified := createTestAccount(t, db, "Verified Vera")
	unverified := createTestAccount(t, db, "Hidden Hank")
	viewer := createTestAccount(t, db, "Viewer")
	admin := createTestAccount(t, db, "Admin")
	makeAdmin(t, db, admin.ID)

	if err := db.Model(&models.Profile{}).Where("id = ?", verified.ID).
		Update("is_verified", true).Error; err != nil {
		t.Fatalf("verify profile: %v", err)
	}

	verifiedPath := fmt.Sprintf("/api/profiles/%d", verified.ID)
	unverifiedPath := fmt.Sprintf("/api/profiles/%d", unverified.ID)

	// anyone, including anonymous callers, can read a verified profile
	status, body := doJSON(t, app, http.MethodGet, verifiedPath, "", nil)
	if status != http.StatusOK {
		t.Fatalf("anon read of verified profile returned %d", status)
	}
	if body["real_name"] != "Verified Vera" {
		t.Fatalf("unexpected profile %v", body)
	}

	// unverified profiles read as not found for strangers
	status, _ = doJSON(t, app, http.MethodGet, unverifiedPath, "", nil)
	if status != http.StatusNotFound {
		t.Fatalf("anon read of unverified profile returned %d, want 404", status)
	}
	status, _ = doJSON(t, app, http.MethodGet, unverifiedPath, bearer(t, srv, viewer), nil)
	if status != http.StatusNotFound {
		t.Fatalf("stranger read of unverified profile returned %d, want 404", status)
	}

	// the owner and admins see it regardless
	status, _ = doJSON(t, app, http.MethodGet, unverifiedPath, bearer(t, srv, unverified), nil)
	if status != http.StatusOK {
		t.Fatalf("owner read returned %d", status)
	}
	status, _ = doJSON(t, app, http.MethodGet, unverifiedPath, bearer(t, srv, admin), nil)
	if status != http.StatusOK {
		t.Fatalf("admin read returned %d", status)
	}
}

func TestUpdateOwnProfile(t *testing.T) {
	t.Parallel()

	srv, app, db := newTestApp(t, nil)
	profile := createTestAccount(t, db, "Original Name")
	auth := bearer(t, srv, profile)

	status, body := doJSON(t, app, http.MethodPatch, "/api/profiles/me", auth, map[string]any{
		"real_name":  "New Name",
		"location":   "Lisbon, Portugal",
		"birth_date": "1990-04-15",
	})
	if status != http.StatusOK {
		t.Fatalf("update returned %d: %v", status, body)
	}
	if body["real_name"] != "New Name" || body["location"] != "Lisbon, Portugal" {
		t.Fatalf("fields not updated: %v", body)
	}
	if body["birth_date"] != "1990-04-15" {
		t.Fatalf("birth_date = %v", body["birth_date"])
	}

	status, _ = doJSON(t, app, http.MethodPatch, "/api/profiles/me", auth, map[string]any{
		"birth_date": "April 15, 1990",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("bad birth_date returned %d, want 400", status)
	}

	status, _ = doJSON(t, app, http.MethodPatch, "/api/profiles/me", "", map[string]any{
		"real_name": "Anon",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("anonymous update returned %d, want 401", status)
	}
}

func TestListPublicProfilesProjection(t *testing.T) {
	t.Parallel()

	_, app, db := newTestApp(t, nil)
	shown := createTestAccount(t, db, "Shown")
	hidden := createTestAccount(t, db, "Hidden")

	if err := db.Model(&models.Profile{}).Where("id = ?", shown.ID).
		Update("is_verified", true).Error; err != nil {
		t.Fatalf("verify profile: %v", err)
	}
	_ = hidden

	status, body := doJSON(t, app, http.MethodGet, "/api/profiles", "", nil)
	if status != http.StatusOK {
		t.Fatalf("list returned %d", status)
	}
	items, _ := body["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 public profile, got %d", len(items))
	}
	item := items[0].(map[string]any)
	if item["real_name"] != "Shown" {
		t.Fatalf("unexpected profile %v", item)
	}
	// the public projection must not leak sensitive fields
	for _, field := range []string{"email", "birth_date", "verification_notes"} {
		if _, present := item[field]; present {
			t.Fatalf("public projection leaked %s", field)
		}
	}
}
