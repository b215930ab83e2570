package server

import (
	"fmt"
	"net/http"
	"testing"

	"realme/internal/featureflags"
	"realme/internal/models"
)

func TestAdminEndpointsRequireAdminRow(t *testing.T) {
	t.Parallel()

	srv, app, db := newTestApp(t, nil)
	regular := createTestAccount(t, db, "Regular")
	auth := bearer(t, srv, regular)

	calls := []struct {
		method string
		path   string
		body   map[string]any
	}{
		{http.MethodPost, "/api/admin/verify-profile", map[string]any{"profile_id": regular.ID}},
		{http.MethodPost, "/api/admin/add-admin", map[string]any{"user_id": regular.ID}},
		{http.MethodDelete, "/api/admin/remove-admin/12345", nil},
		{http.MethodGet, "/api/admin/list", nil},
		{http.MethodGet, "/api/admin/flags", nil},
	}
	for _, call := range calls {
		status, _ := doJSON(t, app, call.method, call.path, auth, call.body)
		if status != http.StatusForbidden {
			t.Fatalf("%s %s returned %d for non-admin, want 403", call.method, call.path, status)
		}

		status, _ = doJSON(t, app, call.method, call.path, "", call.body)
		if status != http.StatusUnauthorized {
			t.Fatalf("%s %s returned %d for anonymous, want 401", call.method, call.path, status)
		}
	}
}

func TestVerifyProfileRecordsVerifier(t *testing.T) {
	t.Parallel()

	srv, app, db := newTestApp(t, nil)
	admin := createTestAccount(t, db, "Admin")
	makeAdmin(t, db, admin.ID)
	target := createTestAccount(t, db, "Target")

	status, body := doJSON(t, app, http.MethodPost, "/api/admin/verify-profile", bearer(t, srv, admin), map[string]any{
		"profile_id": target.ID,
		"notes":      "checked documents",
	})
	if status != http.StatusOK {
		t.Fatalf("verify returned %d: %v", status, body)
	}
	if body["is_verified"] != true {
		t.Fatalf("profile not verified: %v", body)
	}
	if body["verification_date"] == "" || body["verification_date"] == nil {
		t.Fatalf("verification_date missing: %v", body)
	}

	var reloaded models.Profile
	if err := db.First(&reloaded, target.ID).Error; err != nil {
		t.Fatalf("reload profile: %v", err)
	}
	if reloaded.VerifiedBy == nil || *reloaded.VerifiedBy != admin.ID {
		t.Fatalf("verified_by not recorded")
	}
	if reloaded.VerificationNotes != "checked documents" {
		t.Fatalf("notes not recorded: %q", reloaded.VerificationNotes)
	}

	// verifying a missing profile is a 404
	status, _ = doJSON(t, app, http.MethodPost, "/api/admin/verify-profile", bearer(t, srv, admin), map[string]any{
		"profile_id": 99999,
	})
	if status != http.StatusNotFound {
		t.Fatalf("verify missing profile returned %d, want 404", status)
	}
}

func TestAdminRosterLifecycle(t *testing.T) {
	t.Parallel()

	srv, app, db := newTestApp(t, nil)
	admin := createTestAccount(t, db, "First Admin")
	makeAdmin(t, db, admin.ID)
	promoted := createTestAccount(t, db, "Promoted")
	auth := bearer(t, srv, admin)

	status, body := doJSON(t, app, http.MethodPost, "/api/admin/add-admin", auth, map[string]any{
		"user_id": promoted.ID,
		"notes":   "trusted moderator",
	})
	if status != http.StatusCreated {
		t.Fatalf("add-admin returned %d: %v", status, body)
	}
	if uint(body["user_id"].(float64)) != promoted.ID {
		t.Fatalf("unexpected user_id %v", body["user_id"])
	}
	if uint(body["created_by"].(float64)) != admin.ID {
		t.Fatalf("unexpected created_by %v", body["created_by"])
	}

	// promoting twice conflicts
	status, body = doJSON(t, app, http.MethodPost, "/api/admin/add-admin", auth, map[string]any{
		"user_id": promoted.ID,
	})
	if status != http.StatusConflict {
		t.Fatalf("duplicate add-admin returned %d, want 409", status)
	}
	if body["error"] != "User is already an admin" {
		t.Fatalf("unexpected error %v", body["error"])
	}

	// the new admin can use admin endpoints immediately
	status, body = doJSON(t, app, http.MethodGet, "/api/admin/list", bearer(t, srv, promoted), nil)
	if status != http.StatusOK {
		t.Fatalf("list returned %d", status)
	}
	items, _ := body["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 admins, got %d", len(items))
	}

	// self-demotion is rejected
	status, body = doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/admin/remove-admin/%d", admin.ID), auth, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("self removal returned %d, want 400", status)
	}
	if body["error"] != "You cannot remove yourself as an admin" {
		t.Fatalf("unexpected error %v", body["error"])
	}

	// removing the other admin works, and their access drops at once
	status, _ = doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/admin/remove-admin/%d", promoted.ID), auth, nil)
	if status != http.StatusNoContent {
		t.Fatalf("remove-admin returned %d, want 204", status)
	}
	status, _ = doJSON(t, app, http.MethodGet, "/api/admin/list", bearer(t, srv, promoted), nil)
	if status != http.StatusForbidden {
		t.Fatalf("demoted admin list returned %d, want 403", status)
	}

	// removing a non-admin is a 404
	bystander := createTestAccount(t, db, "Bystander")
	status, _ = doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/admin/remove-admin/%d", bystander.ID), auth, nil)
	if status != http.StatusNotFound {
		t.Fatalf("remove non-admin returned %d, want 404", status)
	}
}

func TestListFeatureFlagsForAdmin(t *testing.T) {
	t.Parallel()

	srv, app, db := newTestApp(t, nil)
	srv.flags = featureflags.NewManager("new_feed=on,legacy_search=off")
	admin := createTestAccount(t, db, "Flag Admin")
	makeAdmin(t, db, admin.ID)

	status, body := doJSON(t, app, http.MethodGet, "/api/admin/flags", bearer(t, srv, admin), nil)
	if status != http.StatusOK {
		t.Fatalf("flags returned %d: %v", status, body)
	}

	flags, _ := body["flags"].(map[string]any)
	if flags["new_feed"] != "on" || flags["legacy_search"] != "off" {
		t.Fatalf("unexpected raw flags: %v", flags)
	}
	evaluated, _ := body["evaluated"].(map[string]any)
	if evaluated["new_feed"] != true || evaluated["legacy_search"] != false {
		t.Fatalf("unexpected evaluation: %v", evaluated)
	}
}
