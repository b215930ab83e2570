package server

import (
	"fmt"
	"net/http"
	"testing"

	"realme/internal/models"
)

func TestJoinAndLeaveCommunity(t *testing.T) {
	t.Parallel()

	srv, app, db := newTestApp(t, nil)
	owner := createTestAccount(t, db, "Owner")
	member := createTestAccount(t, db, "Member")
	auth := bearer(t, srv, member)

	community := &models.Community{Name: "Joinable", OwnerID: owner.ID}
	if err := db.Create(community).Error; err != nil {
		t.Fatalf("create community: %v", err)
	}
	membersPath := fmt.Sprintf("/api/communities/%d/members", community.ID)

	status, _ := doJSON(t, app, http.MethodPost, membersPath, auth, nil)
	if status != http.StatusNoContent {
		t.Fatalf("join returned %d, want 204", status)
	}

	// joining twice conflicts
	status, body := doJSON(t, app, http.MethodPost, membersPath, auth, nil)
	if status != http.StatusConflict {
		t.Fatalf("second join returned %d, want 409", status)
	}
	if body["error"] != "Already a member of this community" {
		t.Fatalf("unexpected error %v", body["error"])
	}

	status, _ = doJSON(t, app, http.MethodDelete, membersPath+"/me", auth, nil)
	if status != http.StatusNoContent {
		t.Fatalf("leave returned %d, want 204", status)
	}

	// leaving without a membership is a 404
	status, _ = doJSON(t, app, http.MethodDelete, membersPath+"/me", auth, nil)
	if status != http.StatusNotFound {
		t.Fatalf("second leave returned %d, want 404", status)
	}

	// joining a community that does not exist is a 404
	status, _ = doJSON(t, app, http.MethodPost, "/api/communities/99999/members", auth, nil)
	if status != http.StatusNotFound {
		t.Fatalf("join missing community returned %d, want 404", status)
	}
}

func TestRemoveMemberRules(t *testing.T) {
	t.Parallel()

	srv, app, db := newTestApp(t, nil)
	owner := createTestAccount(t, db, "Owner")
	target := createTestAccount(t, db, "Target")
	bystander := createTestAccount(t, db, "Bystander")

	community := &models.Community{Name: "Moderated", OwnerID: owner.ID}
	if err := db.Create(community).Error; err != nil {
		t.Fatalf("create community: %v", err)
	}
	for _, profileID := range []uint{owner.ID, target.ID, bystander.ID} {
		if err := db.Create(&models.Membership{CommunityID: community.ID, ProfileID: profileID}).Error; err != nil {
			t.Fatalf("create membership: %v", err)
		}
	}
	memberPath := func(profileID uint) string {
		return fmt.Sprintf("/api/communities/%d/members/%d", community.ID, profileID)
	}

	// a regular member cannot remove others
	status, _ := doJSON(t, app, http.MethodDelete, memberPath(target.ID), bearer(t, srv, bystander), nil)
	if status != http.StatusForbidden {
		t.Fatalf("bystander removal returned %d, want 403", status)
	}

	// the owner cannot remove themselves through this route
	status, body := doJSON(t, app, http.MethodDelete, memberPath(owner.ID), bearer(t, srv, owner), nil)
	if status != http.StatusBadRequest {
		t.Fatalf("self removal returned %d, want 400", status)
	}
	if body["error"] != "You cannot remove yourself with this route." {
		t.Fatalf("unexpected error %v", body["error"])
	}

	// the owner removes the target
	status, _ = doJSON(t, app, http.MethodDelete, memberPath(target.ID), bearer(t, srv, owner), nil)
	if status != http.StatusNoContent {
		t.Fatalf("owner removal returned %d, want 204", status)
	}

	var count int64
	if err := db.Model(&models.Membership{}).
		Where("community_id = ? AND profile_id = ?", community.ID, target.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count memberships: %v", err)
	}
	if count != 0 {
		t.Fatalf("membership row still present after removal")
	}

	// removing an absent member is a 404
	status, _ = doJSON(t, app, http.MethodDelete, memberPath(target.ID), bearer(t, srv, owner), nil)
	if status != http.StatusNotFound {
		t.Fatalf("repeat removal returned %d, want 404", status)
	}

	// a platform admin who is neither owner nor member may remove members
	admin := createTestAccount(t, db, "Admin")
	makeAdmin(t, db, admin.ID)
	status, _ = doJSON(t, app, http.MethodDelete, memberPath(bystander.ID), bearer(t, srv, admin), nil)
	if status != http.StatusNoContent {
		t.Fatalf("admin removal returned %d, want 204", status)
	}
}
