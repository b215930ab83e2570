package service

import (
	"context"
	"strings"
	"time"

	"realme/internal/cache"
	"realme/internal/models"
	"realme/internal/repository"
)

// AdminService handles administrator management and profile verification.
// Every operation re-checks the caller's admin row; there is no cached role.
type AdminService struct {
	adminRepo   repository.AdminRepository
	profileRepo repository.ProfileRepository
}

type AddAdminInput struct {
	CallerID     uint
	TargetUserID uint
	Notes        string
}

type VerifyProfileInput struct {
	CallerID          uint
	ProfileID         uint
	VerificationNotes string
}

func NewAdminService(
	adminRepo repository.AdminRepository,
	profileRepo repository.ProfileRepository,
) *AdminService {
	return &AdminService{
		adminRepo:   adminRepo,
		profileRepo: profileRepo,
	}
}

func (s *AdminService) requireAdmin(ctx context.Context, callerID uint, action string) error {
	admin, err := s.adminRepo.IsAdmin(ctx, callerID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !admin {
		return models.NewForbiddenError("Only administrators can " + action)
	}
	return nil
}

func (s *AdminService) AddAdmin(ctx context.Context, in AddAdminInput) (*models.Admin, error) {
	if err := s.requireAdmin(ctx, in.CallerID, "add admins"); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByID(ctx, in.TargetUserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Profile", in.TargetUserID)
	}

	existing, err := s.adminRepo.GetByUserID(ctx, in.TargetUserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if existing != nil {
		return nil, models.NewConflictError("User is already an admin")
	}

	admin := &models.Admin{
		UserID:    in.TargetUserID,
		CreatedBy: in.CallerID,
		Notes:     strings.TrimSpace(in.Notes),
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, models.MapStoreError(err, "Admin", in.TargetUserID)
	}
	return admin, nil
}

func (s *AdminService) RemoveAdmin(ctx context.Context, callerID, targetUserID uint) error {
	if err := s.requireAdmin(ctx, callerID, "remove admins"); err != nil {
		return err
	}
	if targetUserID == callerID {
		return models.NewValidationError("You cannot remove yourself as an admin")
	}

	affected, err := s.adminRepo.DeleteByUserID(ctx, targetUserID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if affected == 0 {
		return models.NewNotFoundError("Admin", targetUserID)
	}
	return nil
}

// VerifyProfile marks the target profile verified and records who did it.
func (s *AdminService) VerifyProfile(ctx context.Context, in VerifyProfileInput) (*models.Profile, error) {
	if err := s.requireAdmin(ctx, in.CallerID, "verify profiles"); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByID(ctx, in.ProfileID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Profile", in.ProfileID)
	}

	now := time.Now().UTC()
	callerID := in.CallerID
	profile.IsVerified = true
	profile.VerificationDate = &now
	profile.VerifiedBy = &callerID
	profile.VerificationNotes = strings.TrimSpace(in.VerificationNotes)

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, models.MapStoreError(err, "Profile", in.ProfileID)
	}
	cache.InvalidateProfile(ctx, profile.ID)
	return profile, nil
}

func (s *AdminService) ListAdmins(ctx context.Context, callerID uint) ([]*models.Admin, error) {
	if err := s.requireAdmin(ctx, callerID, "list admins"); err != nil {
		return nil, err
	}
	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return admins, nil
}
