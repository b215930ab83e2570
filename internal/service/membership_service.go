package service

import (
	"context"

	"realme/internal/models"
	"realme/internal/repository"
)

// MembershipService handles joining, leaving, and moderator removal.
type MembershipService struct {
	membershipRepo repository.MembershipRepository
	communityRepo  repository.CommunityRepository
	isAdmin        func(ctx context.Context, userID uint) (bool, error)
}

type RemoveMemberInput struct {
	CallerID        uint
	CommunityID     uint
	TargetProfileID uint
}

func NewMembershipService(
	membershipRepo repository.MembershipRepository,
	communityRepo repository.CommunityRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *MembershipService {
	return &MembershipService{
		membershipRepo: membershipRepo,
		communityRepo:  communityRepo,
		isAdmin:        isAdmin,
	}
}

func (s *MembershipService) Join(ctx context.Context, communityID, profileID uint) error {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if community == nil {
		return models.NewNotFoundError("Community", communityID)
	}

	membership := &models.Membership{CommunityID: communityID, ProfileID: profileID}
	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		mapped := models.MapStoreError(err, "Membership", communityID)
		if mapped.Code == "CONFLICT" {
			return models.NewConflictError("Already a member of this community")
		}
		return mapped
	}
	return nil
}

func (s *MembershipService) Leave(ctx context.Context, communityID, profileID uint) error {
	affected, err := s.membershipRepo.Delete(ctx, communityID, profileID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if affected == 0 {
		return models.NewNotFoundError("Membership", communityID)
	}
	return nil
}

// RemoveMember removes another member on behalf of the community owner or an
// administrator. Self-removal must go through Leave.
func (s *MembershipService) RemoveMember(ctx context.Context, in RemoveMemberInput) error {
	if in.TargetProfileID == in.CallerID {
		return models.NewValidationError("You cannot remove yourself with this route.")
	}

	community, err := s.communityRepo.GetByID(ctx, in.CommunityID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if community == nil {
		return models.NewNotFoundError("Community", in.CommunityID)
	}

	if community.OwnerID != in.CallerID {
		admin, err := s.isAdmin(ctx, in.CallerID)
		if err != nil {
			return models.NewInternalError(err)
		}
		if !admin {
			return models.NewForbiddenError("Only the community owner or an administrator can remove members")
		}
	}

	affected, err := s.membershipRepo.Delete(ctx, in.CommunityID, in.TargetProfileID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if affected == 0 {
		return models.NewNotFoundError("Membership", in.TargetProfileID)
	}
	return nil
}
