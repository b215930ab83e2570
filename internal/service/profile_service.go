package service

import (
	"context"
	"strings"
	"time"

	"realme/internal/cache"
	"realme/internal/models"
	"realme/internal/repository"
	"realme/internal/validation"
)

// ProfileService handles self-service profile reads and updates plus the
// public projection of verified profiles.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

type UpdateProfileInput struct {
	ProfileID uint
	RealName  *string
	Location  *string
	BirthDate *time.Time
}

// PublicProfile is the non-sensitive projection exposed to public listings.
type PublicProfile struct {
	ID        uint      `json:"id"`
	RealName  string    `json:"real_name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

const publicProfilesLimit = 100

func NewProfileService(
	profileRepo repository.ProfileRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		isAdmin:     isAdmin,
	}
}

func (s *ProfileService) GetOwnProfile(ctx context.Context, profileID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Profile", profileID)
	}
	return profile, nil
}

// GetProfile returns the target profile subject to visibility rules: owners
// and administrators see the full row, everyone else sees verified profiles
// only.
func (s *ProfileService) GetProfile(ctx context.Context, callerID, targetID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Profile", targetID)
	}

	if callerID == targetID {
		return profile, nil
	}
	if callerID != 0 {
		admin, err := s.isAdmin(ctx, callerID)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if admin {
			return profile, nil
		}
	}
	if !profile.IsVerified {
		return nil, models.NewNotFoundError("Profile", targetID)
	}
	return profile, nil
}

// UpdateOwnProfile writes self-service fields only. Verification fields are
// reserved for admin endpoints.
func (s *ProfileService) UpdateOwnProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.GetOwnProfile(ctx, in.ProfileID)
	if err != nil {
		return nil, err
	}

	if in.RealName != nil {
		name := strings.TrimSpace(*in.RealName)
		if err := validation.ValidateRealName(name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		profile.RealName = name
	}
	if in.Location != nil {
		profile.Location = strings.TrimSpace(*in.Location)
	}
	if in.BirthDate != nil {
		profile.BirthDate = in.BirthDate
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, models.MapStoreError(err, "Profile", in.ProfileID)
	}
	return profile, nil
}

// ListPublicProfiles serves the public projection cache-aside.
func (s *ProfileService) ListPublicProfiles(ctx context.Context) ([]*PublicProfile, error) {
	var projected []*PublicProfile
	err := cache.Aside(ctx, cache.PublicProfilesKey, &projected, cache.PublicProfilesTTL, func() error {
		profiles, err := s.profileRepo.ListVerified(ctx, publicProfilesLimit)
		if err != nil {
			return err
		}
		projected = make([]*PublicProfile, 0, len(profiles))
		for _, profile := range profiles {
			projected = append(projected, &PublicProfile{
				ID:        profile.ID,
				RealName:  profile.RealName,
				Location:  profile.Location,
				CreatedAt: profile.CreatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if projected == nil {
		projected = []*PublicProfile{}
	}
	return projected, nil
}
