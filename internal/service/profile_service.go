package service

import (
	"context"
	"fmt"
	"strings"

	"pinboard/internal/authz"
	"pinboard/internal/cache"
	"pinboard/internal/models"
	"pinboard/internal/repository"
	"pinboard/internal/slugify"
	"pinboard/internal/storage"
	"pinboard/internal/validation"
)

// maxSlugAttempts bounds the collision retry loop for derived usernames.
const maxSlugAttempts = 50

// ProfileService provides profile business logic, including the automatic
// profile creation that runs as a user post-create hook.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	images      storage.Store
}

// UpdateProfileInput carries a partial profile update. Nil fields are left
// unchanged.
type UpdateProfileInput struct {
	ActorID   uint
	Slug      string
	Username  *string
	FirstName *string
	LastName  *string
	Bio       *string
	// Avatar is a newly stored image reference; empty means unchanged.
	Avatar string
}

// NewProfileService returns a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, images storage.Store) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		images:      images,
	}
}

// CreateForUser derives a default profile from the user's email local-part
// and creates it. It is registered as a user post-create lifecycle hook and
// is never reachable from a client request. Colliding derived usernames get
// a numeric suffix rather than failing registration.
func (s *ProfileService) CreateForUser(ctx context.Context, user *models.User) error {
	base := deriveUsername(user.Email)

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		username := slugify.WithSuffix(base, attempt)
		if len(username) > 20 {
			username = username[len(username)-20:]
		}
		profile := &models.Profile{
			UserID:   user.ID,
			Username: username,
			Slug:     slugify.Slugify(username),
		}
		err := s.profileRepo.Create(ctx, profile)
		if err == nil {
			user.Profile = profile
			return nil
		}
		if !models.IsCode(err, models.CodeConflict) {
			return err
		}
	}
	return fmt.Errorf("could not derive a unique username for %q", user.Email)
}

// GetBySlug returns the profile for a slug.
func (s *ProfileService) GetBySlug(ctx context.Context, slug string) (*models.Profile, error) {
	return s.profileRepo.GetBySlug(ctx, slug)
}

// Update applies a partial update. Changing the username re-derives the
// slug in the same write so the two are never inconsistent; replacing the
// avatar deletes the previously stored image synchronously.
func (s *ProfileService) Update(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetBySlug(ctx, in.Slug)
	if err != nil {
		return nil, err
	}
	if !authz.CanMutate(in.ActorID, profile) {
		return nil, models.NewForbiddenError("You can only update your own profile")
	}

	oldSlug := profile.Slug
	oldAvatar := profile.Avatar

	if in.Username != nil && *in.Username != profile.Username {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		newSlug := slugify.Slugify(*in.Username)
		taken, err := s.profileRepo.UsernameTaken(ctx, *in.Username, newSlug, profile.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.NewConflictError("Username already taken")
		}
		profile.Username = *in.Username
		profile.Slug = newSlug
	}
	if in.FirstName != nil {
		profile.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		profile.LastName = *in.LastName
	}
	if in.Bio != nil {
		profile.Bio = *in.Bio
	}
	if in.Avatar != "" {
		profile.Avatar = in.Avatar
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	cache.InvalidateProfile(ctx, oldSlug)
	if profile.Slug != oldSlug {
		cache.InvalidateProfile(ctx, profile.Slug)
	}

	// No orphan files: the replaced avatar is removed as part of the
	// update, not left for a sweeper.
	if in.Avatar != "" && oldAvatar != "" && oldAvatar != in.Avatar {
		if err := s.images.Delete(ctx, oldAvatar); err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	return profile, nil
}

// deriveUsername takes the email local-part and strips characters the
// username policy rejects.
func deriveUsername(email string) string {
	local := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		local = email[:at]
	}

	var b strings.Builder
	for _, r := range local {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case r == '.', r == '+':
			b.WriteByte('-')
		}
	}
	username := strings.Trim(b.String(), "_-")
	if len(username) < 3 {
		username = "user" + username
	}
	if len(username) > 20 {
		username = username[:20]
	}
	return username
}
