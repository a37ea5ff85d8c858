package repository

import (
	"context"
	"errors"

	"pinboard/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetBySlug(ctx context.Context, slug string) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	// Update persists username and slug together; the two must never be
	// stored inconsistently.
	Update(ctx context.Context, profile *models.Profile) error
	// UsernameTaken reports whether another profile already uses the
	// username or slug.
	UsernameTaken(ctx context.Context, username, slug string, excludeID uint) (bool, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return recordMutation("profile", "create", translateCreate(
		r.db.WithContext(ctx).Create(profile).Error,
		"profile", "Username already taken"))
}

func (r *profileRepository) GetBySlug(ctx context.Context, slug string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&profile).Error
	if err != nil {
		return nil, translateGet(err, "Profile", slug)
	}
	return &profile, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, translateGet(err, "Profile", userID)
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	return recordMutation("profile", "update", translateCreate(
		r.db.WithContext(ctx).Save(profile).Error,
		"profile", "Username already taken"))
}

func (r *profileRepository) UsernameTaken(ctx context.Context, username, slug string, excludeID uint) (bool, error) {
	var existing models.Profile
	err := r.db.WithContext(ctx).
		Where("(username = ? OR slug = ?) AND id <> ?", username, slug, excludeID).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
