package repository

import (
	"context"

	"pinboard/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines interface for follow-edge operations
type FollowRepository interface {
	// Create inserts the edge; a duplicate ordered pair surfaces as
	// CONFLICT via the unique index.
	Create(ctx context.Context, follow *models.Follow) error
	// Delete removes the edge; NOT_FOUND when none exists.
	Delete(ctx context.Context, followerID, followedID uint) error
	// ListFollowers returns edges pointing at the user, newest first with
	// id as the tiebreak so the order is stable under equal timestamps.
	ListFollowers(ctx context.Context, followedID uint, limit, offset int) ([]*models.Follow, error)
	CountFollowers(ctx context.Context, followedID uint) (int64, error)
	ListFollowing(ctx context.Context, followerID uint, limit, offset int) ([]*models.Follow, error)
	CountFollowing(ctx context.Context, followerID uint) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	return recordMutation("follow", "create", translateCreate(
		r.db.WithContext(ctx).Create(follow).Error,
		"follow", "You are already following this user"))
}

func (r *followRepository) Delete(ctx context.Context, followerID, followedID uint) error {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{})
	err := res.Error
	if err == nil && res.RowsAffected == 0 {
		err = models.NewNotFoundError("Follow", followedID)
	}
	return recordMutation("follow", "delete", err)
}

func (r *followRepository) ListFollowers(ctx context.Context, followedID uint, limit, offset int) ([]*models.Follow, error) {
	var follows []*models.Follow
	err := r.db.WithContext(ctx).
		Preload("Follower").
		Preload("Follower.Profile").
		Where("followed_id = ?", followedID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&follows).Error
	return follows, err
}

func (r *followRepository) CountFollowers(ctx context.Context, followedID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("followed_id = ?", followedID).
		Count(&count).Error
	return count, err
}

func (r *followRepository) ListFollowing(ctx context.Context, followerID uint, limit, offset int) ([]*models.Follow, error) {
	var follows []*models.Follow
	err := r.db.WithContext(ctx).
		Preload("Followed").
		Preload("Followed.Profile").
		Where("follower_id = ?", followerID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&follows).Error
	return follows, err
}

func (r *followRepository) CountFollowing(ctx context.Context, followerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Count(&count).Error
	return count, err
}
