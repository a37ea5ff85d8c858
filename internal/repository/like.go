package repository

import (
	"context"

	"pinboard/internal/cache"
	"pinboard/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines interface for like operations
type LikeRepository interface {
	// Create inserts the like; a duplicate (pin, user) pair surfaces as
	// CONFLICT via the unique index, even when two requests race.
	Create(ctx context.Context, like *models.Like) error
	// Delete removes the like for the (pin, user) pair; NOT_FOUND when
	// none exists.
	Delete(ctx context.Context, pinID, userID uint) error
	ListByPin(ctx context.Context, pinID uint, limit, offset int) ([]*models.Like, error)
	CountByPin(ctx context.Context, pinID uint) (int64, error)
	CountByPinAndUser(ctx context.Context, pinID, userID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	err := translateCreate(
		r.db.WithContext(ctx).Create(like).Error,
		"like", "You have already liked this pin")
	if err == nil {
		// The cached pin detail carries likes_count.
		cache.InvalidatePin(ctx, like.PinID)
	}
	return recordMutation("like", "create", err)
}

func (r *likeRepository) Delete(ctx context.Context, pinID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("pin_id = ? AND user_id = ?", pinID, userID).
		Delete(&models.Like{})
	err := res.Error
	if err == nil && res.RowsAffected == 0 {
		err = models.NewNotFoundError("Like", pinID)
	}
	if err == nil {
		cache.InvalidatePin(ctx, pinID)
	}
	return recordMutation("like", "delete", err)
}

func (r *likeRepository) ListByPin(ctx context.Context, pinID uint, limit, offset int) ([]*models.Like, error) {
	var likes []*models.Like
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("pin_id = ?", pinID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&likes).Error
	return likes, err
}

func (r *likeRepository) CountByPin(ctx context.Context, pinID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("pin_id = ?", pinID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) CountByPinAndUser(ctx context.Context, pinID, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("pin_id = ? AND user_id = ?", pinID, userID).
		Count(&count).Error
	return count, err
}
