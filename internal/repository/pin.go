package repository

import (
	"context"

	"pinboard/internal/cache"
	"pinboard/internal/models"

	"gorm.io/gorm"
)

// PinRepository defines the interface for pin data operations
type PinRepository interface {
	Create(ctx context.Context, pin *models.Pin) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Pin, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Pin, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, pin *models.Pin) error
	// Delete removes the pin together with its comments and likes in one
	// transaction (destructive cascade, in contrast with board deletion).
	Delete(ctx context.Context, id uint) error
}

type pinRepository struct {
	db *gorm.DB
}

// NewPinRepository creates a new pin repository
func NewPinRepository(db *gorm.DB) PinRepository {
	return &pinRepository{db: db}
}

func (r *pinRepository) Create(ctx context.Context, pin *models.Pin) error {
	err := r.db.WithContext(ctx).Create(pin).Error
	if err == nil {
		cache.Invalidate(ctx, cache.PinsListKey)
	}
	return recordMutation("pin", "create", err)
}

func (r *pinRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Pin, error) {
	var pin models.Pin

	var err error
	if currentUserID == 0 {
		// Anonymous reads carry no per-viewer state, so they are safe to
		// serve from cache.
		err = cache.Aside(ctx, cache.PinKey(id), &pin, cache.PinTTL, func() error {
			return r.applyPinDetails(r.db.WithContext(ctx), 0).
				Preload("Board").
				First(&pin, id).Error
		})
	} else {
		err = r.applyPinDetails(r.db.WithContext(ctx), currentUserID).
			Preload("Board").
			First(&pin, id).Error
	}
	if err != nil {
		return nil, translateGet(err, "Pin", id)
	}
	return &pin, nil
}

func (r *pinRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Pin, error) {
	var pins []*models.Pin
	err := r.applyPinDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Board").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&pins).Error
	return pins, err
}

func (r *pinRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Pin{}).Count(&count).Error
	return count, err
}

func (r *pinRepository) Update(ctx context.Context, pin *models.Pin) error {
	err := r.db.WithContext(ctx).Save(pin).Error
	if err == nil {
		cache.InvalidatePin(ctx, pin.ID)
	}
	return recordMutation("pin", "update", err)
}

func (r *pinRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pin_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("pin_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Pin{}, id).Error
	})
	if err == nil {
		cache.InvalidatePin(ctx, id)
	}
	return recordMutation("pin", "delete", err)
}

// applyPinDetails adds subqueries to fetch counts and liked status in a single query.
// Counts are computed, never stored, so they cannot drift.
func (r *pinRepository) applyPinDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "pins.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.pin_id = pins.id) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.pin_id = pins.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.pin_id = pins.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}
