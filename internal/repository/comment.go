package repository

import (
	"context"

	"pinboard/internal/cache"
	"pinboard/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPin(ctx context.Context, pinID uint, limit, offset int) ([]*models.Comment, error)
	CountByPin(ctx context.Context, pinID uint) (int64, error)
	Update(ctx context.Context, comment *models.Comment) error
	// Delete takes the loaded comment rather than an ID so the owning
	// pin's cache entries can be invalidated.
	Delete(ctx context.Context, comment *models.Comment) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Create(comment).Error
	if err == nil {
		// The cached pin detail carries comments_count.
		cache.InvalidatePin(ctx, comment.PinID)
	}
	return recordMutation("comment", "create", err)
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return nil, translateGet(err, "Comment", id)
	}
	return &comment, nil
}

func (r *commentRepository) ListByPin(ctx context.Context, pinID uint, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("pin_id = ?", pinID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) CountByPin(ctx context.Context, pinID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("pin_id = ?", pinID).
		Count(&count).Error
	return count, err
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Save(comment).Error
	if err == nil {
		cache.InvalidatePin(ctx, comment.PinID)
	}
	return recordMutation("comment", "update", err)
}

func (r *commentRepository) Delete(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Delete(&models.Comment{}, comment.ID).Error
	if err == nil {
		cache.InvalidatePin(ctx, comment.PinID)
	}
	return recordMutation("comment", "delete", err)
}
