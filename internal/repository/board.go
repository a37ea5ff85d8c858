package repository

import (
	"context"

	"pinboard/internal/cache"
	"pinboard/internal/models"

	"gorm.io/gorm"
)

// BoardRepository defines the interface for board data operations
type BoardRepository interface {
	Create(ctx context.Context, board *models.Board) error
	GetByID(ctx context.Context, id uint) (*models.Board, error)
	// ListByOwner returns one owner's boards; board listings are always
	// scoped to a single profile's owner, never global.
	ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]*models.Board, error)
	CountByOwner(ctx context.Context, ownerID uint) (int64, error)
	Update(ctx context.Context, board *models.Board) error
	// DeleteDetachingPins clears board_id on every dependent pin and
	// deletes the board inside one transaction: all pins detach or none do.
	DeleteDetachingPins(ctx context.Context, id uint) error
}

type boardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

func (r *boardRepository) Create(ctx context.Context, board *models.Board) error {
	return recordMutation("board", "create",
		r.db.WithContext(ctx).Create(board).Error)
}

func (r *boardRepository) GetByID(ctx context.Context, id uint) (*models.Board, error) {
	var board models.Board
	if err := r.db.WithContext(ctx).First(&board, id).Error; err != nil {
		return nil, translateGet(err, "Board", id)
	}
	return &board, nil
}

func (r *boardRepository) ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]*models.Board, error) {
	var boards []*models.Board
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&boards).Error
	return boards, err
}

func (r *boardRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Board{}).
		Where("user_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

func (r *boardRepository) Update(ctx context.Context, board *models.Board) error {
	return recordMutation("board", "update",
		r.db.WithContext(ctx).Save(board).Error)
}

func (r *boardRepository) DeleteDetachingPins(ctx context.Context, id uint) error {
	var pinIDs []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Pin{}).
			Where("board_id = ?", id).
			Pluck("id", &pinIDs).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Pin{}).
			Where("board_id = ?", id).
			Update("board_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Board{}, id).Error
	})
	if err != nil {
		return recordMutation("board", "delete", err)
	}

	// Detached pins would otherwise serve their old board from cache
	// until the TTL runs out.
	for _, pinID := range pinIDs {
		cache.InvalidatePin(ctx, pinID)
	}
	cache.Invalidate(ctx, cache.PinsListKey)
	return recordMutation("board", "delete", nil)
}
