package service

import (
	"context"

	"pinboard/internal/models"
	"pinboard/internal/pagination"
	"pinboard/internal/repository"
)

// LikeService provides like business logic. A like carries no payload; it
// is pure membership in the (pin, user) set.
type LikeService struct {
	likeRepo repository.LikeRepository
	pinRepo  repository.PinRepository
	pageSize int
}

// NewLikeService returns a new LikeService.
func NewLikeService(
	likeRepo repository.LikeRepository,
	pinRepo repository.PinRepository,
	pageSize int,
) *LikeService {
	return &LikeService{
		likeRepo: likeRepo,
		pinRepo:  pinRepo,
		pageSize: pageSize,
	}
}

// AddLike records the actor's like on the pin. Liking a pin twice is
// CONFLICT, enforced by the unique index rather than a lookup.
func (s *LikeService) AddLike(ctx context.Context, actorID, pinID uint) (*models.Like, error) {
	if _, err := s.pinRepo.GetByID(ctx, pinID, actorID); err != nil {
		return nil, err
	}

	like := &models.Like{
		PinID:  pinID,
		UserID: actorID,
	}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		return nil, err
	}
	return like, nil
}

// RemoveLike withdraws the actor's like; NOT_FOUND when no like exists.
// Only the actor's own like is reachable, so no ownership check is needed.
func (s *LikeService) RemoveLike(ctx context.Context, actorID, pinID uint) error {
	if _, err := s.pinRepo.GetByID(ctx, pinID, actorID); err != nil {
		return err
	}
	return s.likeRepo.Delete(ctx, pinID, actorID)
}

// ListLikes returns one page of the pin's likes.
func (s *LikeService) ListLikes(ctx context.Context, pinID uint, page int) ([]*models.Like, pagination.Page, error) {
	if _, err := s.pinRepo.GetByID(ctx, pinID, 0); err != nil {
		return nil, pagination.Page{}, err
	}

	total, err := s.likeRepo.CountByPin(ctx, pinID)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	pg, err := pagination.Resolve(total, s.pageSize, page)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	likes, err := s.likeRepo.ListByPin(ctx, pinID, pg.Size, pg.Offset)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return likes, pg, nil
}
