package service

import (
	"context"

	"pinboard/internal/models"
	"pinboard/internal/pagination"
	"pinboard/internal/repository"
)

// FollowService provides follow-edge business logic.
type FollowService struct {
	followRepo  repository.FollowRepository
	profileRepo repository.ProfileRepository
	pageSize    int
}

// NewFollowService returns a new FollowService. pageSize governs follower
// and following listings.
func NewFollowService(
	followRepo repository.FollowRepository,
	profileRepo repository.ProfileRepository,
	pageSize int,
) *FollowService {
	return &FollowService{
		followRepo:  followRepo,
		profileRepo: profileRepo,
		pageSize:    pageSize,
	}
}

// Follow creates an edge from the actor to the profile behind targetSlug.
// Self-follows are rejected explicitly; duplicate edges surface as CONFLICT
// from the unique index even under concurrent requests.
func (s *FollowService) Follow(ctx context.Context, actorID uint, targetSlug string) (*models.Follow, error) {
	target, err := s.profileRepo.GetBySlug(ctx, targetSlug)
	if err != nil {
		return nil, err
	}
	if target.UserID == actorID {
		return nil, models.NewConflictError("You cannot follow yourself")
	}

	follow := &models.Follow{
		FollowerID: actorID,
		FollowedID: target.UserID,
	}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		return nil, err
	}
	return follow, nil
}

// Unfollow removes the actor's edge to the profile behind targetSlug.
// Retrying an unfollow reaches the same terminal state; the second attempt
// reports NOT_FOUND.
func (s *FollowService) Unfollow(ctx context.Context, actorID uint, targetSlug string) error {
	target, err := s.profileRepo.GetBySlug(ctx, targetSlug)
	if err != nil {
		return err
	}
	return s.followRepo.Delete(ctx, actorID, target.UserID)
}

// ListFollowers returns one page of edges pointing at the profile's user,
// newest first.
func (s *FollowService) ListFollowers(ctx context.Context, targetSlug string, page int) ([]*models.Follow, pagination.Page, error) {
	target, err := s.profileRepo.GetBySlug(ctx, targetSlug)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	total, err := s.followRepo.CountFollowers(ctx, target.UserID)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	pg, err := pagination.Resolve(total, s.pageSize, page)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	follows, err := s.followRepo.ListFollowers(ctx, target.UserID, pg.Size, pg.Offset)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return follows, pg, nil
}

// ListFollowing returns one page of edges originating from the profile's
// user, newest first.
func (s *FollowService) ListFollowing(ctx context.Context, slug string, page int) ([]*models.Follow, pagination.Page, error) {
	source, err := s.profileRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	total, err := s.followRepo.CountFollowing(ctx, source.UserID)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	pg, err := pagination.Resolve(total, s.pageSize, page)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	follows, err := s.followRepo.ListFollowing(ctx, source.UserID, pg.Size, pg.Offset)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return follows, pg, nil
}
