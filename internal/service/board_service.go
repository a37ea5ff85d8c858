package service

import (
	"context"
	"unicode/utf8"

	"pinboard/internal/authz"
	"pinboard/internal/models"
	"pinboard/internal/pagination"
	"pinboard/internal/repository"
)

const maxBoardTitleLen = 50

// BoardService provides board business logic.
type BoardService struct {
	boardRepo   repository.BoardRepository
	profileRepo repository.ProfileRepository
	pageSize    int
}

// CreateBoardInput carries a board creation request.
type CreateBoardInput struct {
	OwnerID     uint
	Title       string
	Description string
}

// UpdateBoardInput carries a board update. Nil fields are left unchanged.
type UpdateBoardInput struct {
	ActorID     uint
	BoardID     uint
	Title       *string
	Description *string
}

// NewBoardService returns a new BoardService.
func NewBoardService(
	boardRepo repository.BoardRepository,
	profileRepo repository.ProfileRepository,
	pageSize int,
) *BoardService {
	return &BoardService{
		boardRepo:   boardRepo,
		profileRepo: profileRepo,
		pageSize:    pageSize,
	}
}

// CreateBoard creates a board owned by the actor.
func (s *BoardService) CreateBoard(ctx context.Context, in CreateBoardInput) (*models.Board, error) {
	if err := validateBoardTitle(in.Title); err != nil {
		return nil, err
	}

	board := &models.Board{
		UserID:      in.OwnerID,
		Title:       in.Title,
		Description: in.Description,
	}
	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// GetBoard returns a board by ID.
func (s *BoardService) GetBoard(ctx context.Context, id uint) (*models.Board, error) {
	return s.boardRepo.GetByID(ctx, id)
}

// UpdateBoard applies a partial update; owner-only.
func (s *BoardService) UpdateBoard(ctx context.Context, in UpdateBoardInput) (*models.Board, error) {
	board, err := s.boardRepo.GetByID(ctx, in.BoardID)
	if err != nil {
		return nil, err
	}
	if !authz.CanMutate(in.ActorID, board) {
		return nil, models.NewForbiddenError("You can only update your own boards")
	}

	if in.Title != nil {
		if err := validateBoardTitle(*in.Title); err != nil {
			return nil, err
		}
		board.Title = *in.Title
	}
	if in.Description != nil {
		board.Description = *in.Description
	}

	if err := s.boardRepo.Update(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// DeleteBoard removes the board, detaching its pins; owner-only. The pins
// survive with a null board reference.
func (s *BoardService) DeleteBoard(ctx context.Context, actorID, boardID uint) error {
	board, err := s.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		return err
	}
	if !authz.CanMutate(actorID, board) {
		return models.NewForbiddenError("You can only delete your own boards")
	}
	return s.boardRepo.DeleteDetachingPins(ctx, boardID)
}

// ListBoardsForProfile returns one page of the boards owned by the profile
// behind slug. Board listings are never global.
func (s *BoardService) ListBoardsForProfile(ctx context.Context, slug string, page int) ([]*models.Board, pagination.Page, error) {
	profile, err := s.profileRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	total, err := s.boardRepo.CountByOwner(ctx, profile.UserID)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	pg, err := pagination.Resolve(total, s.pageSize, page)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	boards, err := s.boardRepo.ListByOwner(ctx, profile.UserID, pg.Size, pg.Offset)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return boards, pg, nil
}

func validateBoardTitle(title string) error {
	if title == "" {
		return models.NewValidationError("Title is required")
	}
	if utf8.RuneCountInString(title) > maxBoardTitleLen {
		return models.NewValidationError("Title too long (max 50 characters)")
	}
	return nil
}
