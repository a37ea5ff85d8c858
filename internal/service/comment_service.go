package service

import (
	"context"
	"unicode/utf8"

	"pinboard/internal/authz"
	"pinboard/internal/models"
	"pinboard/internal/pagination"
	"pinboard/internal/repository"
)

// CommentService provides comment business logic. Comments are flat; there
// is no reply threading.
type CommentService struct {
	commentRepo repository.CommentRepository
	pinRepo     repository.PinRepository
	pageSize    int
}

// NewCommentService returns a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	pinRepo repository.PinRepository,
	pageSize int,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		pinRepo:     pinRepo,
		pageSize:    pageSize,
	}
}

// AddComment attaches a comment by the actor to the pin. Any authenticated
// user may comment on any pin.
func (s *CommentService) AddComment(ctx context.Context, actorID, pinID uint, content string) (*models.Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}
	if _, err := s.pinRepo.GetByID(ctx, pinID, actorID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PinID:   pinID,
		UserID:  actorID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// UpdateComment rewrites the comment body; author-only. Pin ownership
// grants no authority over other users' comments.
func (s *CommentService) UpdateComment(ctx context.Context, actorID, commentID uint, content string) (*models.Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !authz.CanMutate(actorID, comment) {
		return nil, models.NewForbiddenError("You can only edit your own comments")
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes the comment; author-only.
func (s *CommentService) DeleteComment(ctx context.Context, actorID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !authz.CanMutate(actorID, comment) {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return s.commentRepo.Delete(ctx, comment)
}

// ListComments returns one page of the pin's comments, newest first.
func (s *CommentService) ListComments(ctx context.Context, pinID uint, page int) ([]*models.Comment, pagination.Page, error) {
	if _, err := s.pinRepo.GetByID(ctx, pinID, 0); err != nil {
		return nil, pagination.Page{}, err
	}

	total, err := s.commentRepo.CountByPin(ctx, pinID)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	pg, err := pagination.Resolve(total, s.pageSize, page)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	comments, err := s.commentRepo.ListByPin(ctx, pinID, pg.Size, pg.Offset)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return comments, pg, nil
}

func validateCommentContent(content string) error {
	if content == "" {
		return models.NewValidationError("Content is required")
	}
	if utf8.RuneCountInString(content) > models.MaxCommentLen {
		return models.NewValidationError("Content too long (max 500 characters)")
	}
	return nil
}
