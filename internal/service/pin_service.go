package service

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"pinboard/internal/authz"
	"pinboard/internal/lifecycle"
	"pinboard/internal/middleware"
	"pinboard/internal/models"
	"pinboard/internal/pagination"
	"pinboard/internal/repository"
	"pinboard/internal/storage"
)

const maxPinTitleLen = 100

// PinService provides pin business logic.
type PinService struct {
	pinRepo          repository.PinRepository
	boardRepo        repository.BoardRepository
	commentRepo      repository.CommentRepository
	images           storage.Store
	pinHooks         *lifecycle.Hooks[*models.Pin]
	pageSize         int
	commentsPageSize int
}

// CreatePinInput carries a pin creation request. ImageContent is the raw
// upload body.
type CreatePinInput struct {
	OwnerID      uint
	Title        string
	Description  string
	BoardID      *uint
	ImageContent []byte
	ImageType    string
}

// UpdatePinInput carries a partial pin update. Nil fields are left
// unchanged; SetBoard distinguishes "move to board / detach" from "keep".
type UpdatePinInput struct {
	ActorID      uint
	PinID        uint
	Title        *string
	Description  *string
	BoardID      *uint
	SetBoard     bool
	ImageContent []byte
	ImageType    string
}

// NewPinService returns a new PinService.
func NewPinService(
	pinRepo repository.PinRepository,
	boardRepo repository.BoardRepository,
	commentRepo repository.CommentRepository,
	images storage.Store,
	pinHooks *lifecycle.Hooks[*models.Pin],
	pageSize, commentsPageSize int,
) *PinService {
	return &PinService{
		pinRepo:          pinRepo,
		boardRepo:        boardRepo,
		commentRepo:      commentRepo,
		images:           images,
		pinHooks:         pinHooks,
		pageSize:         pageSize,
		commentsPageSize: commentsPageSize,
	}
}

// CreatePin stores the uploaded image and creates the pin. A board
// assignment must point at a board the actor owns.
func (s *PinService) CreatePin(ctx context.Context, in CreatePinInput) (*models.Pin, error) {
	if err := validatePinTitle(in.Title); err != nil {
		return nil, err
	}
	if len(in.ImageContent) == 0 {
		return nil, models.NewValidationError("Image is required")
	}
	if in.BoardID != nil {
		if err := s.checkBoardOwnership(ctx, *in.BoardID, in.OwnerID); err != nil {
			return nil, err
		}
	}

	ref, err := s.images.Save(ctx, in.ImageContent, in.ImageType)
	if err != nil {
		return nil, err
	}

	pin := &models.Pin{
		UserID:      in.OwnerID,
		BoardID:     in.BoardID,
		Image:       ref,
		Title:       in.Title,
		Description: in.Description,
	}
	if err := s.pinRepo.Create(ctx, pin); err != nil {
		// The pin never existed, so its stored image must not linger.
		if delErr := s.images.Delete(ctx, ref); delErr != nil {
			logStorageCleanupFailure(ctx, ref, delErr)
		}
		return nil, err
	}

	if s.pinHooks != nil {
		if err := s.pinHooks.RanCreate(ctx, pin); err != nil {
			return nil, err
		}
	}
	return pin, nil
}

// GetPin returns a pin with its computed counts, the viewer's liked
// status, and the first page of its comments. viewerID 0 means anonymous.
func (s *PinService) GetPin(ctx context.Context, id, viewerID uint) (*models.Pin, error) {
	pin, err := s.pinRepo.GetByID(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPin(ctx, id, s.commentsPageSize, 0)
	if err != nil {
		return nil, err
	}
	pin.Comments = comments
	return pin, nil
}

// ListPins returns one page of the global pin feed, newest first.
func (s *PinService) ListPins(ctx context.Context, page int, viewerID uint) ([]*models.Pin, pagination.Page, error) {
	total, err := s.pinRepo.Count(ctx)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	pg, err := pagination.Resolve(total, s.pageSize, page)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	pins, err := s.pinRepo.List(ctx, pg.Size, pg.Offset, viewerID)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return pins, pg, nil
}

// UpdatePin applies a partial update; owner-only. A replaced image has its
// old files removed after the update commits.
func (s *PinService) UpdatePin(ctx context.Context, in UpdatePinInput) (*models.Pin, error) {
	pin, err := s.pinRepo.GetByID(ctx, in.PinID, in.ActorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanMutate(in.ActorID, pin) {
		return nil, models.NewForbiddenError("You can only update your own pins")
	}

	if in.Title != nil {
		if err := validatePinTitle(*in.Title); err != nil {
			return nil, err
		}
		pin.Title = *in.Title
	}
	if in.Description != nil {
		pin.Description = *in.Description
	}
	if in.SetBoard {
		if in.BoardID != nil {
			if err := s.checkBoardOwnership(ctx, *in.BoardID, in.ActorID); err != nil {
				return nil, err
			}
		}
		pin.BoardID = in.BoardID
	}

	oldImage := ""
	if len(in.ImageContent) > 0 {
		ref, err := s.images.Save(ctx, in.ImageContent, in.ImageType)
		if err != nil {
			return nil, err
		}
		oldImage = pin.Image
		pin.Image = ref
	}

	if err := s.pinRepo.Update(ctx, pin); err != nil {
		if pin.Image != oldImage && oldImage != "" {
			if delErr := s.images.Delete(ctx, pin.Image); delErr != nil {
				logStorageCleanupFailure(ctx, pin.Image, delErr)
			}
		}
		return nil, err
	}

	if oldImage != "" {
		if delErr := s.images.Delete(ctx, oldImage); delErr != nil {
			logStorageCleanupFailure(ctx, oldImage, delErr)
		}
	}
	return pin, nil
}

// DeletePin removes the pin with its comments and likes; owner-only. The
// stored image is cleaned up by the post-delete hooks.
func (s *PinService) DeletePin(ctx context.Context, actorID, pinID uint) error {
	pin, err := s.pinRepo.GetByID(ctx, pinID, actorID)
	if err != nil {
		return err
	}
	if !authz.CanMutate(actorID, pin) {
		return models.NewForbiddenError("You can only delete your own pins")
	}

	if err := s.pinRepo.Delete(ctx, pinID); err != nil {
		return err
	}

	if s.pinHooks != nil {
		if err := s.pinHooks.RanDelete(ctx, pin); err != nil {
			return err
		}
	}
	return nil
}

// checkBoardOwnership rejects assignment to a missing board or one the
// actor does not own.
func (s *PinService) checkBoardOwnership(ctx context.Context, boardID, actorID uint) error {
	board, err := s.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		return err
	}
	if board.UserID != actorID {
		return models.NewForbiddenError("You can only pin to your own boards")
	}
	return nil
}

// logStorageCleanupFailure records an image that could not be removed, so
// an operator can reap it. The triggering operation already succeeded or
// failed for its own reasons.
func logStorageCleanupFailure(ctx context.Context, ref string, err error) {
	if middleware.Logger == nil {
		return
	}
	middleware.Logger.WarnContext(ctx, "stored image cleanup failed",
		slog.String("image", ref),
		slog.String("error", err.Error()),
	)
}

func validatePinTitle(title string) error {
	if title == "" {
		return models.NewValidationError("Title is required")
	}
	if utf8.RuneCountInString(title) > maxPinTitleLen {
		return models.NewValidationError("Title too long (max 100 characters)")
	}
	return nil
}
