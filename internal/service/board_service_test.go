package service_test

import (
	"context"
	"strings"
	"testing"

	"pinboard/internal/models"
	"pinboard/internal/repository"
	"pinboard/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBoardService(db *gorm.DB, pageSize int) *service.BoardService {
	return service.NewBoardService(
		repository.NewBoardRepository(db),
		repository.NewProfileRepository(db),
		pageSize,
	)
}

func TestCreateBoardValidation(t *testing.T) {
	db := newSocialDB(t)
	svc := newBoardService(db, 20)
	ctx := context.Background()
	owner := createUserWithProfile(t, db, 1)

	t.Run("title required", func(t *testing.T) {
		_, err := svc.CreateBoard(ctx, service.CreateBoardInput{OwnerID: owner.ID})
		assert.True(t, models.IsCode(err, models.CodeValidation))
	})

	t.Run("title too long", func(t *testing.T) {
		_, err := svc.CreateBoard(ctx, service.CreateBoardInput{
			OwnerID: owner.ID,
			Title:   strings.Repeat("x", 51),
		})
		assert.True(t, models.IsCode(err, models.CodeValidation))
	})

	t.Run("multibyte title counts runes", func(t *testing.T) {
		// 50 two-byte runes exceed 50 bytes but fit the character limit.
		_, err := svc.CreateBoard(ctx, service.CreateBoardInput{
			OwnerID: owner.ID,
			Title:   strings.Repeat("é", 50),
		})
		assert.NoError(t, err)

		_, err = svc.CreateBoard(ctx, service.CreateBoardInput{
			OwnerID: owner.ID,
			Title:   strings.Repeat("é", 51),
		})
		assert.True(t, models.IsCode(err, models.CodeValidation))
	})

	t.Run("valid", func(t *testing.T) {
		board, err := svc.CreateBoard(ctx, service.CreateBoardInput{
			OwnerID:     owner.ID,
			Title:       "Travel",
			Description: "places to go",
		})
		require.NoError(t, err)
		assert.Equal(t, owner.ID, board.UserID)
	})
}

func TestUpdateBoardOwnerOnly(t *testing.T) {
	db := newSocialDB(t)
	svc := newBoardService(db, 20)
	ctx := context.Background()
	owner := createUserWithProfile(t, db, 1)
	intruder := createUserWithProfile(t, db, 2)

	board, err := svc.CreateBoard(ctx, service.CreateBoardInput{OwnerID: owner.ID, Title: "Travel"})
	require.NoError(t, err)

	title := "Stolen"
	_, err = svc.UpdateBoard(ctx, service.UpdateBoardInput{
		ActorID: intruder.ID,
		BoardID: board.ID,
		Title:   &title,
	})
	assert.True(t, models.IsCode(err, models.CodeForbidden))

	renamed := "Adventures"
	got, err := svc.UpdateBoard(ctx, service.UpdateBoardInput{
		ActorID: owner.ID,
		BoardID: board.ID,
		Title:   &renamed,
	})
	require.NoError(t, err)
	assert.Equal(t, "Adventures", got.Title)
	assert.Equal(t, "", got.Description)
}

func TestDeleteBoardDetachesPins(t *testing.T) {
	db := newSocialDB(t)
	svc := newBoardService(db, 20)
	pinRepo := repository.NewPinRepository(db)
	ctx := context.Background()
	owner := createUserWithProfile(t, db, 1)
	intruder := createUserWithProfile(t, db, 2)

	board, err := svc.CreateBoard(ctx, service.CreateBoardInput{OwnerID: owner.ID, Title: "Travel"})
	require.NoError(t, err)

	pin := &models.Pin{UserID: owner.ID, BoardID: &board.ID, Image: "ref", Title: "beach"}
	require.NoError(t, db.Create(pin).Error)

	err = svc.DeleteBoard(ctx, intruder.ID, board.ID)
	assert.True(t, models.IsCode(err, models.CodeForbidden))

	require.NoError(t, svc.DeleteBoard(ctx, owner.ID, board.ID))

	got, err := pinRepo.GetByID(ctx, pin.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, got.BoardID)
}

func TestListBoardsForProfile(t *testing.T) {
	db := newSocialDB(t)
	svc := newBoardService(db, 2)
	ctx := context.Background()
	owner := createUserWithProfile(t, db, 1)
	other := createUserWithProfile(t, db, 2)

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := svc.CreateBoard(ctx, service.CreateBoardInput{OwnerID: owner.ID, Title: title})
		require.NoError(t, err)
	}
	_, err := svc.CreateBoard(ctx, service.CreateBoardInput{OwnerID: other.ID, Title: "Elsewhere"})
	require.NoError(t, err)

	boards, pg, err := svc.ListBoardsForProfile(ctx, owner.Profile.Slug, 1)
	require.NoError(t, err)
	assert.Len(t, boards, 2)
	assert.Equal(t, int64(3), pg.TotalItems)
	assert.Equal(t, 2, pg.TotalPages)

	_, _, err = svc.ListBoardsForProfile(ctx, owner.Profile.Slug, 3)
	assert.True(t, models.IsCode(err, models.CodeInvalidPage))

	_, _, err = svc.ListBoardsForProfile(ctx, "ghost", 1)
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	// An empty page one succeeds for a profile with no boards yet.
	empty := createUserWithProfile(t, db, 3)
	boards, pg, err = svc.ListBoardsForProfile(ctx, empty.Profile.Slug, 1)
	require.NoError(t, err)
	assert.Empty(t, boards)
	assert.Equal(t, int64(0), pg.TotalItems)
}
