package service_test

import (
	"context"
	"strings"
	"testing"

	"pinboard/internal/database"
	"pinboard/internal/lifecycle"
	"pinboard/internal/models"
	"pinboard/internal/repository"
	"pinboard/internal/service"
	"pinboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type pinFixture struct {
	db     *gorm.DB
	svc    *service.PinService
	boards *service.BoardService
	images *testutil.StoreStub
}

func newPinFixture(t *testing.T, pageSize int) *pinFixture {
	t.Helper()
	db, err := database.ConnectTest()
	require.NoError(t, err)

	images := testutil.NewStoreStub()
	hooks := lifecycle.New[*models.Pin](nil)
	hooks.OnDelete(func(ctx context.Context, pin *models.Pin) error {
		return images.Delete(ctx, pin.Image)
	})

	svc := service.NewPinService(
		repository.NewPinRepository(db),
		repository.NewBoardRepository(db),
		repository.NewCommentRepository(db),
		images, hooks, pageSize, 25)
	boards := service.NewBoardService(
		repository.NewBoardRepository(db),
		repository.NewProfileRepository(db),
		pageSize)
	return &pinFixture{db: db, svc: svc, boards: boards, images: images}
}

func pngUpload(t *testing.T) service.CreatePinInput {
	t.Helper()
	return service.CreatePinInput{
		Title:        "sunset",
		ImageContent: testutil.TinyPNG(t, 8, 8),
		ImageType:    "image/png",
	}
}

func TestCreatePinStoresImage(t *testing.T) {
	f := newPinFixture(t, 20)
	ctx := context.Background()
	owner := createUserWithProfile(t, f.db, 1)

	in := pngUpload(t)
	in.OwnerID = owner.ID
	pin, err := f.svc.CreatePin(ctx, in)
	require.NoError(t, err)

	assert.NotEmpty(t, pin.Image)
	assert.Contains(t, f.images.Saved, pin.Image)
	assert.Nil(t, pin.BoardID)
}

func TestCreatePinOnOwnBoard(t *testing.T) {
	f := newPinFixture(t, 20)
	ctx := context.Background()
	owner := createUserWithProfile(t, f.db, 1)

	board, err := f.boards.CreateBoard(ctx, service.CreateBoardInput{OwnerID: owner.ID, Title: "Travel"})
	require.NoError(t, err)

	in := pngUpload(t)
	in.OwnerID = owner.ID
	in.BoardID = &board.ID
	pin, err := f.svc.CreatePin(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, pin.BoardID)
	assert.Equal(t, board.ID, *pin.BoardID)
}

func TestCreatePinOnForeignBoardForbidden(t *testing.T) {
	f := newPinFixture(t, 20)
	ctx := context.Background()
	owner := createUserWithProfile(t, f.db, 1)
	boardOwner := createUserWithProfile(t, f.db, 2)

	board, err := f.boards.CreateBoard(ctx, service.CreateBoardInput{OwnerID: boardOwner.ID, Title: "Theirs"})
	require.NoError(t, err)

	in := pngUpload(t)
	in.OwnerID = owner.ID
	in.BoardID = &board.ID
	_, err = f.svc.CreatePin(ctx, in)
	assert.True(t, models.IsCode(err, models.CodeForbidden))

	// The rejected create must not leave a stored image behind.
	assert.Empty(t, f.images.Saved)
}

func TestCreatePinValidation(t *testing.T) {
	f := newPinFixture(t, 20)
	ctx := context.Background()
	owner := createUserWithProfile(t, f.db, 1)

	t.Run("title required", func(t *testing.T) {
		in := pngUpload(t)
		in.OwnerID = owner.ID
		in.Title = ""
		_, err := f.svc.CreatePin(ctx, in)
		assert.True(t, models.IsCode(err, models.CodeValidation))
	})

	t.Run("image required", func(t *testing.T) {
		in := pngUpload(t)
		in.OwnerID = owner.ID
		in.ImageContent = nil
		_, err := f.svc.CreatePin(ctx, in)
		assert.True(t, models.IsCode(err, models.CodeValidation))
	})

	t.Run("multibyte title counts runes", func(t *testing.T) {
		// 100 two-byte runes exceed 100 bytes but fit the character limit.
		in := pngUpload(t)
		in.OwnerID = owner.ID
		in.Title = strings.Repeat("é", 100)
		_, err := f.svc.CreatePin(ctx, in)
		assert.NoError(t, err)

		in = pngUpload(t)
		in.OwnerID = owner.ID
		in.Title = strings.Repeat("é", 101)
		_, err = f.svc.CreatePin(ctx, in)
		assert.True(t, models.IsCode(err, models.CodeValidation))
	})
}

func TestUpdatePinOwnerOnly(t *testing.T) {
	f := newPinFixture(t, 20)
	ctx := context.Background()
	owner := createUserWithProfile(t, f.db, 1)
	intruder := createUserWithProfile(t, f.db, 2)

	in := pngUpload(t)
	in.OwnerID = owner.ID
	pin, err := f.svc.CreatePin(ctx, in)
	require.NoError(t, err)

	title := "hijacked"
	_, err = f.svc.UpdatePin(ctx, service.UpdatePinInput{
		ActorID: intruder.ID,
		PinID:   pin.ID,
		Title:   &title,
	})
	assert.True(t, models.IsCode(err, models.CodeForbidden))
}

func TestUpdatePinMoveAndDetachBoard(t *testing.T) {
	f := newPinFixture(t, 20)
	ctx := context.Background()
	owner := createUserWithProfile(t, f.db, 1)

	board, err := f.boards.CreateBoard(ctx, service.CreateBoardInput{OwnerID: owner.ID, Title: "Travel"})
	require.NoError(t, err)

	in := pngUpload(t)
	in.OwnerID = owner.ID
	pin, err := f.svc.CreatePin(ctx, in)
	require.NoError(t, err)

	moved, err := f.svc.UpdatePin(ctx, service.UpdatePinInput{
		ActorID:  owner.ID,
		PinID:    pin.ID,
		BoardID:  &board.ID,
		SetBoard: true,
	})
	require.NoError(t, err)
	require.NotNil(t, moved.BoardID)

	detached, err := f.svc.UpdatePin(ctx, service.UpdatePinInput{
		ActorID:  owner.ID,
		PinID:    pin.ID,
		SetBoard: true,
	})
	require.NoError(t, err)
	assert.Nil(t, detached.BoardID)
}

func TestUpdatePinImageReplacementCleansUp(t *testing.T) {
	f := newPinFixture(t, 20)
	ctx := context.Background()
	owner := createUserWithProfile(t, f.db, 1)

	in := pngUpload(t)
	in.OwnerID = owner.ID
	pin, err := f.svc.CreatePin(ctx, in)
	require.NoError(t, err)
	oldImage := pin.Image

	updated, err := f.svc.UpdatePin(ctx, service.UpdatePinInput{
		ActorID:      owner.ID,
		PinID:        pin.ID,
		ImageContent: testutil.TinyPNG(t, 16, 16),
		ImageType:    "image/png",
	})
	require.NoError(t, err)
	assert.NotEqual(t, oldImage, updated.Image)
	assert.Contains(t, f.images.Deleted, oldImage)
}

func TestDeletePinRemovesStoredImage(t *testing.T) {
	f := newPinFixture(t, 20)
	ctx := context.Background()
	owner := createUserWithProfile(t, f.db, 1)
	intruder := createUserWithProfile(t, f.db, 2)

	in := pngUpload(t)
	in.OwnerID = owner.ID
	pin, err := f.svc.CreatePin(ctx, in)
	require.NoError(t, err)

	err = f.svc.DeletePin(ctx, intruder.ID, pin.ID)
	assert.True(t, models.IsCode(err, models.CodeForbidden))

	require.NoError(t, f.svc.DeletePin(ctx, owner.ID, pin.ID))
	assert.Contains(t, f.images.Deleted, pin.Image)

	_, err = f.svc.GetPin(ctx, pin.ID, 0)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestGetPinNestsComments(t *testing.T) {
	f := newPinFixture(t, 20)
	ctx := context.Background()
	owner := createUserWithProfile(t, f.db, 1)

	in := pngUpload(t)
	in.OwnerID = owner.ID
	pin, err := f.svc.CreatePin(ctx, in)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		comment := &models.Comment{PinID: pin.ID, UserID: owner.ID, Content: "hi"}
		require.NoError(t, f.db.Create(comment).Error)
	}

	got, err := f.svc.GetPin(ctx, pin.ID, 0)
	require.NoError(t, err)
	assert.Len(t, got.Comments, 3)
	assert.Equal(t, 3, got.CommentsCount)
}

func TestListPinsPagination(t *testing.T) {
	f := newPinFixture(t, 2)
	ctx := context.Background()
	owner := createUserWithProfile(t, f.db, 1)

	for i := 0; i < 5; i++ {
		in := pngUpload(t)
		in.OwnerID = owner.ID
		_, err := f.svc.CreatePin(ctx, in)
		require.NoError(t, err)
	}

	pins, pg, err := f.svc.ListPins(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, pins, 2)
	assert.Equal(t, int64(5), pg.TotalItems)
	assert.Equal(t, 3, pg.TotalPages)

	_, _, err = f.svc.ListPins(ctx, 4, 0)
	assert.True(t, models.IsCode(err, models.CodeInvalidPage))
}
