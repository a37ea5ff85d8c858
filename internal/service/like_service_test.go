package service_test

import (
	"context"
	"testing"

	"pinboard/internal/models"
	"pinboard/internal/repository"
	"pinboard/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLikeService(db *gorm.DB, pageSize int) *service.LikeService {
	return service.NewLikeService(
		repository.NewLikeRepository(db),
		repository.NewPinRepository(db),
		pageSize)
}

func TestAddLike(t *testing.T) {
	db := newSocialDB(t)
	svc := newLikeService(db, 10)
	ctx := context.Background()

	owner := createUserWithProfile(t, db, 1)
	fan := createUserWithProfile(t, db, 2)
	pin := insertPin(t, db, owner)

	like, err := svc.AddLike(ctx, fan.ID, pin.ID)
	require.NoError(t, err)
	assert.Equal(t, fan.ID, like.UserID)
	assert.Equal(t, pin.ID, like.PinID)

	_, err = svc.AddLike(ctx, fan.ID, pin.ID)
	assert.True(t, models.IsCode(err, models.CodeConflict))

	_, err = svc.AddLike(ctx, fan.ID, 9999)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestRemoveLike(t *testing.T) {
	db := newSocialDB(t)
	svc := newLikeService(db, 10)
	ctx := context.Background()

	owner := createUserWithProfile(t, db, 1)
	fan := createUserWithProfile(t, db, 2)
	pin := insertPin(t, db, owner)

	_, err := svc.AddLike(ctx, fan.ID, pin.ID)
	require.NoError(t, err)
	require.NoError(t, svc.RemoveLike(ctx, fan.ID, pin.ID))

	err = svc.RemoveLike(ctx, fan.ID, pin.ID)
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	// Unliking again after a fresh like works; the state machine has no
	// memory of earlier likes.
	_, err = svc.AddLike(ctx, fan.ID, pin.ID)
	require.NoError(t, err)
	require.NoError(t, svc.RemoveLike(ctx, fan.ID, pin.ID))
}

func TestListLikes(t *testing.T) {
	db := newSocialDB(t)
	svc := newLikeService(db, 2)
	ctx := context.Background()

	owner := createUserWithProfile(t, db, 1)
	pin := insertPin(t, db, owner)

	for i := 2; i <= 6; i++ {
		fan := createUserWithProfile(t, db, i)
		_, err := svc.AddLike(ctx, fan.ID, pin.ID)
		require.NoError(t, err)
	}

	likes, pg, err := svc.ListLikes(ctx, pin.ID, 1)
	require.NoError(t, err)
	assert.Len(t, likes, 2)
	assert.Equal(t, int64(5), pg.TotalItems)
	assert.Equal(t, 3, pg.TotalPages)

	_, _, err = svc.ListLikes(ctx, pin.ID, 4)
	assert.True(t, models.IsCode(err, models.CodeInvalidPage))

	_, _, err = svc.ListLikes(ctx, 9999, 1)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
