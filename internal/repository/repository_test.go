package repository_test

import (
	"context"
	"fmt"
	"testing"

	"pinboard/internal/database"
	"pinboard/internal/models"
	"pinboard/internal/observability"
	"pinboard/internal/repository"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectTest()
	require.NoError(t, err)
	return db
}

func createUser(t *testing.T, db *gorm.DB, n int) *models.User {
	t.Helper()
	user := &models.User{
		Email:    fmt.Sprintf("user%d@example.com", n),
		Password: "hashed",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createPin(t *testing.T, db *gorm.DB, owner *models.User, boardID *uint) *models.Pin {
	t.Helper()
	pin := &models.Pin{
		UserID:  owner.ID,
		BoardID: boardID,
		Image:   "ref",
		Title:   "a pin",
	}
	require.NoError(t, db.Create(pin).Error)
	return pin
}

func TestUserRepository(t *testing.T) {
	db := testDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	t.Run("duplicate email is conflict", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &models.User{Email: "dup@example.com", Password: "x"}))
		err := repo.Create(ctx, &models.User{Email: "dup@example.com", Password: "y"})
		assert.True(t, models.IsCode(err, models.CodeConflict))
	})

	t.Run("get by email distinguishes absence", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("activate is idempotent", func(t *testing.T) {
		user := &models.User{Email: "inactive@example.com", Password: "x"}
		require.NoError(t, repo.Create(ctx, user))

		require.NoError(t, repo.Activate(ctx, user.ID))
		require.NoError(t, repo.Activate(ctx, user.ID))

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, got.IsActive)
	})

	t.Run("activate unknown user is not found", func(t *testing.T) {
		err := repo.Activate(ctx, 9999)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
	})
}

func TestProfileRepository(t *testing.T) {
	db := testDB(t)
	repo := repository.NewProfileRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, 1)
	other := createUser(t, db, 2)

	profile := &models.Profile{UserID: owner.ID, Username: "jane_doe", Slug: "jane-doe"}
	require.NoError(t, repo.Create(ctx, profile))

	t.Run("get by slug", func(t *testing.T) {
		got, err := repo.GetBySlug(ctx, "jane-doe")
		require.NoError(t, err)
		assert.Equal(t, owner.ID, got.UserID)

		_, err = repo.GetBySlug(ctx, "missing")
		assert.True(t, models.IsCode(err, models.CodeNotFound))
	})

	t.Run("username taken", func(t *testing.T) {
		taken, err := repo.UsernameTaken(ctx, "jane_doe", "jane-doe", 0)
		require.NoError(t, err)
		assert.True(t, taken)

		// A profile does not collide with itself.
		taken, err = repo.UsernameTaken(ctx, "jane_doe", "jane-doe", profile.ID)
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("duplicate username is conflict", func(t *testing.T) {
		err := repo.Create(ctx, &models.Profile{UserID: other.ID, Username: "jane_doe", Slug: "jane-doe-x"})
		assert.True(t, models.IsCode(err, models.CodeConflict))
	})
}

func TestBoardDeleteDetachesPins(t *testing.T) {
	db := testDB(t)
	boardRepo := repository.NewBoardRepository(db)
	pinRepo := repository.NewPinRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, 1)
	board := &models.Board{UserID: owner.ID, Title: "Travel"}
	require.NoError(t, boardRepo.Create(ctx, board))

	pinned := createPin(t, db, owner, &board.ID)
	loose := createPin(t, db, owner, nil)

	require.NoError(t, boardRepo.DeleteDetachingPins(ctx, board.ID))

	_, err := boardRepo.GetByID(ctx, board.ID)
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	// The board's pin survives, detached; the loose pin is untouched.
	got, err := pinRepo.GetByID(ctx, pinned.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, got.BoardID)

	got, err = pinRepo.GetByID(ctx, loose.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, got.BoardID)
}

func TestBoardListByOwnerIsScoped(t *testing.T) {
	db := testDB(t)
	boardRepo := repository.NewBoardRepository(db)
	ctx := context.Background()

	a := createUser(t, db, 1)
	b := createUser(t, db, 2)
	require.NoError(t, boardRepo.Create(ctx, &models.Board{UserID: a.ID, Title: "A1"}))
	require.NoError(t, boardRepo.Create(ctx, &models.Board{UserID: a.ID, Title: "A2"}))
	require.NoError(t, boardRepo.Create(ctx, &models.Board{UserID: b.ID, Title: "B1"}))

	boards, err := boardRepo.ListByOwner(ctx, a.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, boards, 2)

	count, err := boardRepo.CountByOwner(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPinComputedDetails(t *testing.T) {
	db := testDB(t)
	pinRepo := repository.NewPinRepository(db)
	ctx := context.Background()

	author := createUser(t, db, 1)
	liker := createUser(t, db, 2)
	pin := createPin(t, db, author, nil)

	require.NoError(t, db.Create(&models.Like{PinID: pin.ID, UserID: liker.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{PinID: pin.ID, UserID: liker.ID, Content: "nice"}).Error)
	require.NoError(t, db.Create(&models.Comment{PinID: pin.ID, UserID: author.ID, Content: "thanks"}).Error)

	t.Run("counts are computed per read", func(t *testing.T) {
		got, err := pinRepo.GetByID(ctx, pin.ID, liker.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.LikesCount)
		assert.Equal(t, 2, got.CommentsCount)
		assert.True(t, got.Liked)
	})

	t.Run("liked is per viewer", func(t *testing.T) {
		got, err := pinRepo.GetByID(ctx, pin.ID, author.ID)
		require.NoError(t, err)
		assert.False(t, got.Liked)

		got, err = pinRepo.GetByID(ctx, pin.ID, 0)
		require.NoError(t, err)
		assert.False(t, got.Liked)
	})
}

func TestPinDeleteCascades(t *testing.T) {
	db := testDB(t)
	pinRepo := repository.NewPinRepository(db)
	ctx := context.Background()

	author := createUser(t, db, 1)
	pin := createPin(t, db, author, nil)
	require.NoError(t, db.Create(&models.Like{PinID: pin.ID, UserID: author.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{PinID: pin.ID, UserID: author.ID, Content: "mine"}).Error)

	require.NoError(t, pinRepo.Delete(ctx, pin.ID))

	_, err := pinRepo.GetByID(ctx, pin.ID, 0)
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	var likes, comments int64
	require.NoError(t, db.Model(&models.Like{}).Where("pin_id = ?", pin.ID).Count(&likes).Error)
	require.NoError(t, db.Model(&models.Comment{}).Where("pin_id = ?", pin.ID).Count(&comments).Error)
	assert.Zero(t, likes)
	assert.Zero(t, comments)
}

func TestLikeRepositoryUniqueness(t *testing.T) {
	db := testDB(t)
	likeRepo := repository.NewLikeRepository(db)
	ctx := context.Background()

	author := createUser(t, db, 1)
	pin := createPin(t, db, author, nil)

	require.NoError(t, likeRepo.Create(ctx, &models.Like{PinID: pin.ID, UserID: author.ID}))

	t.Run("second like is conflict", func(t *testing.T) {
		err := likeRepo.Create(ctx, &models.Like{PinID: pin.ID, UserID: author.ID})
		assert.True(t, models.IsCode(err, models.CodeConflict))
	})

	t.Run("delete then relike", func(t *testing.T) {
		require.NoError(t, likeRepo.Delete(ctx, pin.ID, author.ID))
		require.NoError(t, likeRepo.Create(ctx, &models.Like{PinID: pin.ID, UserID: author.ID}))
	})

	t.Run("deleting an absent like is not found", func(t *testing.T) {
		err := likeRepo.Delete(ctx, pin.ID, 9999)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
	})
}

func TestFollowRepository(t *testing.T) {
	db := testDB(t)
	followRepo := repository.NewFollowRepository(db)
	ctx := context.Background()

	a := createUser(t, db, 1)
	b := createUser(t, db, 2)
	c := createUser(t, db, 3)

	require.NoError(t, followRepo.Create(ctx, &models.Follow{FollowerID: a.ID, FollowedID: b.ID}))
	require.NoError(t, followRepo.Create(ctx, &models.Follow{FollowerID: c.ID, FollowedID: b.ID}))

	t.Run("duplicate edge is conflict", func(t *testing.T) {
		err := followRepo.Create(ctx, &models.Follow{FollowerID: a.ID, FollowedID: b.ID})
		assert.True(t, models.IsCode(err, models.CodeConflict))
	})

	t.Run("reverse edge is distinct", func(t *testing.T) {
		require.NoError(t, followRepo.Create(ctx, &models.Follow{FollowerID: b.ID, FollowedID: a.ID}))
	})

	t.Run("counts are directional", func(t *testing.T) {
		followers, err := followRepo.CountFollowers(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), followers)

		following, err := followRepo.CountFollowing(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), following)
	})

	t.Run("unfollow absent edge is not found", func(t *testing.T) {
		err := followRepo.Delete(ctx, a.ID, c.ID)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
	})
}

func TestMutationOutcomesAreCounted(t *testing.T) {
	db := testDB(t)
	boardRepo := repository.NewBoardRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	ctx := context.Background()
	owner := createUser(t, db, 1)

	t.Run("successful create", func(t *testing.T) {
		created := observability.EntityMutations.WithLabelValues("board", "create", "success")
		before := promtest.ToFloat64(created)

		require.NoError(t, boardRepo.Create(ctx, &models.Board{UserID: owner.ID, Title: "Travel"}))
		assert.Equal(t, before+1, promtest.ToFloat64(created))
	})

	t.Run("failed delete", func(t *testing.T) {
		failed := observability.EntityMutations.WithLabelValues("like", "delete", "error")
		before := promtest.ToFloat64(failed)

		err := likeRepo.Delete(ctx, 12345, owner.ID)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
		assert.Equal(t, before+1, promtest.ToFloat64(failed))
	})
}

func TestCommentRepositoryOrdering(t *testing.T) {
	db := testDB(t)
	commentRepo := repository.NewCommentRepository(db)
	ctx := context.Background()

	author := createUser(t, db, 1)
	pin := createPin(t, db, author, nil)

	for i := 0; i < 3; i++ {
		require.NoError(t, commentRepo.Create(ctx, &models.Comment{
			PinID:   pin.ID,
			UserID:  author.ID,
			Content: fmt.Sprintf("comment %d", i),
		}))
	}

	comments, err := commentRepo.ListByPin(ctx, pin.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	// Newest first; equal timestamps fall back to descending ID.
	assert.Equal(t, "comment 2", comments[0].Content)
	assert.Equal(t, "comment 0", comments[2].Content)

	count, err := commentRepo.CountByPin(ctx, pin.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
