package service_test

import (
	"context"
	"testing"

	"pinboard/internal/database"
	"pinboard/internal/models"
	"pinboard/internal/repository"
	"pinboard/internal/service"
	"pinboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type profileFixture struct {
	db     *gorm.DB
	svc    *service.ProfileService
	images *testutil.StoreStub
}

func newProfileFixture(t *testing.T) *profileFixture {
	t.Helper()
	db, err := database.ConnectTest()
	require.NoError(t, err)
	images := testutil.NewStoreStub()
	svc := service.NewProfileService(repository.NewProfileRepository(db), images)
	return &profileFixture{db: db, svc: svc, images: images}
}

func (f *profileFixture) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Password: "hashed", IsActive: true}
	require.NoError(t, f.db.Create(user).Error)
	require.NoError(t, f.svc.CreateForUser(context.Background(), user))
	return user
}

func TestCreateForUserDerivesFromEmail(t *testing.T) {
	f := newProfileFixture(t)

	user := f.createUser(t, "Jane.Doe+test@example.com")
	assert.Equal(t, "Jane-Doe-test", user.Profile.Username)
	assert.Equal(t, "jane-doe-test", user.Profile.Slug)
}

func TestUpdateProfileFields(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()
	user := f.createUser(t, "jane@example.com")

	first := "Jane"
	bio := "collector of sunsets"
	got, err := f.svc.Update(ctx, service.UpdateProfileInput{
		ActorID:   user.ID,
		Slug:      user.Profile.Slug,
		FirstName: &first,
		Bio:       &bio,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.FirstName)
	assert.Equal(t, "collector of sunsets", got.Bio)
	// Untouched fields survive a partial update.
	assert.Equal(t, "jane", got.Username)
}

func TestUpdateProfileForbiddenForOthers(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "owner@example.com")
	intruder := f.createUser(t, "intruder@example.com")

	name := "Hijacked"
	_, err := f.svc.Update(ctx, service.UpdateProfileInput{
		ActorID:   intruder.ID,
		Slug:      owner.Profile.Slug,
		FirstName: &name,
	})
	assert.True(t, models.IsCode(err, models.CodeForbidden))
}

func TestUpdateUsernameRederivesSlug(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()
	user := f.createUser(t, "jane@example.com")

	username := "Jane_Doe"
	got, err := f.svc.Update(ctx, service.UpdateProfileInput{
		ActorID:  user.ID,
		Slug:     user.Profile.Slug,
		Username: &username,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane_Doe", got.Username)
	assert.Equal(t, "jane-doe", got.Slug)

	// The old slug no longer resolves.
	_, err = f.svc.GetBySlug(ctx, "jane")
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	fresh, err := f.svc.GetBySlug(ctx, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, user.ID, fresh.UserID)

	// Spaced, mixed-case usernames are accepted and slugified.
	username = "Jane Van Doe"
	got, err = f.svc.Update(ctx, service.UpdateProfileInput{
		ActorID:  user.ID,
		Slug:     "jane-doe",
		Username: &username,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Van Doe", got.Username)
	assert.Equal(t, "jane-van-doe", got.Slug)
}

func TestUpdateUsernameTakenIsConflict(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()
	f.createUser(t, "taken@example.com")
	user := f.createUser(t, "jane@example.com")

	username := "taken"
	_, err := f.svc.Update(ctx, service.UpdateProfileInput{
		ActorID:  user.ID,
		Slug:     user.Profile.Slug,
		Username: &username,
	})
	assert.True(t, models.IsCode(err, models.CodeConflict))
}

func TestUpdateInvalidUsernameRejected(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()
	user := f.createUser(t, "jane@example.com")

	username := "x"
	_, err := f.svc.Update(ctx, service.UpdateProfileInput{
		ActorID:  user.ID,
		Slug:     user.Profile.Slug,
		Username: &username,
	})
	assert.True(t, models.IsCode(err, models.CodeValidation))
}

func TestAvatarReplacementDeletesOldImage(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()
	user := f.createUser(t, "jane@example.com")

	_, err := f.svc.Update(ctx, service.UpdateProfileInput{
		ActorID: user.ID,
		Slug:    user.Profile.Slug,
		Avatar:  "avatar-ref-1",
	})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, service.UpdateProfileInput{
		ActorID: user.ID,
		Slug:    user.Profile.Slug,
		Avatar:  "avatar-ref-2",
	})
	require.NoError(t, err)

	assert.Contains(t, f.images.Deleted, "avatar-ref-1")
}
