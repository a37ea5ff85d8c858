// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"pinboard/internal/models"
	"pinboard/internal/slugify"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedPassword is the plaintext password of every seeded user, so seeded
// accounts can be logged into during development.
const SeedPassword = "Pinboard-dev1"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
	// one bcrypt hash shared by all seeded users; hashing per user makes
	// large seeds unbearably slow
	passwordHash string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) (*Factory, error) {
	gofakeit.Seed(time.Now().UnixNano())

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	return &Factory{
		db:           db,
		rand:         rand.New(rand.NewSource(time.Now().UnixNano())),
		passwordHash: string(hash),
	}, nil
}

// CreateUser persists an active user with a generated profile.
func (f *Factory) CreateUser(n int) (*models.User, error) {
	user := &models.User{
		Email:    fmt.Sprintf("%s%d@%s", strings.ToLower(gofakeit.Username()), n, gofakeit.DomainName()),
		Password: f.passwordHash,
		IsActive: true,
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}

	username := fmt.Sprintf("%.14s_%d", strings.ToLower(gofakeit.Username()), n)
	profile := &models.Profile{
		UserID:    user.ID,
		Username:  username,
		Slug:      slugify.Slugify(username),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Bio:       gofakeit.Sentence(8),
	}
	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	user.Profile = profile
	return user, nil
}

// CreateBoard persists a board for the user.
func (f *Factory) CreateBoard(user *models.User) (*models.Board, error) {
	board := &models.Board{
		UserID:      user.ID,
		Title:       fmt.Sprintf("%.50s", gofakeit.HipsterSentence(3)),
		Description: gofakeit.Sentence(10),
	}
	if err := f.db.Create(board).Error; err != nil {
		return nil, err
	}
	return board, nil
}

// CreatePin persists a pin for the user, optionally assigned to one of
// their boards. The image reference points at a placeholder service so
// seeded feeds render.
func (f *Factory) CreatePin(user *models.User, board *models.Board) (*models.Pin, error) {
	pin := &models.Pin{
		UserID:      user.ID,
		Image:       fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		Title:       fmt.Sprintf("%.100s", gofakeit.HipsterSentence(4)),
		Description: gofakeit.Paragraph(1, 2, 8, " "),
	}
	if board != nil {
		pin.BoardID = &board.ID
	}

	// realistic created_at spread over the last 90 days
	daysBack := f.rand.Intn(90)
	hoursBack := f.rand.Intn(24)
	pin.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	if err := f.db.Create(pin).Error; err != nil {
		return nil, err
	}
	return pin, nil
}

// CreateComment persists a comment by the user on the pin.
func (f *Factory) CreateComment(user *models.User, pin *models.Pin) (*models.Comment, error) {
	comment := &models.Comment{
		PinID:   pin.ID,
		UserID:  user.ID,
		Content: fmt.Sprintf("%.500s", gofakeit.HipsterParagraph(1, 2, 8, " ")),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}
