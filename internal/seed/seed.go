package seed

import (
	"fmt"
	"log"

	"pinboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeder populates the database with a connected demo dataset.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to db.
func NewSeeder(db *gorm.DB) (*Seeder, error) {
	factory, err := NewFactory(db)
	if err != nil {
		return nil, err
	}
	return &Seeder{db: db, factory: factory}, nil
}

// ClearAll removes all seedable data. Child tables go first so foreign
// keys never dangle mid-way.
func (s *Seeder) ClearAll() error {
	tables := []any{
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Pin{},
		&models.Board{},
		&models.Profile{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("clear %T: %w", table, err)
		}
	}
	return nil
}

// Run seeds the social mesh described by the plan: users with profiles,
// boards holding pins, and likes, comments, and follows spread across
// them.
func (s *Seeder) Run(plan Plan) error {
	plan.applyDefaults()

	users := make([]*models.User, 0, plan.Users)
	for i := 0; i < plan.Users; i++ {
		user, err := s.factory.CreateUser(i)
		if err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users", len(users))

	var pins []*models.Pin
	for _, user := range users {
		boards := make([]*models.Board, 0, plan.BoardsPerUser)
		for i := 0; i < plan.BoardsPerUser; i++ {
			board, err := s.factory.CreateBoard(user)
			if err != nil {
				return fmt.Errorf("seed board: %w", err)
			}
			boards = append(boards, board)
		}

		for i := 0; i < plan.PinsPerUser; i++ {
			// Roughly a third of pins stay unassigned, like real
			// accounts that pin before organizing.
			var board *models.Board
			if len(boards) > 0 && s.factory.rand.Intn(3) != 0 {
				board = boards[s.factory.rand.Intn(len(boards))]
			}
			pin, err := s.factory.CreatePin(user, board)
			if err != nil {
				return fmt.Errorf("seed pin: %w", err)
			}
			pins = append(pins, pin)
		}
	}
	log.Printf("seeded %d pins", len(pins))

	if err := s.seedEngagement(users, pins, plan); err != nil {
		return err
	}
	return s.seedFollows(users, plan)
}

func (s *Seeder) seedEngagement(users []*models.User, pins []*models.Pin, plan Plan) error {
	if len(pins) == 0 {
		return nil
	}
	for _, user := range users {
		for i := 0; i < plan.LikesPerUser; i++ {
			pin := pins[s.factory.rand.Intn(len(pins))]
			// The random pick can repeat; clause.OnConflict keeps the
			// unique (pin, user) index from aborting the seed run.
			like := &models.Like{PinID: pin.ID, UserID: user.ID}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
				return fmt.Errorf("seed like: %w", err)
			}
		}
		for i := 0; i < plan.CommentsPerUser; i++ {
			pin := pins[s.factory.rand.Intn(len(pins))]
			if _, err := s.factory.CreateComment(user, pin); err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
		}
	}
	return nil
}

func (s *Seeder) seedFollows(users []*models.User, plan Plan) error {
	if len(users) < 2 {
		return nil
	}
	for _, user := range users {
		for i := 0; i < plan.FollowsPerUser; i++ {
			target := users[s.factory.rand.Intn(len(users))]
			if target.ID == user.ID {
				continue
			}
			follow := &models.Follow{FollowerID: user.ID, FollowedID: target.ID}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(follow).Error; err != nil {
				return fmt.Errorf("seed follow: %w", err)
			}
		}
	}
	return nil
}
