package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Plan describes how much of each entity to seed. Users falls back to the
// default when unset; the per-user counts treat zero as an explicit "none"
// and only negative values fall back.
type Plan struct {
	Users           int `yaml:"users"`
	BoardsPerUser   int `yaml:"boards_per_user"`
	PinsPerUser     int `yaml:"pins_per_user"`
	LikesPerUser    int `yaml:"likes_per_user"`
	CommentsPerUser int `yaml:"comments_per_user"`
	FollowsPerUser  int `yaml:"follows_per_user"`
}

// DefaultPlan is a medium-sized mesh suitable for local development.
func DefaultPlan() Plan {
	return Plan{
		Users:           50,
		BoardsPerUser:   2,
		PinsPerUser:     6,
		LikesPerUser:    15,
		CommentsPerUser: 8,
		FollowsPerUser:  10,
	}
}

// LoadPlan reads a seed plan from a YAML file.
func LoadPlan(path string) (Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("read seed plan: %w", err)
	}

	var plan Plan
	if err := yaml.Unmarshal(raw, &plan); err != nil {
		return Plan{}, fmt.Errorf("parse seed plan: %w", err)
	}
	return plan, nil
}

func (p *Plan) applyDefaults() {
	defaults := DefaultPlan()
	if p.Users <= 0 {
		p.Users = defaults.Users
	}
	if p.BoardsPerUser < 0 {
		p.BoardsPerUser = defaults.BoardsPerUser
	}
	if p.PinsPerUser < 0 {
		p.PinsPerUser = defaults.PinsPerUser
	}
	if p.LikesPerUser < 0 {
		p.LikesPerUser = defaults.LikesPerUser
	}
	if p.CommentsPerUser < 0 {
		p.CommentsPerUser = defaults.CommentsPerUser
	}
	if p.FollowsPerUser < 0 {
		p.FollowsPerUser = defaults.FollowsPerUser
	}
}
