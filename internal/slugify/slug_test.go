package slugify_test

import (
	"testing"

	"pinboard/internal/slugify"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"jane_doe", "jane-doe"},
		{"Jane Doe", "jane-doe"},
		{"  lots   of   space  ", "lots-of-space"},
		{"UPPER.case.user", "upper-case-user"},
		{"user42", "user42"},
		{"trailing-", "trailing"},
		{"--leading", "leading"},
		{"Ångström", "ngstrm"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify.Slugify(tt.in), "input %q", tt.in)
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	t.Parallel()
	assert.Equal(t, slugify.Slugify("Jane Doe"), slugify.Slugify("Jane Doe"))
}

func TestWithSuffix(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "jane", slugify.WithSuffix("jane", 0))
	assert.Equal(t, "jane-1", slugify.WithSuffix("jane", 1))
	assert.Equal(t, "jane-12", slugify.WithSuffix("jane", 12))
}
