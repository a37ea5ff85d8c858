package validation

import (
	"fmt"
	"regexp"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Interior spaces are allowed ("Jane Doe"); slug derivation collapses them.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_\- ]+$`)

// ValidateEmail checks basic email address shape. Deliverability is proven
// by the activation mail, not by parsing.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidateUsername checks if a username meets requirements.
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}

	if len(username) > 20 {
		return fmt.Errorf("username must not exceed 20 characters")
	}

	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, spaces, underscores, and hyphens")
	}

	first, last := username[0], username[len(username)-1]
	if first == '_' || first == '-' || first == ' ' || last == '_' || last == '-' || last == ' ' {
		return fmt.Errorf("username cannot start or end with a space, underscore, or hyphen")
	}

	return nil
}
