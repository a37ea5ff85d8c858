package service

import (
	"context"
	"fmt"

	"pinboard/internal/lifecycle"
	"pinboard/internal/models"
	"pinboard/internal/observability"
	"pinboard/internal/repository"
	"pinboard/internal/token"
	"pinboard/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// Mailer is the email dispatch collaborator consumed by registration.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// AuthService implements registration, activation, and authentication.
type AuthService struct {
	userRepo  repository.UserRepository
	tokens    *token.Manager
	mailer    Mailer
	userHooks *lifecycle.Hooks[*models.User]
	baseURL   string
}

// RegisterInput carries a registration request.
type RegisterInput struct {
	Email                string
	Password             string
	PasswordConfirmation string
}

// NewAuthService returns a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	tokens *token.Manager,
	mailer Mailer,
	userHooks *lifecycle.Hooks[*models.User],
	baseURL string,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokens:    tokens,
		mailer:    mailer,
		userHooks: userHooks,
		baseURL:   baseURL,
	}
}

// Register creates an inactive user, runs the user post-create hooks
// (profile creation among them), and dispatches the activation email.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Password != in.PasswordConfirmation {
		return nil, models.NewValidationError("Password fields didn't match")
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:    in.Email,
		Password: string(hashed),
		IsActive: false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Every user has exactly one profile from this point on; a failed
	// hook is a failed registration.
	if err := s.userHooks.RanCreate(ctx, user); err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := s.sendActivationMail(ctx, user); err != nil {
		observability.ActivationEmails.WithLabelValues("error").Inc()
		return nil, models.NewInternalError(err)
	}
	observability.ActivationEmails.WithLabelValues("sent").Inc()

	return s.userRepo.GetByID(ctx, user.ID)
}

// Activate flips the addressed user to active. Malformed, expired, or
// mismatched tokens fail; re-activating an active account is a no-op.
func (s *AuthService) Activate(ctx context.Context, userID uint, activationToken string) (*models.User, error) {
	tokenUserID, err := s.tokens.ValidateActivation(activationToken)
	if err != nil || tokenUserID != userID {
		return nil, models.NewValidationError("Invalid or expired activation token")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, models.NewValidationError("Invalid or expired activation token")
	}
	if user.IsActive {
		return user, nil
	}

	if err := s.userRepo.Activate(ctx, userID); err != nil {
		return nil, err
	}
	user.IsActive = true
	return user, nil
}

// Authenticate verifies credentials and account state. Unknown email,
// wrong password, and inactive account all produce the same generic error
// so responses cannot be used to enumerate accounts.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	genericErr := models.NewAuthenticationError("Invalid credentials")

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Burn a comparison anyway so timing does not reveal absence.
		_ = bcrypt.CompareHashAndPassword(
			[]byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B4TZ9Z1nFVVtY0S1R1Gm6eOMrOMW"), []byte(password))
		return nil, genericErr
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, genericErr
	}
	if !user.IsActive {
		return nil, genericErr
	}

	return user, nil
}

// IssueToken creates a bearer token for an authenticated user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	return s.tokens.IssueAuth(user.ID)
}

func (s *AuthService) sendActivationMail(ctx context.Context, user *models.User) error {
	activationToken, err := s.tokens.IssueActivation(user.ID)
	if err != nil {
		return err
	}
	link := fmt.Sprintf("%s/api/auth/activate/%d/%s", s.baseURL, user.ID, activationToken)
	body := fmt.Sprintf(
		"Welcome to Pinboard!\n\nFollow this link to activate your account:\n\n%s\n\nThe link expires; register again if it does.\n",
		link)
	return s.mailer.Send(ctx, user.Email, "Activate your Pinboard account", body)
}
