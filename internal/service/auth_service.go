package service

import (
	"context"
	"fmt"

	"pourpal/internal/auth"
	"pourpal/internal/mailer"
	"pourpal/internal/model"
	"pourpal/internal/repository"

	"github.com/rs/zerolog"
)

const generatedPasswordLength = 8

// authService implements AuthService on top of the user repository, the
// token manager and the outbound mailer.
type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.Manager
	mail     mailer.Mailer
	logger   zerolog.Logger
}

// NewAuthService creates an authentication service.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.Manager, mail mailer.Mailer, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		mail:     mail,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

func (s *authService) Login(ctx context.Context, email, password string, rec model.LoginRecord) (string, error) {
	if email == "" || password == "" {
		return "", model.ErrInvalidCredential
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to log in: %w", err)
	}
	if user == nil || !user.IsActive || !auth.CheckPassword(password, user.EncodedPassword) {
		return "", model.ErrInvalidCredential
	}

	token, err := s.tokens.Encode(user.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	if err := s.userRepo.RecordLogin(ctx, user.UserID, rec); err != nil {
		// The login itself succeeded; a missing history entry is tolerable.
		s.logger.Warn().Err(err).Str("user_id", user.UserID).Msg("failed to record login")
	}

	s.logger.Info().Str("user_id", user.UserID).Msg("user logged in")
	return token, nil
}

func (s *authService) RegisterCustomer(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Email is required")
	}
	if password == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Password is required")
	}

	user, err := s.register(ctx, email, password, model.RoleCustomer)
	if err != nil {
		return nil, err
	}

	s.sendWelcome(ctx, email, "Welcome to PourPal!",
		"<p>Your PourPal account is ready. Happy shopping!</p>")
	return user, nil
}

func (s *authService) RegisterAdmin(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Email is required")
	}

	password, err := auth.GeneratePassword(generatedPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}

	user, err := s.register(ctx, email, password, model.RoleAdmin)
	if err != nil {
		return nil, err
	}

	s.sendWelcome(ctx, email, "Your PourPal administrator account",
		fmt.Sprintf("<p>An administrator account was created for you.</p><p>Temporary password: <b>%s</b></p>", password))
	return user, nil
}

func (s *authService) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return model.NewProfile(user), nil
}

func (s *authService) register(ctx context.Context, email, password, role string) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	if existing != nil {
		return nil, model.ErrEmailInUse
	}

	encoded, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to encode password: %w", err)
	}

	user := model.NewUser(email, encoded, role)
	if err := s.userRepo.Insert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info().Str("user_id", user.UserID).Str("role", role).Msg("user registered")
	return user, nil
}

func (s *authService) sendWelcome(ctx context.Context, email, subject, body string) {
	if err := s.mail.Send(ctx, []string{email}, subject, body); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("failed to send welcome mail")
	}
}
