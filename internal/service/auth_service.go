package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"medtrack/reminder-service/internal/models"
	"medtrack/reminder-service/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidTimezone    = errors.New("invalid time zone identifier")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService interface {
	Register(ctx context.Context, name, email, password, timezone string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	Logout(ctx context.Context, accessToken string) error
	ValidateToken(ctx context.Context, accessToken string) (*models.User, error)
	UpdateTimezone(ctx context.Context, userID uint64, timezone string) error

	// AuthenticateChat verifies credentials on behalf of the chat bot and
	// links the chat identity to the account.
	AuthenticateChat(ctx context.Context, email, password string, chatID int64) (*models.User, error)
	// RegisterChat creates an account from the bot registration flow and
	// links the chat identity in the same step.
	RegisterChat(ctx context.Context, name, email, password string, chatID int64) (*models.User, error)
}

type authService struct {
	userRepo  repository.UserRepositoryInterface
	tokenRepo repository.TokenRepository
	accessTTL time.Duration
}

func NewAuthService(
	userRepo repository.UserRepositoryInterface,
	tokenRepo repository.TokenRepository,
	accessTTL time.Duration,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		accessTTL: accessTTL,
	}
}

func (s *authService) Register(ctx context.Context, name, email, password, timezone string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	if timezone == "" {
		timezone = "UTC"
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, ErrInvalidTimezone
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: string(hashed),
		Timezone: timezone,
	}
	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	user, err := s.verifyCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user.ID)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	userID, err := s.tokenRepo.ConsumeRefresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, ErrInvalidToken
	}
	return s.issueTokens(ctx, userID)
}

func (s *authService) Logout(ctx context.Context, accessToken string) error {
	return s.tokenRepo.RevokeAccess(ctx, accessToken)
}

func (s *authService) ValidateToken(ctx context.Context, accessToken string) (*models.User, error) {
	userID, err := s.tokenRepo.ValidateAccess(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

func (s *authService) UpdateTimezone(ctx context.Context, userID uint64, timezone string) error {
	if _, err := time.LoadLocation(timezone); err != nil || timezone == "" {
		return ErrInvalidTimezone
	}
	return s.userRepo.UpdateTimezone(ctx, userID, timezone)
}

func (s *authService) AuthenticateChat(ctx context.Context, email, password string, chatID int64) (*models.User, error) {
	user, err := s.verifyCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetChatID(ctx, user.ID, chatID); err != nil {
		return nil, err
	}
	user.ChatID = &chatID
	return user, nil
}

func (s *authService) RegisterChat(ctx context.Context, name, email, password string, chatID int64) (*models.User, error) {
	user, err := s.Register(ctx, name, email, password, "")
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetChatID(ctx, user.ID, chatID); err != nil {
		return nil, err
	}
	user.ChatID = &chatID
	return user, nil
}

func (s *authService) verifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) issueTokens(ctx context.Context, userID uint64) (*models.TokenResponse, error) {
	access, refresh, err := s.tokenRepo.CreatePair(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}
