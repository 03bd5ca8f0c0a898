package services

import (
	"context"
	"strings"

	"geocheckin/constants"
	"geocheckin/dto"
	"geocheckin/errors"
	"geocheckin/models"
	"geocheckin/services/logger"
	"geocheckin/validator"

	"golang.org/x/crypto/bcrypt"
)

// UserRepository persists users. Find methods return nil, nil when absent.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// GoogleVerifier validates a Google ID token.
type GoogleVerifier interface {
	Verify(ctx context.Context, tokenID string) (dto.GoogleUser, error)
}

type AuthService struct {
	users  UserRepository
	tokens *TokenManager
	google GoogleVerifier
	logger logger.Logger
}

type AuthServiceOptions struct {
	Users  UserRepository
	Tokens *TokenManager
	Google GoogleVerifier
	Logger logger.Logger
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{
		users:  opts.Users,
		tokens: opts.Tokens,
		google: opts.Google,
		logger: opts.Logger,
	}
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an email/password account.
func (s *AuthService) Register(ctx context.Context, input dto.RegisterInput) (*models.User, error) {
	input.Email = normalizeEmail(input.Email)
	if err := validator.ValidateRegister(input); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Signup failed. Please try again.", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrCodeEmailInUse, "Email already in use.", errors.ErrUserAlreadyExists)
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidPassword, "Password is too weak.", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    input.Email,
		Password: hashed,
		Role:     constants.RoleMember,
		Status:   constants.UserStatusActive,
	}
	if user.Name == "" {
		user.Name = input.Email
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Signup failed. Please try again.", err)
	}

	s.logger.Info("registered user %d (%s)", user.ID, user.Email)
	return user, nil
}

// Login checks email and password and issues an access token.
func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (dto.LoginResponse, error) {
	invalid := errors.NewAppError(errors.ErrCodeInvalidLogin, "Invalid email or password", errors.ErrInvalidPassword)

	user, err := s.users.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return dto.LoginResponse{}, errors.NewAppError(errors.ErrCodeDBError, "Login failed", err)
	}
	if user == nil || user.Password == "" {
		return dto.LoginResponse{}, invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return dto.LoginResponse{}, invalid
	}
	if user.Status != constants.UserStatusActive {
		return dto.LoginResponse{}, errors.NewAppError(errors.ErrCodeUnauthorized, "Account is disabled", errors.ErrUnauthorized)
	}

	return s.issue(user)
}

// LoginWithGoogle signs in with a Google ID token, creating the account on first use.
func (s *AuthService) LoginWithGoogle(ctx context.Context, tokenID string) (dto.LoginResponse, error) {
	if s.google == nil {
		return dto.LoginResponse{}, errors.NewAppError(errors.ErrCodeUnauthorized, "Google sign-in is not configured", nil)
	}

	googleUser, err := s.google.Verify(ctx, tokenID)
	if err != nil {
		return dto.LoginResponse{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Invalid Google token", err)
	}
	if !googleUser.VerifiedEmail {
		return dto.LoginResponse{}, errors.NewAppError(errors.ErrCodeInvalidEmail, "Email has not been verified", nil)
	}

	email := normalizeEmail(googleUser.Email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return dto.LoginResponse{}, errors.NewAppError(errors.ErrCodeDBError, "Login failed", err)
	}
	if user == nil {
		user = &models.User{
			Name:       googleUser.Name,
			Email:      email,
			Avatar:     googleUser.Picture,
			IsVerified: true,
			Role:       constants.RoleMember,
			Status:     constants.UserStatusActive,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return dto.LoginResponse{}, errors.NewAppError(errors.ErrCodeDBError, "Login failed", err)
		}
		s.logger.Info("created google user %d (%s)", user.ID, user.Email)
	}

	return s.issue(user)
}

// Profile returns the current user.
func (s *AuthService) Profile(ctx context.Context, userID uint) (dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return dto.UserResponse{}, errors.NewAppError(errors.ErrCodeDBError, "Failed to load profile", err)
	}
	if user == nil {
		return dto.UserResponse{}, errors.NewAppError(errors.ErrCodeUserNotFound, "User not found", errors.ErrUserNotFound)
	}
	return ToUserResponse(user), nil
}

func (s *AuthService) issue(user *models.User) (dto.LoginResponse, error) {
	token, err := s.tokens.GenerateToken(UserInfo{
		UserId: user.ID,
		Role:   user.Role,
		Email:  user.Email,
	})
	if err != nil {
		return dto.LoginResponse{}, err
	}
	return dto.LoginResponse{
		UserInfo:    ToUserResponse(user),
		AccessToken: token,
	}, nil
}

func ToUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Verified:  user.IsVerified,
		Role:      user.Role,
		Status:    user.Status,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
