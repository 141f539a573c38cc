package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/collab-projects-api/internal/constants"
	"github.com/yukikurage/collab-projects-api/internal/logger"
	"github.com/yukikurage/collab-projects-api/internal/models"
	"github.com/yukikurage/collab-projects-api/internal/repository"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

var (
	ErrEmailTaken           = errors.New("a user with this email already exists")
	ErrEmailRequired        = errors.New("email is required")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = fmt.Errorf("password must be at least %d characters", constants.MinPasswordLength)
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrWrongPassword        = errors.New("current password is incorrect")
	ErrFieldRequired        = errors.New("this field is required")
	ErrInvalidRefreshToken  = errors.New("refresh token is invalid or expired")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// TokenConfig holds token lifetimes.
type TokenConfig struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenPair is an access token and the refresh token that renews it.
type TokenPair struct {
	Access  string
	Refresh string
}

// AuthService handles registration, credentials and token issuance.
type AuthService struct {
	userRepo    repository.UserRepository
	catalogRepo repository.CatalogRepository
	tokens      TokenConfig
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, catalogRepo repository.CatalogRepository, tokens TokenConfig) *AuthService {
	if tokens.AccessTTL <= 0 {
		tokens.AccessTTL = constants.DefaultAccessTokenTTL
	}
	if tokens.RefreshTTL <= 0 {
		tokens.RefreshTTL = constants.DefaultRefreshTokenTTL
	}
	return &AuthService{
		userRepo:    userRepo,
		catalogRepo: catalogRepo,
		tokens:      tokens,
	}
}

// RegisterInput represents the information needed to create an account.
type RegisterInput struct {
	Email           string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
	Phone           string
	Program         string
	Semester        uint
	DisciplineID    *uint64
}

// Register creates a new user account.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, invalid("email", ErrEmailRequired)
	}
	if err := validateNewPassword("password", input.Password, input.PasswordConfirm); err != nil {
		return nil, err
	}

	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	program := strings.TrimSpace(input.Program)
	switch {
	case firstName == "":
		return nil, invalid("first_name", ErrFieldRequired)
	case lastName == "":
		return nil, invalid("last_name", ErrFieldRequired)
	case program == "":
		return nil, invalid("program", ErrFieldRequired)
	}

	semester := input.Semester
	if semester == 0 {
		semester = constants.DefaultSemester
	}

	if input.DisciplineID != nil {
		if err := ensureDisciplines(s.catalogRepo, "discipline_id", []uint64{*input.DisciplineID}); err != nil {
			return nil, err
		}
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, invalid("email", ErrEmailTaken)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        strings.TrimSpace(input.Phone),
		Program:      program,
		Semester:     semester,
		DisciplineID: input.DisciplineID,
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalid("email", ErrEmailTaken)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info().Uint64("user_id", user.ID).Msg("user registered")
	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id, "Discipline", "Skills")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// IssueTokens signs a fresh access and refresh token for the user.
func (s *AuthService) IssueTokens(user *models.User) (*TokenPair, error) {
	access, err := utils.GenerateToken(user.ID, utils.TokenTypeAccess, s.tokens.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateToken(user.ID, utils.TokenTypeRefresh, s.tokens.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// RefreshTokens exchanges a valid refresh token for a new pair.
func (s *AuthService) RefreshTokens(refreshToken string) (*TokenPair, error) {
	claims, err := utils.ParseToken(refreshToken, utils.TokenTypeRefresh)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrInvalidRefreshToken
	}

	return s.IssueTokens(user)
}

// ChangePasswordInput holds the current password and its replacement.
type ChangePasswordInput struct {
	OldPassword        string
	NewPassword        string
	NewPasswordConfirm string
}

// ChangePassword replaces the user's password after checking the current one.
func (s *AuthService) ChangePassword(userID uint64, input ChangePasswordInput) error {
	if err := validateNewPassword("new_password", input.NewPassword, input.NewPasswordConfirm); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)); err != nil {
		return invalid("old_password", ErrWrongPassword)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}
	user.PasswordHash = string(hashedPassword)

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	logger.Info().Uint64("user_id", user.ID).Msg("password changed")
	return nil
}

func validateNewPassword(field, password, confirm string) error {
	if len(password) < constants.MinPasswordLength {
		return invalid(field, ErrPasswordTooShort)
	}
	if password != confirm {
		return invalid(field, ErrPasswordMismatch)
	}
	return nil
}
