package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/SaniTheWay/TaskManagmentSystem/internal/constants"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/models"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameRequired   = validationError("username is required")
	ErrUsernameTooLong    = validationError(fmt.Sprintf("username must be at most %d characters", constants.MaxUsernameLength))
	ErrUsernameTaken      = validationError("username already exists")
	ErrWeakPassword       = validationError(fmt.Sprintf("password must be at least %d characters", constants.MinPasswordLength))
	ErrPasswordTooLong    = validationError("password must be at most 72 bytes")
	ErrUserNotFound       = notFoundError("user not found")
)

// AuthService is the identity part of the workflow: registration,
// credential checks and user lookup.
type AuthService struct {
	userRepo repository.UserRepository
	log      *zap.SugaredLogger
	cost     int
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, log *zap.SugaredLogger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		log:      log,
		cost:     bcrypt.DefaultCost,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Password string
}

// Register creates a TeamMember account. The username check runs before the
// password check, so a taken name is reported regardless of the password.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if utf8.RuneCountInString(username) > constants.MaxUsernameLength {
		return nil, ErrUsernameTooLong
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, persistenceError(s.log, "check username", err)
	}

	if utf8.RuneCountInString(input.Password) < constants.MinPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleTeamMember,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, persistenceError(s.log, "create user", err)
	}

	s.log.Infow("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// AuthResult is what the caller needs to establish a session.
type AuthResult struct {
	User *models.User
	Role models.UserRole
}

// Authenticate verifies credentials. Unknown users and wrong passwords both
// yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		return nil, lookupError(s.log, "find user", err, ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &AuthResult{User: user, Role: user.Role}, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.log, "find user", err, ErrUserNotFound)
	}
	return user, nil
}

// ListUsers returns every user, for member pickers.
func (s *AuthService) ListUsers(ctx context.Context, actor Actor) ([]models.User, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, persistenceError(s.log, "list users", err)
	}
	return users, nil
}

// ChangePasswordInput holds the current and the replacement password.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// ChangePassword replaces the actor's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, actor Actor, input ChangePasswordInput) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	user, err := s.GetUser(ctx, actor.UserID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if utf8.RuneCountInString(input.NewPassword) < constants.MinPasswordLength {
		return ErrWeakPassword
	}

	hash, err := s.hashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	if err := s.userRepo.Update(ctx, user); err != nil {
		return persistenceError(s.log, "update user", err)
	}
	return nil
}

// EnsureAdmin makes sure a CompanyAdmin account with the given username
// exists. An existing user with that name is promoted; its password is kept.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		if user.Role == models.RoleCompanyAdmin {
			return user, nil
		}
		user.Role = models.RoleCompanyAdmin
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, persistenceError(s.log, "promote admin", err)
		}
		s.log.Infow("user promoted to company admin", "user_id", user.ID)
		return user, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, persistenceError(s.log, "find admin", err)
	}

	if utf8.RuneCountInString(password) < constants.MinPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	user = &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleCompanyAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, persistenceError(s.log, "create admin", err)
	}

	s.log.Infow("company admin created", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (s *AuthService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", persistenceError(s.log, "hash password", err)
	}
	return string(hash), nil
}
