package services

import (
	"context"
	"errors"
	"strings"

	"greentech_backend/internal/auth"
	"greentech_backend/internal/logger"
	"greentech_backend/internal/models"
	"greentech_backend/internal/repositories"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error)
	// Login returns the session payload together with its signed token.
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*auth.Session, string, error)
	// Refresh re-reads the user so role changes show up without a new login.
	Refresh(ctx context.Context, db *gorm.DB, userID string) (*auth.Session, string, error)
}

type authService struct {
	userRepo      repositories.UserRepository
	roleRepo      repositories.RoleRepository
	tokens        *auth.TokenManager
	notifications NotificationService
}

func NewAuthService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	tokens *auth.TokenManager,
	notifications NotificationService,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		roleRepo:      roleRepo,
		tokens:        tokens,
		notifications: notifications,
	}
}

// BuildSession maps a user with a preloaded role to its session payload.
func BuildSession(user *models.User) auth.Session {
	return auth.Session{
		UserID:      user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.RoleName(),
		Permissions: user.PermissionNames(),
	}
}

func (s *authService) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	db = db.WithContext(ctx)

	var roleID *string
	role, err := s.roleRepo.FindRoleByName(db, models.RoleUser)
	switch {
	case err == nil:
		roleID = &role.ID
	case errors.Is(err, repositories.ErrRoleNotFound):
		logger.CtxWarn(ctx, "Default role missing, registering user without a role", "role", models.RoleUser)
	default:
		return nil, apperrors.InternalError(err)
	}

	user, err := createUser(db, s.userRepo, req.Name, req.Email, req.Password, roleID)
	if err != nil {
		return nil, err
	}
	user.Role = role

	logger.CtxInfo(ctx, "User registered", "user_id", user.ID)
	s.notifications.SendWelcome(ctx, user)

	return dto.NewUserResponse(user), nil
}

func (s *authService) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*auth.Session, string, error) {
	db = db.WithContext(ctx)

	user, err := s.userRepo.FindByEmail(db, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.CtxWarn(ctx, "Login failed: wrong password", "user_id", user.ID)
		return nil, "", apperrors.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *authService) Refresh(ctx context.Context, db *gorm.DB, userID string) (*auth.Session, string, error) {
	user, err := s.userRepo.FindByID(db.WithContext(ctx), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", apperrors.ErrInvalidToken
		}
		return nil, "", apperrors.InternalError(err)
	}
	return s.issue(user)
}

func (s *authService) issue(user *models.User) (*auth.Session, string, error) {
	session := BuildSession(user)
	token, err := s.tokens.Issue(session)
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}
	return &session, token, nil
}

// createUser is shared by self-registration and the admin endpoint.
func createUser(db *gorm.DB, repo repositories.UserRepository, name, emailAddr, password string, roleID *string) (*models.User, error) {
	if err := auth.ValidatePassword(password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(emailAddr)),
		PasswordHash: hash,
		RoleID:       roleID,
	}
	if err := repo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}
