package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/acadflow/ethics-review/internal/application/port"
	"github.com/acadflow/ethics-review/internal/domain/entity"
	"github.com/acadflow/ethics-review/internal/domain/workflow"
	"github.com/acadflow/ethics-review/pkg/auth"
	"github.com/acadflow/ethics-review/pkg/utils"
)

// RegisterRequest carries a new user account
type RegisterRequest struct {
	Name        string
	Email       string
	Password    string
	Role        string
	FacultyID   *int64
	CommitteeID *int64
}

// AuthService resolves callers to {id, role} and manages accounts
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
	Register(ctx context.Context, req RegisterRequest) (*entity.User, error)

	// Bootstrap creates the initial super admin when no users exist yet
	Bootstrap(ctx context.Context, name, email, password string) error
}

type authServiceImpl struct {
	userRepo port.UserRepository
	tokens   *auth.Manager
	logger   Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo port.UserRepository, tokens *auth.Manager, logger Logger) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID, "role", user.Role)
	return token, user, nil
}

func (s *authServiceImpl) Register(ctx context.Context, req RegisterRequest) (*entity.User, error) {
	role, err := workflow.ResolveRole(req.Role)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := utils.ValidateEmail(email); err != nil {
		return nil, err
	}
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role.String(),
		FacultyID:    req.FacultyID,
		CommitteeID:  req.CommitteeID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("User registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *authServiceImpl) Bootstrap(ctx context.Context, name, email, password string) error {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err = s.Register(ctx, RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     workflow.RoleSuperAdmin.String(),
	})
	if err != nil {
		return fmt.Errorf("bootstrap super admin: %w", err)
	}

	s.logger.Info("Bootstrap super admin created", "email", email)
	return nil
}
