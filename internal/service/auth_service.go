package service

import (
	"context"
	"time"

	"shopflow/internal/models"
	"shopflow/internal/repository"

	"go.uber.org/zap"
)

type RegisterInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	Role      models.Role // empty means customer
}

type AuthService struct {
	repo      *repository.Repository
	hasher    PasswordHasher
	tokens    TokenProvider
	accessTTL time.Duration
	log       *zap.Logger
}

func NewAuthService(repo *repository.Repository, hasher PasswordHasher, tokens TokenProvider, accessTTL time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		accessTTL: accessTTL,
		log:       log,
	}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	role := in.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if role != models.RoleCustomer && role != models.RoleAdmin {
		return nil, ErrInvalidRole
	}

	if taken, err := s.repo.Users.ExistsByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}
	if taken, err := s.repo.Users.ExistsByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.Users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("username", u.Username), zap.String("role", string(u.Role)))
	return u, nil
}

// Login verifies credentials and issues an access token. A missing user and
// a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, time.Time, error) {
	user, err := s.repo.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil || !s.hasher.Compare(user.PasswordHash, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	access, exp, err := s.tokens.Sign(user.ID, s.accessTTL)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, access, exp, nil
}

func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	return currentUser(ctx, s.repo.Users)
}

func (s *AuthService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	u, err := currentUser(ctx, s.repo.Users)
	if err != nil {
		return err
	}
	if !s.hasher.Compare(u.PasswordHash, oldPassword) {
		return ErrInvalidCredentials
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.Users.UpdatePassword(ctx, u.ID, hash)
}
