package usecase

import (
	"context"
	"fmt"
	"time"

	"vivelo/internal/data/entity"
	"vivelo/internal/data/repository"
	"vivelo/internal/dto/request"
	"vivelo/internal/dto/response"
	"vivelo/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	repo          *repository.Repository
	sessionExpiry time.Duration
	now           func() time.Time
	log           *zap.Logger
}

func NewAuthService(repo *repository.Repository, sessionExpiryHours int, log *zap.Logger) AuthService {
	return &authService{
		repo:          repo,
		sessionExpiry: time.Duration(sessionExpiryHours) * time.Hour,
		now:           time.Now,
		log:           log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         entity.UserRole(req.Role),
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	profile := &entity.Profile{
		Base: entity.Base{
			ID:        user.ID,
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:                user.ID,
		DisplayName:           req.DisplayName,
		Phone:                 req.Phone,
		City:                  req.City,
		MaxConcurrentServices: 1,
	}
	if err := s.repo.Profile.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", req.Role),
	)

	return s.openSession(ctx, user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredential
	}

	return s.openSession(ctx, user)
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.repo.Session.Delete(ctx, token)
}

func (s *authService) openSession(ctx context.Context, user *entity.User) (*response.AuthResponse, error) {
	now := s.now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Token:     utils.GenerateSessionToken(),
		ExpiresAt: now.Add(s.sessionExpiry),
	}
	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return &response.AuthResponse{
		Token: session.Token.String(),
		User: response.AuthUserResponse{
			ID:    user.ID.String(),
			Email: user.Email,
			Role:  string(user.Role),
		},
	}, nil
}
