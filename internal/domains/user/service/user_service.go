package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"campaignhub-backend/internal/domains/user/model"
	"campaignhub-backend/internal/domains/user/repository"
	"campaignhub-backend/pkg/cache"
	"campaignhub-backend/pkg/jwt"
	"campaignhub-backend/pkg/logger"
)

// bcrypt cost 12 trades a little login latency for a hash that stays
// expensive to brute-force.
const bcryptCost = 12

type UserService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	Refresh(ctx context.Context, req model.RefreshRequest) (*model.TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

// =====================================================
// USER SERVICE IMPLEMENTATION
// =====================================================

type userService struct {
	repo       repository.UserRepository
	jwtManager *jwt.Manager
	sessions   cache.Cache // refresh-token session store
}

func NewUserService(repo repository.UserRepository, jwtManager *jwt.Manager, sessions cache.Cache) UserService {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
		sessions:   sessions,
	}
}

func sessionKey(userID string) string {
	return "session:refresh:" + userID
}

// =====================================================
// REGISTER
// =====================================================

func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	// Step 1: Validate
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Reject duplicate email early; the unique constraint on
	// the email column backstops concurrent registrations.
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, model.ErrEmailAlreadyExists
	}

	// Step 3: Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// Step 4: Persist
	now := time.Now()
	user := &model.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Name:         req.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Step 5: Issue tokens so registration doubles as first login
	return s.issueTokens(ctx, user)
}

// =====================================================
// LOGIN
// =====================================================

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Unknown email and wrong password collapse into one error
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// =====================================================
// TOKEN LIFECYCLE
// =====================================================

func (s *userService) issueTokens(ctx context.Context, user *model.User) (*model.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID.String(), user.Email, user.Name)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	// Only the stored refresh token is redeemable; logout deletes it
	// and every previously issued refresh token dies with it.
	if err := s.sessions.Set(ctx, sessionKey(user.ID.String()), refreshToken, s.jwtManager.RefreshExpiry()); err != nil {
		logger.Error("store refresh session failed", err)
	}

	return &model.AuthResponse{
		User: model.NewUserResponse(user),
		Tokens: model.TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}

func (s *userService) Refresh(ctx context.Context, req model.RefreshRequest) (*model.TokenPair, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	claims, err := s.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, model.ErrInvalidRefreshToken
	}

	// The token must match the active session exactly
	var stored string
	found, err := s.sessions.Get(ctx, sessionKey(claims.UserID), &stored)
	if err != nil {
		return nil, fmt.Errorf("read refresh session: %w", err)
	}
	if !found || stored != req.RefreshToken {
		return nil, model.ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, model.ErrInvalidRefreshToken
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, model.ErrInvalidRefreshToken
	}

	// Rotate: the old refresh token is replaced, not extended
	auth, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &auth.Tokens, nil
}

func (s *userService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.sessions.Delete(ctx, sessionKey(userID.String()))
}

// =====================================================
// PROFILE
// =====================================================

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.repo.FindByID(ctx, userID)
}
