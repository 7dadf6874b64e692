package service

import (
	"context"
	"errors"
	"fmt"

	"bloghub/internal/app/limiter"
	"bloghub/internal/common"
	"bloghub/internal/common/security"
	"bloghub/internal/domain/model"
	"bloghub/internal/domain/repository"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo repository.UserRepository
	blogRepo repository.BlogRepository
	tokens   *security.TokenAuth
	lim      limiter.Limiter
}

func NewAuthService(
	userRepo repository.UserRepository,
	blogRepo repository.BlogRepository,
	tokens *security.TokenAuth,
	lim limiter.Limiter,
) *AuthService {
	return &AuthService{userRepo: userRepo, blogRepo: blogRepo, tokens: tokens, lim: lim}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type ProfileResponse struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Email string       `json:"email"`
	Blogs []model.Blog `json:"blogs"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, common.Errorf("name, email and password are required: %w", common.ErrBadRequest)
	}

	// Friendlier error than the raw unique-constraint failure. The database
	// constraint remains the authoritative guard against concurrent
	// registrations; Create maps that violation to ErrConflict too.
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, common.Errorf("user with given email: %w", common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{ID: user.ID, Name: user.Name, Email: user.Email, Token: token}, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// collapse into the same ErrInvalidCredentials so the response does not reveal
// which emails are registered.
func (s *AuthService) Login(ctx context.Context, req LoginRequest, ip string) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.Errorf("email and password are required: %w", common.ErrBadRequest)
	}

	ipHash := limiter.HashIP(ip)
	allowed, _, err := s.lim.Allow(ctx, req.Email, ipHash)
	if err != nil {
		return nil, fmt.Errorf("limiter check failed: %w", err)
	}
	if !allowed {
		return nil, common.ErrRateLimited
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err != nil || !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		if blocked, _, ferr := s.lim.Failure(ctx, req.Email, ipHash); ferr == nil && blocked {
			return nil, common.ErrRateLimited
		}
		return nil, common.ErrInvalidCredentials
	}

	// Best-effort reset; a stale counter only makes the limiter stricter.
	_ = s.lim.Success(ctx, req.Email, ipHash)

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{ID: user.ID, Name: user.Name, Email: user.Email, Token: token}, nil
}

// CurrentUser returns the authenticated user's profile along with the posts
// they own.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	blogs, err := s.blogRepo.ListByAuthor(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user blogs: %w", err)
	}

	return &ProfileResponse{ID: user.ID, Name: user.Name, Email: user.Email, Blogs: blogs}, nil
}
