package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"chatdesk/internal/apperr"
	"chatdesk/internal/model"
	"chatdesk/internal/model/auth"
	"chatdesk/internal/pkg/id"
	"chatdesk/internal/pkg/jwt"
	"chatdesk/internal/pkg/password"
	authRepo "chatdesk/internal/repository/auth"
)

// AuthService handles registration, login and profile management.
type AuthService struct {
	userRepo *authRepo.UserRepo
	jwt      *jwt.JWT
}

// NewAuthService creates the auth service.
func NewAuthService(userRepo *authRepo.UserRepo, jwtSecret string, tokenExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		jwt:      jwt.NewJWT(jwtSecret, tokenExpiry),
	}
}

// AuthResult is a user plus a fresh access token.
type AuthResult struct {
	User      *auth.User
	Token     string
	ExpiresIn int
}

// Register creates an account and signs the user in.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.InvalidState("email already registered")
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return nil, apperr.Store(err)
	}

	user := &auth.User{
		ID:       id.New(),
		FullName: strings.TrimSpace(req.FullName),
		Email:    email,
		Password: hashed,
		Role:     auth.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !password.Verify(req.Password, user.Password) {
		// One message for both cases, no account probing.
		return nil, apperr.Validation("invalid email or password")
	}

	if err := s.userRepo.StampLastLogin(ctx, user.ID); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to stamp last login")
	}

	return s.issueToken(user)
}

// GetProfile fetches the authenticated user.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*auth.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

// UpdateProfile applies partial profile changes.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*auth.User, error) {
	set := bson.M{}
	if req.FullName != "" {
		set["full_name"] = strings.TrimSpace(req.FullName)
	}
	if req.Avatar != "" {
		set["avatar"] = req.Avatar
	}
	if len(set) == 0 {
		return nil, apperr.Validation("nothing to update")
	}

	if err := s.userRepo.UpdateFields(ctx, userID, set); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

func (s *AuthService) issueToken(user *auth.User) (*AuthResult, error) {
	token, err := s.jwt.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to generate token")
		return nil, apperr.Store(err)
	}

	return &AuthResult{
		User:      user,
		Token:     token,
		ExpiresIn: int(s.jwt.GetExpiration().Seconds()),
	}, nil
}
