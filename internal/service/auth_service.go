package service

import (
	"context"
	"strconv"
	"time"

	"newsfeed/internal/models"
	"newsfeed/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

// AuthService implements the two-step signup flow and login.
type AuthService struct {
	userRepo   repository.UserRepository
	signupRepo repository.SignupAuthRepository
	jwtSecret  string
	signupTTL  time.Duration
	now        func() time.Time
}

// SignupInput is the payload for requesting a signup.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, signupRepo repository.SignupAuthRepository, jwtSecret string, signupTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		signupRepo: signupRepo,
		jwtSecret:  jwtSecret,
		signupTTL:  signupTTL,
		now:        time.Now,
	}
}

// RequestSignup records a pending registration and returns it. A repeated
// request for the same email replaces the previous pending record.
func (s *AuthService) RequestSignup(ctx context.Context, in SignupInput) (*models.SignupAuth, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("username, email, and password are required")
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	auth := &models.SignupAuth{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
		Code:         uuid.NewString(),
		ExpiresAt:    s.now().Add(s.signupTTL),
	}
	if err := s.signupRepo.Upsert(ctx, auth); err != nil {
		return nil, err
	}
	return auth, nil
}

// VerifySignup exchanges a pending record for a real account. Expired records
// count as absent; the sweeper removes them in bulk anyway.
func (s *AuthService) VerifySignup(ctx context.Context, email, code string) (*models.User, error) {
	auth, err := s.signupRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if auth == nil {
		return nil, &models.AppError{Kind: models.CodeNotFound, Message: "no pending signup for this email"}
	}
	if auth.Expired(s.now()) {
		_ = s.signupRepo.Delete(ctx, auth)
		return nil, &models.AppError{Kind: models.CodeNotFound, Message: "no pending signup for this email"}
	}
	if auth.Code != code {
		return nil, models.NewConflictError("verification code does not match")
	}

	user := &models.User{
		Username: auth.Username,
		Email:    auth.Email,
		Password: auth.PasswordHash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.signupRepo.Delete(ctx, auth); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns a signed token plus the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, models.NewUnauthorizedError("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, models.NewUnauthorizedError("invalid email or password")
	}

	token, err := s.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", nil, models.NewInternalError(err)
	}
	return token, user, nil
}

// GenerateToken issues an HS256 JWT for the given user.
func (s *AuthService) GenerateToken(userID uint, username string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
