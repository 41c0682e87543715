package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"slideforge/internal/models"
	"slideforge/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL    = 24 * time.Hour
	defaultRememberTTL = 30 * 24 * time.Hour
)

// Domain errors for auth flows.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// callers must not reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthConfig carries the session signing settings.
type AuthConfig struct {
	SigningKey  string
	TokenTTL    time.Duration
	RememberTTL time.Duration
}

// AuthService handles registration, login verification, and session tokens.
type AuthService struct {
	users       repository.Users
	signingKey  []byte
	tokenTTL    time.Duration
	rememberTTL time.Duration
}

func NewAuthService(users repository.Users, cfg AuthConfig) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.RememberTTL <= 0 {
		cfg.RememberTTL = defaultRememberTTL
	}
	return &AuthService{
		users:       users,
		signingKey:  []byte(cfg.SigningKey),
		tokenTTL:    cfg.TokenTTL,
		rememberTTL: cfg.RememberTTL,
	}
}

var _ Authorization = (*AuthService)(nil)

// Register hashes the password and creates a new user. Email format is
// validated at the form boundary before this is reached; uniqueness is
// enforced by the store and surfaces as repository.ErrDuplicateUser.
func (s *AuthService) Register(username, email, password string) (int, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}
	return s.users.Create(username, strings.ToLower(strings.TrimSpace(email)), hash)
}

// Authenticate looks a user up by email and verifies the password.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	u, err := s.users.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Claims defines the session JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// IssueToken returns a signed session token for the user. The remember
// flag stretches the expiry from hours to weeks.
func (s *AuthService) IssueToken(userID int, remember bool) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.SessionTTL(remember))),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.signingKey)
}

// ParseToken validates a session token and returns the userID it carries.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

// SessionTTL reports the lifetime a session issued with the given remember
// flag gets; the web layer uses it for the cookie Max-Age.
func (s *AuthService) SessionTTL(remember bool) time.Duration {
	if remember {
		return s.rememberTTL
	}
	return s.tokenTTL
}

// UserByID resolves a session's user. Returns (nil, nil) when the account
// no longer exists.
func (s *AuthService) UserByID(id int) (*models.User, error) {
	return s.users.GetByID(id)
}

func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
