package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"paperdeck/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles author authentication
type AuthService struct {
	authorUsername string
	authorPassword string
	jwtSecret      []byte
}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	username := os.Getenv("AUTHOR_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("AUTHOR_PASSWORD")
	if password == "" {
		password = "password123"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super-secret-key-change-in-production"
	}

	return &AuthService{
		authorUsername: username,
		authorPassword: password,
		jwtSecret:      []byte(secret),
	}
}

// Login validates credentials and returns a signed author token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.authorUsername || password != s.authorPassword {
		return nil, ErrInvalidCredentials
	}

	authorID := "author_" + uuid.New().String()[:8]

	claims := &model.AuthorClaims{
		AuthorID: authorID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:    tokenString,
		AuthorID: authorID,
	}, nil
}

// ValidateAuthorToken validates an author JWT and returns its claims
func (s *AuthService) ValidateAuthorToken(tokenString string) (*model.AuthorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.AuthorClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.AuthorClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
