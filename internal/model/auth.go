package model

import "github.com/golang-jwt/jwt/v5"

// LoginRequest is the author login payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	Token    string `json:"token"`
	AuthorID string `json:"authorId"`
}

// AuthorClaims are the JWT claims for a paper author
type AuthorClaims struct {
	AuthorID string `json:"authorId"`
	jwt.RegisteredClaims
}
