// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth provides password hashing and stateless bearer-token
// identity. Tokens are HS256 JWTs carrying the user's role set so the
// RBAC layer can evaluate policy without a user lookup per request.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"linguablog/internal/models"
	"linguablog/internal/rbac"
)

// Config holds token signing settings.
type Config struct {
	Secret   string
	TokenTTL time.Duration
}

// HashPassword hashes a password with bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword verifies a password against its stored hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Claims is the JWT payload for an authenticated user.
type Claims struct {
	jwt.RegisteredClaims
	Email     string   `json:"email,omitempty"`
	Superuser bool     `json:"superuser,omitempty"`
	Roles     []string `json:"roles,omitempty"`
}

// GenerateToken mints an access token for the user.
func GenerateToken(cfg Config, user *models.User) (string, error) {
	roles := make([]string, len(user.Roles))
	for i, r := range user.Roles {
		roles[i] = string(r)
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.TokenTTL)),
		},
		Email:     user.Email,
		Superuser: user.IsSuperuser,
		Roles:     roles,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ParseToken validates a token string and returns its claims.
func ParseToken(cfg Config, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Identity converts validated claims into the RBAC identity for a request.
func (c *Claims) Identity() (rbac.Identity, error) {
	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return rbac.Anonymous, fmt.Errorf("invalid subject: %w", err)
	}
	roles := make([]models.Role, 0, len(c.Roles))
	for _, name := range c.Roles {
		if models.ValidRole(name) {
			roles = append(roles, models.Role(name))
		}
	}
	return rbac.Identity{
		UserID:        userID,
		Authenticated: true,
		Superuser:     c.Superuser,
		Roles:         roles,
	}, nil
}
