package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/example/murojaahbot/pkg/models"
)

// LoginResult is the data of a successful login
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Nama     string `json:"nama"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"user_type"`
}

// Login exchanges credentials for a bearer token and the user's profile
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, nil, body, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, fmt.Errorf("login response has no token")
	}
	return &result, nil
}

// Register creates a new regular user account
func (c *Client) Register(ctx context.Context, nama, email, password string) error {
	body := RegisterRequest{
		Nama:     strings.TrimSpace(nama),
		Email:    strings.TrimSpace(email),
		Password: password,
		UserType: "user",
	}
	return c.do(ctx, http.MethodPost, "/auth/register", nil, nil, body, nil)
}

// ForgotPassword sets a new password for the account with the given email
func (c *Client) ForgotPassword(ctx context.Context, email, newPassword string) error {
	body := map[string]string{"email": email, "new_password": newPassword}
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", nil, nil, body, nil)
}

// Me fetches the current profile of the session's user
func (c *Client) Me(ctx context.Context, sess Session) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", &sess, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// TokenExpiry reads the exp claim of a JWT without verifying its signature
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, errors.New("token has no exp claim")
	}
	return exp.Time, nil
}

// TokenExpired reports whether the token is unreadable or past its exp claim
func TokenExpired(token string, now time.Time) bool {
	exp, err := TokenExpiry(token)
	if err != nil {
		return true
	}
	return exp.Before(now)
}
