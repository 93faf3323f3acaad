package api

import (
	"context"
	"encoding/json"
	"fmt"
)

// User is the authenticated account as reported by the backend.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	ID    int64  `json:"id"`
}

// Session is the result of a successful login.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login exchanges credentials for a bearer token. Persisting the token is
// the caller's business; the client only reads it back through its
// TokenStore.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	body := map[string]string{"email": email, "password": password}
	raw, err := c.Post(ctx, "/auth/login", body)
	if err != nil {
		return Session{}, err
	}
	obj, err := DecodeObject(raw)
	if err != nil {
		return Session{}, err
	}
	var session Session
	if err := json.Unmarshal(obj, &session); err != nil {
		return Session{}, fmt.Errorf("failed to decode login response: %w", err)
	}
	if session.Token == "" {
		return Session{}, &RequestError{Message: "login response did not include a token"}
	}
	return session, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, name, email, password string) (User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	raw, err := c.Post(ctx, "/auth/register", body)
	if err != nil {
		return User{}, err
	}
	obj, err := DecodeObject(raw)
	if err != nil {
		return User{}, err
	}
	var user User
	if err := json.Unmarshal(obj, &user); err != nil {
		return User{}, fmt.Errorf("failed to decode register response: %w", err)
	}
	return user, nil
}

// Me returns the account the stored token belongs to.
func (c *Client) Me(ctx context.Context) (User, error) {
	raw, err := c.Get(ctx, "/auth/me", nil)
	if err != nil {
		return User{}, err
	}
	obj, err := DecodeObject(raw)
	if err != nil {
		return User{}, err
	}
	var user User
	if err := json.Unmarshal(obj, &user); err != nil {
		return User{}, fmt.Errorf("failed to decode profile response: %w", err)
	}
	return user, nil
}
