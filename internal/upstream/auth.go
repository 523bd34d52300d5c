package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/sevenmenu/gateway/internal/models"
)

type Session struct {
	Token      string            `json:"token"`
	User       models.User       `json:"user"`
	Restaurant models.Restaurant `json:"restaurant"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	RestaurantName string `json:"restaurant_name"`
}

// Login exchanges credentials for a session. A rejected login returns
// *AuthError carrying the server's detail message.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	return c.exchange(ctx, "/api/auth/login", loginRequest{Email: email, Password: password})
}

// Register creates an account plus its restaurant, with the same contract as
// Login.
func (c *Client) Register(ctx context.Context, email, password, name, restaurantName string) (*Session, error) {
	return c.exchange(ctx, "/api/auth/register", registerRequest{
		Email:          email,
		Password:       password,
		Name:           name,
		RestaurantName: restaurantName,
	})
}

func (c *Client) exchange(ctx context.Context, path string, body interface{}) (*Session, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "POST %s", path)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		detail := readDetail(res.Body)
		if detail == "" {
			detail = "invalid credentials"
		}
		return nil, &AuthError{Detail: detail}
	}

	var out Session
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decode session")
	}
	return &out, nil
}

type MeResponse struct {
	User       models.User       `json:"user"`
	Restaurant models.Restaurant `json:"restaurant"`
}

// Me validates a bearer token and returns the profile pair behind it.
func (c *Client) Me(ctx context.Context, token string) (*MeResponse, error) {
	var out MeResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
