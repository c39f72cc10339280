// Package api is a thin HTTP client for the todoauth auth endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/todoauth/internal/common"
)

// User is the account view returned by the server.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	IsDemo bool   `json:"isDemo"`
}

// Session is a signed-in user and its bearer token.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email string, password []byte) (*Session, error) {
	return c.post(ctx, "/auth/login", &credentials{Email: email, Password: string(password)})
}

func (c *Client) Register(ctx context.Context, email string, password []byte) (*Session, error) {
	return c.post(ctx, "/auth/register", &credentials{Email: email, Password: string(password)})
}

func (c *Client) DemoLogin(ctx context.Context) (*Session, error) {
	return c.post(ctx, "/auth/demo", nil)
}

// Ping reports whether the server answers its health check.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: %s", resp.Status)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any) (*Session, error) {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, decodeError(resp)
	}

	s := &Session{}
	if err := json.NewDecoder(resp.Body).Decode(s); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}
	return s, nil
}

// decodeError maps the server's error message back to the shared sentinels.
func decodeError(resp *http.Response) error {
	var e struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&e)

	switch e.Message {
	case "MissingCredentials":
		return common.ErrMissingCredentials
	case "InvalidCredentials":
		return common.ErrInvalidCredentials
	case "EmailExists":
		return common.ErrEmailExists
	case "InternalFailure":
		return common.ErrorInternal
	default:
		return fmt.Errorf("unexpected response: %s", resp.Status)
	}
}
