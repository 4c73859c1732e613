package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"zoomieband/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("identity client not configured")
	ErrUpstream      = errors.New("identity upstream error")
)

const (
	signInPath  = "/v1/accounts:signInWithPassword"
	signUpPath  = "/v1/accounts:signUp"
	signOutPath = "/v1/accounts:revoke"
)

// Config del identity provider.
// BaseURL y APIKey vienen de config (identity.base_url / identity.api_key).
type Config struct {
	BaseURL string
	APIKey  string

	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration

	// Opcional (tests).
	Transport http.RoundTripper
}

// ProviderError es un rechazo del provider (4xx) con mensaje legible para el usuario.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return e.Message
}

type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.New(cfg.BaseURL, timeout, cfg.Transport)
	if err != nil {
		return nil, err
	}

	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	hc.Headers[h] = strings.TrimSpace(cfg.APIKey)

	return &Client{http: hc}, nil
}

type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

// Tokens es lo que devuelve el provider en sign-in / sign-up.
type Tokens struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	LocalID      string `json:"localId"`
}

func (c *Client) SignIn(ctx context.Context, email, password string) (Tokens, error) {
	var out Tokens
	err := c.do(ctx, signInPath, credentialsRequest{Email: email, Password: password, ReturnSecureToken: true}, &out)
	return out, err
}

func (c *Client) SignUp(ctx context.Context, email, password string) (Tokens, error) {
	var out Tokens
	err := c.do(ctx, signUpPath, credentialsRequest{Email: email, Password: password, ReturnSecureToken: true}, &out)
	return out, err
}

func (c *Client) Revoke(ctx context.Context, refreshToken string) error {
	return c.do(ctx, signOutPath, map[string]string{"refreshToken": refreshToken}, nil)
}

func (c *Client) do(ctx context.Context, path string, in, out any) error {
	if c == nil || c.http == nil {
		return ErrNotConfigured
	}

	err := c.http.DoJSON(ctx, http.MethodPost, path, in, out)
	if err == nil {
		return nil
	}

	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode >= 400 && httpErr.StatusCode < 500 {
			msg := httpErr.Message
			if msg == "" {
				msg = http.StatusText(httpErr.StatusCode)
			}
			return &ProviderError{StatusCode: httpErr.StatusCode, Message: msg}
		}
		return fmt.Errorf("%w: status=%d", ErrUpstream, httpErr.StatusCode)
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
