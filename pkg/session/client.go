package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/leadgrid/console/pkg/logger"
)

// Credentials is the login request body forwarded to the authentication
// endpoint.
type Credentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the authentication endpoint's success payload.
// Token is extracted from the payload's "token" field; an empty Token
// means the endpoint answered without a credential and the decode/replace
// sequence is skipped.
type LoginResponse struct {
	Token   string
	Payload map[string]any
}

// AuthAPI is the authentication endpoint as consumed by the Manager.
type AuthAPI interface {
	Login(ctx context.Context, creds Credentials) (*LoginResponse, error)
}

// Client calls the authentication endpoint over HTTP. Calls run through a
// circuit breaker so a flapping identity provider does not pile up login
// requests.
type Client struct {
	endpoint   string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*LoginResponse]
	log        logger.LogManager
}

// ClientOption configures the auth client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates an auth client for the given login endpoint URL.
func NewClient(endpoint string, log logger.LogManager, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = gobreaker.NewCircuitBreaker[*LoginResponse](gobreaker.Settings{
		Name:        "auth-login",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return c
}

// Login posts the credentials and returns the decoded success payload.
// Transport and non-2xx failures are returned as-is so the login form can
// surface them; the caller's permission state is not touched here.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	return c.breaker.Execute(func() (*LoginResponse, error) {
		return c.doLogin(ctx, creds)
	})
}

func (c *Client) doLogin(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("session: encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("session: build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("session: login request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("session: login failed with status %d: %s", resp.StatusCode, string(data))
	}

	payload := map[string]any{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("session: decode login response: %w", err)
	}

	token, _ := payload["token"].(string)
	return &LoginResponse{Token: token, Payload: payload}, nil
}
