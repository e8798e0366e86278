// Package transport authenticates against the lab controller and exchanges JSON
// requests with it.
package transport

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/tokactl/internal/log"
	"github.com/slok/tokactl/internal/model"
)

const loginPath = "/tokalabs/api/login"

// SessionConfig is the configuration used to authenticate a session.
type SessionConfig struct {
	// Endpoint is the controller address, `https://` is used when no scheme is set.
	Endpoint string
	User     string
	Password string
	// InsecureSkipVerify disables the controller certificate validation. Lab
	// controllers are usually deployed with self-signed certificates on private
	// networks, so callers have to decide this explicitly.
	InsecureSkipVerify bool
	// HTTPClient overrides the HTTP client, InsecureSkipVerify is ignored when set.
	HTTPClient *http.Client
	Logger     log.Logger
}

func (c *SessionConfig) defaults() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	c.Endpoint = normalizeEndpoint(c.Endpoint)

	if c.User == "" {
		return fmt.Errorf("user is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "transport.Session"})

	if c.HTTPClient == nil {
		if c.InsecureSkipVerify {
			c.Logger.Debugf("Controller TLS certificate verification is disabled")
		}
		c.HTTPClient = &http.Client{
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{InsecureSkipVerify: c.InsecureSkipVerify},
			},
		}
	}

	return nil
}

func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}
	return endpoint
}

// Session is an authenticated controller session. It is immutable once created.
type Session struct {
	endpoint   string
	user       string
	token      string
	webToken   string
	httpClient *http.Client
	logger     log.Logger
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AdditionalDetails struct {
		Token struct {
			Token string `json:"token"`
		} `json:"token"`
	} `json:"additionalDetails"`
}

// Authenticate logs in the controller and returns the authenticated session.
func Authenticate(ctx context.Context, cfg SessionConfig) (*Session, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Session{
		endpoint:   cfg.Endpoint,
		user:       cfg.User,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}

	var resp loginResponse
	err := s.do(ctx, http.MethodPost, loginPath, loginRequest{Username: cfg.User, Password: cfg.Password}, &resp)
	if err != nil {
		return nil, fmt.Errorf("could not login as %s on %s: %w: %w", cfg.User, cfg.Endpoint, model.ErrAuthentication, err)
	}

	// Token format is `<user>/<web token>`, the full token is the authorization
	// header value and the web token is used on the reservation paths.
	token := resp.AdditionalDetails.Token.Token
	if token == "" {
		return nil, fmt.Errorf("login response for %s is missing the token: %w", cfg.User, model.ErrAuthentication)
	}
	s.token = token
	s.webToken = token
	if _, wt, ok := strings.Cut(token, "/"); ok {
		s.webToken = strings.TrimSpace(wt)
	}

	s.logger.Debugf("Authenticated on %s as %s", s.endpoint, s.user)

	return s, nil
}

// Endpoint returns the controller base URL.
func (s *Session) Endpoint() string { return s.endpoint }

// User returns the session user.
func (s *Session) User() string { return s.user }

// Token returns the authorization header value.
func (s *Session) Token() string { return s.token }

// WebToken returns the token used on the path based APIs.
func (s *Session) WebToken() string { return s.webToken }

// Send sends a JSON request to the controller, body and out are optional.
// Any response with a non 2xx status code is returned as a *model.APIError.
func (s *Session) Send(ctx context.Context, method, path string, body, out any) error {
	return s.do(ctx, method, path, body, out)
}

func (s *Session) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	url := s.endpoint + path
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}

	reqID := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if s.token != "" {
		req.Header.Set("Authorization", s.token)
	}

	logger := s.logger.WithValues(log.Kv{"request-id": reqID})
	logger.Debugf("%s %s", method, url)

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s request failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read %s %s response: %w", method, path, err)
	}
	logger.Debugf("%s %s responded %d in %s", method, url, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &model.APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("could not decode %s %s response: %w", method, path, err)
	}

	return nil
}
