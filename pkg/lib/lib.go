package lib

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/slok/tokactl/internal/labapi/rest"
	"github.com/slok/tokactl/internal/log"
	"github.com/slok/tokactl/internal/sandbox"
	"github.com/slok/tokactl/internal/transport"
)

// Config configures the SDK client.
type Config struct {
	// Address is the lab controller address, `https://` is used when no scheme is set.
	Address  string
	Username string
	Password string

	// Sandbox is selected on creation when set. See [Client.Select].
	Sandbox string

	// PollInterval is the interval between controller status checks while waiting.
	// Default: 3s.
	PollInterval time.Duration

	// VerifyCertificates enables the controller TLS certificate validation.
	// Lab controllers usually use self-signed certificates so it's disabled by default.
	VerifyCertificates bool

	// HTTPClient overrides the HTTP client used to talk with the controller.
	// VerifyCertificates is ignored when set.
	HTTPClient *http.Client

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Address == "" {
		return fmt.Errorf("address is required")
	}

	if c.Username == "" {
		return fmt.Errorf("username is required")
	}

	if c.PollInterval < 0 {
		return fmt.Errorf("poll interval can't be negative")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Client is the main SDK entry point to reserve and inspect lab sandboxes.
//
// A Client tracks the selected sandbox, the blueprint child it reserved and the
// reserved device details. It is not safe for concurrent use, use one client per sandbox.
type Client struct {
	manager sandbox.Manager
	logger  log.Logger
}

// New authenticates against the controller and returns a new SDK client.
//
//	client, err := lib.New(ctx, lib.Config{
//	    Address:  "10.0.0.1",
//	    Username: "admin",
//	    Password: "secret",
//	    Sandbox:  "my-sandbox",
//	})
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w: %w", err, ErrNotValid)
	}

	session, err := transport.Authenticate(ctx, transport.SessionConfig{
		Endpoint:           cfg.Address,
		User:               cfg.Username,
		Password:           cfg.Password,
		InsecureSkipVerify: !cfg.VerifyCertificates,
		HTTPClient:         cfg.HTTPClient,
		Logger:             cfg.Logger,
	})
	if err != nil {
		return nil, mapError(err)
	}

	api, err := rest.NewClient(rest.ClientConfig{
		Session: session,
		Logger:  cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create controller client: %w", err)
	}

	mgr, err := sandbox.NewController(sandbox.ControllerConfig{
		API:          api,
		PollInterval: cfg.PollInterval,
		Logger:       cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create sandbox controller: %w", err)
	}

	c := &Client{
		manager: mgr,
		logger:  cfg.Logger,
	}

	if cfg.Sandbox != "" {
		if err := c.Select(ctx, cfg.Sandbox); err != nil {
			return nil, err
		}
	}

	return c, nil
}
