package reserve

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/tokactl/internal/log"
	"github.com/slok/tokactl/internal/model"
	"github.com/slok/tokactl/internal/sandbox"
)

// ServiceConfig is the configuration for the reserve service.
type ServiceConfig struct {
	Manager sandbox.Manager
	Logger  log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Manager == nil {
		return fmt.Errorf("manager is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service reserves sandboxes.
type Service struct {
	manager sandbox.Manager
	logger  log.Logger
}

// NewService creates a new reserve service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		manager: cfg.Manager,
		logger:  cfg.Logger,
	}, nil
}

// Request represents the reserve request parameters.
type Request struct {
	Sandbox string
	// ForceTakeOwnership releases the sandbox if someone else holds it.
	ForceTakeOwnership bool
	// Timeout bounds the wait for the sandbox, 0 waits until it is available.
	Timeout time.Duration
}

func (r Request) validate() error {
	if r.Sandbox == "" {
		return fmt.Errorf("sandbox is required")
	}

	if r.Timeout < 0 {
		return fmt.Errorf("timeout can't be negative")
	}

	return nil
}

// Run selects and reserves the sandbox.
func (s *Service) Run(ctx context.Context, req Request) (*model.Reservation, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w: %w", err, model.ErrNotValid)
	}

	if err := s.manager.Select(ctx, req.Sandbox); err != nil {
		return nil, fmt.Errorf("could not select sandbox: %w", err)
	}

	s.logger.Debugf("reserving sandbox %s (force: %t)", req.Sandbox, req.ForceTakeOwnership)
	res, err := s.manager.Reserve(ctx, sandbox.ReserveOptions{
		ForceTakeOwnership: req.ForceTakeOwnership,
		Timeout:            req.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("could not reserve sandbox: %w", err)
	}

	s.logger.Infof("reserved sandbox: %s", req.Sandbox)
	return res, nil
}
