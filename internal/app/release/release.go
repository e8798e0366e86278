package release

import (
	"context"
	"fmt"

	"github.com/slok/tokactl/internal/log"
	"github.com/slok/tokactl/internal/model"
	"github.com/slok/tokactl/internal/sandbox"
)

// ServiceConfig is the configuration for the release service.
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

// Service releases reserved sandboxes.
type Service struct {
	manager sandbox.Manager
	logger  log.Logger
}

// NewService creates a new release service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		manager: cfg.Manager,
		logger:  cfg.Logger,
	}, nil
}

// Request represents the release request parameters.
type Request struct {
	Sandbox string
	// Child is the blueprint child sandbox to release. Blueprint children
	// are named by the controller, so a process that did not reserve the
	// blueprint needs it to release the reservation.
	Child string
}

// Run releases the sandbox (or its blueprint child) and returns the released sandbox name.
func (s *Service) Run(ctx context.Context, req Request) (string, error) {
	if req.Sandbox == "" {
		return "", fmt.Errorf("invalid request: sandbox is required: %w", model.ErrNotValid)
	}

	if err := s.manager.Select(ctx, req.Sandbox); err != nil {
		return "", fmt.Errorf("could not select sandbox: %w", err)
	}

	if req.Child != "" {
		if err := s.manager.ReleaseNamed(ctx, req.Child); err != nil {
			return "", fmt.Errorf("could not release sandbox: %w", err)
		}
		s.logger.Infof("released sandbox: %s", req.Child)
		return req.Child, nil
	}

	released, err := s.manager.Release(ctx)
	if err != nil {
		return "", fmt.Errorf("could not release sandbox: %w", err)
	}

	s.logger.Infof("released sandbox: %s", released)
	return released, nil
}
