package status

import (
	"context"
	"errors"
	"fmt"

	"github.com/slok/tokactl/internal/log"
	"github.com/slok/tokactl/internal/model"
	"github.com/slok/tokactl/internal/sandbox"
)

// ServiceConfig is the configuration for the status service.
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

// Service retrieves detailed sandbox status.
type Service struct {
	manager sandbox.Manager
	logger  log.Logger
}

// NewService creates a new status service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		manager: cfg.Manager,
		logger:  cfg.Logger,
	}, nil
}

// Request represents the status request parameters.
type Request struct {
	// Sandbox is the sandbox name to query.
	Sandbox string
}

// Run retrieves the status of a sandbox. The reserved devices are only
// returned when the sandbox is reserved.
func (s *Service) Run(ctx context.Context, req Request) (*model.SandboxInfo, error) {
	if req.Sandbox == "" {
		return nil, fmt.Errorf("invalid request: sandbox is required: %w", model.ErrNotValid)
	}

	s.logger.Debugf("getting status for sandbox: %s", req.Sandbox)

	if err := s.manager.Select(ctx, req.Sandbox); err != nil {
		return nil, fmt.Errorf("could not select sandbox: %w", err)
	}

	t, err := s.manager.Details(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get sandbox details: %w", err)
	}

	info := &model.SandboxInfo{
		Topology: *t,
		Child:    s.manager.Child(),
	}

	devices, err := s.manager.Devices()
	switch {
	case errors.Is(err, model.ErrNotReserved):
	case err != nil:
		return nil, fmt.Errorf("could not get sandbox devices: %w", err)
	default:
		info.Devices = devices
	}

	return info, nil
}
