package list

import (
	"context"
	"fmt"

	"github.com/slok/tokactl/internal/log"
	"github.com/slok/tokactl/internal/model"
	"github.com/slok/tokactl/internal/sandbox"
)

// ServiceConfig is the configuration for the list service.
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

// Service lists the controller sandboxes with optional filtering.
type Service struct {
	manager sandbox.Manager
	logger  log.Logger
}

// NewService creates a new list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		manager: cfg.Manager,
		logger:  cfg.Logger,
	}, nil
}

// Request represents the list request parameters.
type Request struct {
	// StatusFilter is an optional filter to only show sandboxes with this reservation status.
	StatusFilter *model.ReservationStatus
	// TypeFilter is an optional filter to only show sandboxes of this type.
	TypeFilter *model.TopologyType
}

// Run lists all sandboxes, optionally filtered by status and type.
func (s *Service) Run(ctx context.Context, req Request) ([]model.Topology, error) {
	s.logger.Debugf("listing sandboxes with filters: %v %v", req.StatusFilter, req.TypeFilter)

	ts, err := s.manager.Topologies(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list sandboxes: %w", err)
	}

	filtered := make([]model.Topology, 0, len(ts))
	for _, t := range ts {
		if req.StatusFilter != nil && t.Status != *req.StatusFilter {
			continue
		}
		if req.TypeFilter != nil && t.Type != *req.TypeFilter {
			continue
		}
		filtered = append(filtered, t)
	}

	s.logger.Debugf("found %d sandboxes", len(filtered))
	return filtered, nil
}
