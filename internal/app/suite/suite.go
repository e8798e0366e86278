package suite

import (
	"context"
	"fmt"

	"github.com/slok/tokactl/internal/log"
	"github.com/slok/tokactl/internal/model"
	"github.com/slok/tokactl/internal/sandbox"
)

// ServiceConfig is the configuration for the suite service.
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

// Service runs test suites on a sandbox.
type Service struct {
	manager sandbox.Manager
	logger  log.Logger
}

// NewService creates a new suite service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		manager: cfg.Manager,
		logger:  cfg.Logger,
	}, nil
}

// Request represents the suite run request parameters.
type Request struct {
	Sandbox string
	Suite   string
	// Wait blocks until the suite finishes and collects the results.
	Wait bool
}

func (r Request) validate() error {
	if r.Sandbox == "" {
		return fmt.Errorf("sandbox is required")
	}
	if r.Suite == "" {
		return fmt.Errorf("suite is required")
	}
	return nil
}

// Response is the suite run outcome. Status, Result and Verdict are only set
// when the request waited for the suite.
type Response struct {
	Suite   string
	Status  model.SuiteStatus
	Result  *model.TestResult
	Verdict model.Verdict
}

// Run starts a suite on the sandbox and optionally waits for its results.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w: %w", err, model.ErrNotValid)
	}

	if err := s.manager.Select(ctx, req.Sandbox); err != nil {
		return nil, fmt.Errorf("could not select sandbox: %w", err)
	}

	if err := s.manager.RunSuite(ctx, req.Suite); err != nil {
		return nil, err
	}
	s.logger.Infof("suite %s started on sandbox %s", req.Suite, req.Sandbox)

	resp := &Response{Suite: req.Suite}
	if !req.Wait {
		return resp, nil
	}

	st, err := s.manager.WaitForSuite(ctx, req.Suite)
	if err != nil {
		return nil, err
	}
	resp.Status = st

	res, verdict, err := s.manager.Results(ctx)
	if err != nil {
		return nil, err
	}
	resp.Result = res
	resp.Verdict = verdict

	return resp, nil
}
