package sandbox

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/tokactl/internal/conventions"
	"github.com/slok/tokactl/internal/labapi"
	"github.com/slok/tokactl/internal/log"
	"github.com/slok/tokactl/internal/model"
)

// Manager manages the reservation lifecycle and the devices of a selected sandbox.
type Manager interface {
	// Select sets the active sandbox. When the sandbox is already reserved the
	// device cache is loaded so devices can be queried without reserving.
	Select(ctx context.Context, name string) error
	Selected() string
	// Child returns the blueprint child reserved by this manager, if any.
	Child() string

	Status(ctx context.Context) (model.ReservationStatus, error)
	Details(ctx context.Context) (*model.Topology, error)
	Type(ctx context.Context) (model.TopologyType, error)
	Children(ctx context.Context) ([]string, error)
	Topologies(ctx context.Context) ([]model.Topology, error)

	// Reserve waits for the sandbox to be available (or takes its ownership)
	// and reserves it. Blocks until reserved unless a timeout is set or ctx is cancelled.
	Reserve(ctx context.Context, opts ReserveOptions) (*model.Reservation, error)
	// Release releases the reserved child, or the selected sandbox when there is no child.
	// It returns the released sandbox name.
	Release(ctx context.Context) (string, error)
	// ReleaseNamed releases a sandbox by its name.
	ReleaseNamed(ctx context.Context, name string) error

	RefreshDevices(ctx context.Context) error
	Devices() ([]model.Device, error)
	DeviceExists(ctx context.Context, name string) (bool, error)
	DeviceIP(name string, mgmtInterfaceIndex int) (string, bool, error)
	DeviceUsername(name string, mgmtInterfaceIndex int) (string, bool, error)
	DevicePorts(srcName, targetName string, srcIsTrafficGenerator bool) ([]model.PortPair, error)
	InstantiatedVMName(ctx context.Context, vmProfile string) (string, bool, error)
	WaitForDevicesReserved(ctx context.Context) error

	// Keywords returns the keywords of an execution profile, nil when there are none.
	Keywords(ctx context.Context, executionProfile string) (map[string]string, error)
	SetKeywords(ctx context.Context, executionProfile string, keywords map[string]string) error

	RunSuite(ctx context.Context, suite string) error
	WaitForSuite(ctx context.Context, suite string) (model.SuiteStatus, error)
	Results(ctx context.Context) (*model.TestResult, model.Verdict, error)
}

//go:generate mockery --case underscore --output sandboxmock --outpkg sandboxmock --name Manager

var _ Manager = &Controller{}

// ReserveOptions are the options of a reservation.
type ReserveOptions struct {
	// ForceTakeOwnership releases the sandbox when someone else holds it instead of waiting.
	ForceTakeOwnership bool
	// Timeout bounds the wait for the sandbox to be available, 0 waits forever.
	Timeout time.Duration
}

// ControllerConfig is the configuration for the sandbox controller.
type ControllerConfig struct {
	API labapi.API
	// PollInterval is the interval between reservation and suite status checks.
	PollInterval time.Duration
	Logger       log.Logger
}

func (c *ControllerConfig) defaults() error {
	if c.API == nil {
		return fmt.Errorf("api is required")
	}

	if c.PollInterval <= 0 {
		c.PollInterval = conventions.DefaultPollInterval
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "sandbox.Controller"})

	return nil
}

// Controller is the Manager implementation backed by the lab controller API.
// It is not safe for concurrent use, use one controller per sandbox.
type Controller struct {
	api          labapi.API
	pollInterval time.Duration
	logger       log.Logger

	sandbox string
	child   string
	// devices is nil until the sandbox is known to be reserved.
	devices map[string]model.Device
}

// NewController returns a new sandbox controller without a selected sandbox.
func NewController(cfg ControllerConfig) (*Controller, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Controller{
		api:          cfg.API,
		pollInterval: cfg.PollInterval,
		logger:       cfg.Logger,
	}, nil
}

func (c *Controller) Select(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("sandbox name is required: %w", model.ErrNotValid)
	}

	c.sandbox = name
	c.child = ""
	c.devices = nil

	t, err := c.Details(ctx)
	if err != nil {
		if isNotFound(err) {
			c.logger.Warningf("Sandbox %s does not exist on the controller", name)
			return nil
		}
		return err
	}

	c.logger.Debugf("Selected sandbox %s (%s): %s", name, t.Type, t.Status)
	if t.Status != model.ReservationStatusReserved {
		return nil
	}

	if err := c.RefreshDevices(ctx); err != nil {
		return fmt.Errorf("could not load reserved sandbox %s devices: %w", name, err)
	}

	return nil
}

func (c *Controller) Selected() string { return c.sandbox }

func (c *Controller) Child() string { return c.child }

// activeTopology is the topology holding the reserved devices.
func (c *Controller) activeTopology() string {
	if c.child != "" {
		return c.child
	}
	return c.sandbox
}

func (c *Controller) checkSelected() error {
	if c.sandbox == "" {
		return fmt.Errorf("no sandbox selected: %w", model.ErrNotValid)
	}
	return nil
}

func (c *Controller) Details(ctx context.Context) (*model.Topology, error) {
	if err := c.checkSelected(); err != nil {
		return nil, err
	}

	return c.topology(ctx, c.sandbox)
}

func (c *Controller) topology(ctx context.Context, name string) (*model.Topology, error) {
	ts, err := c.api.ListTopologies(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("could not get sandbox %s: %w", name, err)
	}

	for _, t := range ts {
		if t.Name == name {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("sandbox %s: %w", name, model.ErrNotFound)
}

// Status is read from the controller on every call.
func (c *Controller) Status(ctx context.Context) (model.ReservationStatus, error) {
	t, err := c.Details(ctx)
	if err != nil {
		return "", err
	}

	return t.Status, nil
}

func (c *Controller) Type(ctx context.Context) (model.TopologyType, error) {
	t, err := c.Details(ctx)
	if err != nil {
		return "", err
	}

	return t.Type, nil
}

func (c *Controller) Children(ctx context.Context) ([]string, error) {
	t, err := c.Details(ctx)
	if err != nil {
		return nil, err
	}

	return t.Children, nil
}

func (c *Controller) Topologies(ctx context.Context) ([]model.Topology, error) {
	ts, err := c.api.ListTopologies(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("could not list sandboxes: %w", err)
	}

	return ts, nil
}

// sleep waits d or until the context is done.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
