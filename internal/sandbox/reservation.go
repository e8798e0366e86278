package sandbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/slok/tokactl/internal/conventions"
	"github.com/slok/tokactl/internal/model"
)

func (c *Controller) Reserve(ctx context.Context, opts ReserveOptions) (*model.Reservation, error) {
	if err := c.checkSelected(); err != nil {
		return nil, err
	}

	exists, err := c.exists(ctx, c.sandbox)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("sandbox %s: %w", c.sandbox, model.ErrNotFound)
	}

	if err := c.waitAvailable(ctx, opts); err != nil {
		return nil, err
	}

	c.logger.Infof("Reserving sandbox %s", c.sandbox)
	start := time.Now()
	res, err := c.api.ReserveTopology(ctx, c.sandbox)
	if err != nil {
		return nil, fmt.Errorf("could not reserve sandbox %s: %w", c.sandbox, err)
	}
	if res.Status != conventions.ReserveSuccessStatus {
		return nil, fmt.Errorf("reserving sandbox %s failed with status %q: %w", c.sandbox, res.Status, model.ErrReservation)
	}
	took := time.Since(start)
	c.logger.Infof("Reserved sandbox %s in %s", res.TopologyName, took)

	c.child = ""
	if res.TopologyName != "" && res.TopologyName != c.sandbox {
		c.child = res.TopologyName
		c.logger.Infof("Blueprint %s child sandbox is %s", c.sandbox, c.child)
	}

	if err := c.RefreshDevices(ctx); err != nil {
		return nil, fmt.Errorf("sandbox %s reserved but devices could not be loaded: %w", c.activeTopology(), err)
	}

	return &model.Reservation{
		Sandbox:  c.sandbox,
		Child:    c.child,
		Devices:  len(c.devices),
		Duration: took,
	}, nil
}

func (c *Controller) exists(ctx context.Context, name string) (bool, error) {
	ts, err := c.Topologies(ctx)
	if err != nil {
		return false, err
	}

	for _, t := range ts {
		if t.Name == name {
			return true, nil
		}
	}

	return false, nil
}

// waitAvailable polls the reservation status until the sandbox is available,
// releasing it first when the ownership is forced.
func (c *Controller) waitAvailable(ctx context.Context, opts ReserveOptions) error {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	for {
		status, err := c.Status(ctx)
		if err != nil {
			return err
		}

		switch {
		case status == model.ReservationStatusAvailable:
			return nil
		case status == model.ReservationStatusReserved && opts.ForceTakeOwnership:
			c.logger.Infof("Sandbox %s is reserved, taking its ownership", c.sandbox)
			if _, err := c.Release(ctx); err != nil {
				return fmt.Errorf("could not take sandbox %s ownership: %w", c.sandbox, err)
			}
			return nil
		case status == model.ReservationStatusReserved:
			c.logger.Infof("Sandbox %s is reserved, waiting for the owner to release it", c.sandbox)
		default:
			c.logger.Warningf("Sandbox %s has an unknown reservation status %q", c.sandbox, status)
		}

		if err := sleep(ctx, c.pollInterval); err != nil {
			return fmt.Errorf("stopped waiting for sandbox %s: %w", c.sandbox, err)
		}
	}
}

func (c *Controller) Release(ctx context.Context) (string, error) {
	if err := c.checkSelected(); err != nil {
		return "", err
	}

	name := c.child
	if name == "" {
		typ, err := c.Type(ctx)
		if err != nil {
			return "", err
		}
		if typ == model.TopologyTypeBlueprint {
			return "", fmt.Errorf("%s is a blueprint, the blueprint child sandbox name is required to release it: %w", c.sandbox, model.ErrInvalidOperation)
		}
		name = c.sandbox
	}

	if err := c.ReleaseNamed(ctx, name); err != nil {
		return "", err
	}

	return name, nil
}

func (c *Controller) ReleaseNamed(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("sandbox name is required: %w", model.ErrNotValid)
	}

	c.logger.Infof("Releasing sandbox %s", name)
	start := time.Now()
	res, err := c.api.ReleaseTopology(ctx, name)
	if err != nil {
		return fmt.Errorf("could not release sandbox %s: %w", name, err)
	}
	if res.Status != conventions.ReleaseSuccessStatus {
		return fmt.Errorf("releasing sandbox %s failed with status %q (%s): %w", name, res.Status, res.Message, model.ErrReservation)
	}
	c.logger.Infof("Released sandbox %s in %s", name, time.Since(start))

	if name == c.child || name == c.sandbox {
		c.child = ""
		c.devices = nil
	}

	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, model.ErrNotFound)
}
