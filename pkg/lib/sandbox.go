package lib

import (
	"context"
	"time"

	"github.com/slok/tokactl/internal/sandbox"
)

// Select sets the active sandbox. When the sandbox is already reserved its
// devices are loaded, so they can be queried without reserving it again.
func (c *Client) Select(ctx context.Context, name string) error {
	return mapError(c.manager.Select(ctx, name))
}

// Selected returns the selected sandbox name.
func (c *Client) Selected() string { return c.manager.Selected() }

// Child returns the blueprint child sandbox reserved by this client, if any.
func (c *Client) Child() string { return c.manager.Child() }

// Status returns the selected sandbox reservation status, it's read from the controller on every call.
func (c *Client) Status(ctx context.Context) (ReservationStatus, error) {
	st, err := c.manager.Status(ctx)
	if err != nil {
		return "", mapError(err)
	}
	return ReservationStatus(st), nil
}

// Sandbox returns the selected sandbox details.
func (c *Client) Sandbox(ctx context.Context) (*Sandbox, error) {
	t, err := c.manager.Details(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	sb := fromInternalTopology(*t)
	return &sb, nil
}

// ListSandboxes returns all the controller sandboxes.
func (c *Client) ListSandboxes(ctx context.Context) ([]Sandbox, error) {
	ts, err := c.manager.Topologies(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalTopologies(ts), nil
}

// ReserveOpts are the options of [Client.Reserve].
type ReserveOpts struct {
	// ForceTakeOwnership releases the sandbox when someone else holds it instead of waiting.
	ForceTakeOwnership bool
	// Timeout bounds the wait for the sandbox to be available. Zero waits
	// until the sandbox is available or ctx is cancelled.
	Timeout time.Duration
}

// Reserve reserves the selected sandbox, waiting until it's available. Reserving a
// blueprint reserves a new child sandbox, see [Reservation.Child].
// Pass nil opts for defaults.
func (c *Client) Reserve(ctx context.Context, opts *ReserveOpts) (*Reservation, error) {
	o := sandbox.ReserveOptions{}
	if opts != nil {
		o.ForceTakeOwnership = opts.ForceTakeOwnership
		o.Timeout = opts.Timeout
	}

	res, err := c.manager.Reserve(ctx, o)
	if err != nil {
		return nil, mapError(err)
	}

	r := fromInternalReservation(*res)
	return &r, nil
}

// Release releases the reserved blueprint child, or the selected sandbox. Releasing
// a blueprint without a reserved child returns [ErrInvalidOperation].
// It returns the released sandbox name.
func (c *Client) Release(ctx context.Context) (string, error) {
	name, err := c.manager.Release(ctx)
	if err != nil {
		return "", mapError(err)
	}
	return name, nil
}

// ReleaseSandbox releases a sandbox by name, e.g a blueprint child reserved by another process.
func (c *Client) ReleaseSandbox(ctx context.Context, name string) error {
	return mapError(c.manager.ReleaseNamed(ctx, name))
}
