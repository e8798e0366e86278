package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tokactl/internal/app/reserve"
)

type ReserveCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	force      bool
	forceSet   bool
	timeout    time.Duration
	format     string
	waitDevice bool
}

// NewReserveCommand returns the reserve command.
func NewReserveCommand(rootCmd *RootCommand, app *kingpin.Application) *ReserveCommand {
	c := &ReserveCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("reserve", "Reserve a sandbox, waiting until it is available.")
	c.Cmd.Flag("force-take-ownership", "Release the sandbox when someone else holds it instead of waiting.").IsSetByUser(&c.forceSet).BoolVar(&c.force)
	c.Cmd.Flag("timeout", "Maximum time waiting for the sandbox to be available (0 waits forever).").Default("0s").DurationVar(&c.timeout)
	c.Cmd.Flag("wait-devices", "Wait until every sandbox device reports itself as reserved.").BoolVar(&c.waitDevice)
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c ReserveCommand) Name() string { return c.Cmd.FullCommand() }

func (c ReserveCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	s, err := c.rootCmd.Settings(ctx)
	if err != nil {
		return err
	}

	force := s.ForceTakeOwnership
	if c.forceSet {
		force = c.force
	}

	mgr, err := newManager(ctx, s, logger)
	if err != nil {
		return err
	}

	svc, err := reserve.NewService(reserve.ServiceConfig{
		Manager: mgr,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, reserve.Request{
		Sandbox:            s.Sandbox,
		ForceTakeOwnership: force,
		Timeout:            c.timeout,
	})
	if err != nil {
		return fmt.Errorf("could not reserve sandbox: %w", err)
	}

	if c.waitDevice {
		if err := mgr.WaitForDevicesReserved(ctx); err != nil {
			return fmt.Errorf("could not wait for devices: %w", err)
		}
	}

	if err := newPrinter(c.format, c.rootCmd.Stdout).PrintReservation(*res); err != nil {
		return fmt.Errorf("could not print reservation: %w", err)
	}

	return nil
}
