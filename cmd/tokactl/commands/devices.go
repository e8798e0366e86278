package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type DevicesCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewDevicesCommand returns the devices command.
func NewDevicesCommand(rootCmd *RootCommand, app *kingpin.Application) *DevicesCommand {
	c := &DevicesCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("devices", "List the devices of a reserved sandbox.")
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c DevicesCommand) Name() string { return c.Cmd.FullCommand() }

func (c DevicesCommand) Run(ctx context.Context) error {
	mgr, _, err := c.rootCmd.selectedManager(ctx)
	if err != nil {
		return err
	}

	devices, err := mgr.Devices()
	if err != nil {
		return fmt.Errorf("could not get devices: %w", err)
	}

	if err := newPrinter(c.format, c.rootCmd.Stdout).PrintDevices(devices); err != nil {
		return fmt.Errorf("could not print devices: %w", err)
	}

	return nil
}
