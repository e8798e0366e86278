package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type PortsCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	src        string
	target     string
	trafficGen bool
	format     string
}

// NewPortsCommand returns the ports command.
func NewPortsCommand(rootCmd *RootCommand, app *kingpin.Application) *PortsCommand {
	c := &PortsCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("ports", "Show the ports of a device directly connected to another device.")
	c.Cmd.Arg("source", "Source device name.").Required().StringVar(&c.src)
	c.Cmd.Arg("target", "Target device name.").Required().StringVar(&c.target)
	c.Cmd.Flag("traffic-generator", "The source device is a traffic generator (parses chassis/slot/port).").BoolVar(&c.trafficGen)
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c PortsCommand) Name() string { return c.Cmd.FullCommand() }

func (c PortsCommand) Run(ctx context.Context) error {
	mgr, _, err := c.rootCmd.selectedManager(ctx)
	if err != nil {
		return err
	}

	pairs, err := mgr.DevicePorts(c.src, c.target, c.trafficGen)
	if err != nil {
		return fmt.Errorf("could not get device ports: %w", err)
	}

	if err := newPrinter(c.format, c.rootCmd.Stdout).PrintPorts(pairs); err != nil {
		return fmt.Errorf("could not print ports: %w", err)
	}

	return nil
}
