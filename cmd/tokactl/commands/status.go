package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tokactl/internal/app/status"
)

type StatusCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewStatusCommand returns the status command.
func NewStatusCommand(rootCmd *RootCommand, app *kingpin.Application) *StatusCommand {
	c := &StatusCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("status", "Get detailed status of a sandbox.")
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c StatusCommand) Name() string { return c.Cmd.FullCommand() }

func (c StatusCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	s, err := c.rootCmd.Settings(ctx)
	if err != nil {
		return err
	}

	mgr, err := newManager(ctx, s, logger)
	if err != nil {
		return err
	}

	svc, err := status.NewService(status.ServiceConfig{
		Manager: mgr,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	info, err := svc.Run(ctx, status.Request{Sandbox: s.Sandbox})
	if err != nil {
		return fmt.Errorf("could not get sandbox status: %w", err)
	}

	if err := newPrinter(c.format, c.rootCmd.Stdout).PrintStatus(*info); err != nil {
		return fmt.Errorf("could not print status: %w", err)
	}

	return nil
}
