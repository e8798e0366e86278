package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tokactl/internal/app/release"
	"github.com/slok/tokactl/internal/printer"
)

type ReleaseCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	child string
}

// NewReleaseCommand returns the release command.
func NewReleaseCommand(rootCmd *RootCommand, app *kingpin.Application) *ReleaseCommand {
	c := &ReleaseCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("release", "Release a reserved sandbox.")
	c.Cmd.Flag("child", "Blueprint child sandbox to release (required for blueprints).").StringVar(&c.child)

	return c
}

func (c ReleaseCommand) Name() string { return c.Cmd.FullCommand() }

func (c ReleaseCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	s, err := c.rootCmd.Settings(ctx)
	if err != nil {
		return err
	}

	mgr, err := newManager(ctx, s, logger)
	if err != nil {
		return err
	}

	svc, err := release.NewService(release.ServiceConfig{
		Manager: mgr,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	released, err := svc.Run(ctx, release.Request{
		Sandbox: s.Sandbox,
		Child:   c.child,
	})
	if err != nil {
		return fmt.Errorf("could not release sandbox: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	if err := p.PrintMessage(fmt.Sprintf("Released sandbox: %s", released)); err != nil {
		return fmt.Errorf("could not print message: %w", err)
	}

	return nil
}
