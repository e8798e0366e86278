package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type ResultsCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewResultsCommand returns the results command.
func NewResultsCommand(rootCmd *RootCommand, app *kingpin.Application) *ResultsCommand {
	c := &ResultsCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("results", "Show the latest test run results of a sandbox.")
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c ResultsCommand) Name() string { return c.Cmd.FullCommand() }

func (c ResultsCommand) Run(ctx context.Context) error {
	mgr, _, err := c.rootCmd.selectedManager(ctx)
	if err != nil {
		return err
	}

	res, verdict, err := mgr.Results(ctx)
	if err != nil {
		return fmt.Errorf("could not get results: %w", err)
	}

	if err := newPrinter(c.format, c.rootCmd.Stdout).PrintResults(*res, verdict); err != nil {
		return fmt.Errorf("could not print results: %w", err)
	}

	return nil
}
