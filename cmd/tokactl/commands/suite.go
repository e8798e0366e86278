package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tokactl/internal/app/suite"
	"github.com/slok/tokactl/internal/model"
)

type SuiteRunCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	suite  string
	wait   bool
	format string
}

// NewSuiteRunCommand returns the suite run command.
func NewSuiteRunCommand(rootCmd *RootCommand, suiteCmd *kingpin.CmdClause) *SuiteRunCommand {
	c := &SuiteRunCommand{rootCmd: rootCmd}

	c.Cmd = suiteCmd.Command("run", "Run a test suite on a sandbox.")
	c.Cmd.Arg("suite", "Test suite name.").Required().StringVar(&c.suite)
	c.Cmd.Flag("wait", "Wait for the suite to finish and print the results.").BoolVar(&c.wait)
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c SuiteRunCommand) Name() string { return c.Cmd.FullCommand() }

func (c SuiteRunCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	s, err := c.rootCmd.Settings(ctx)
	if err != nil {
		return err
	}

	mgr, err := newManager(ctx, s, logger)
	if err != nil {
		return err
	}

	svc, err := suite.NewService(suite.ServiceConfig{
		Manager: mgr,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, suite.Request{
		Sandbox: s.Sandbox,
		Suite:   c.suite,
		Wait:    c.wait,
	})
	if err != nil {
		return fmt.Errorf("could not run suite: %w", err)
	}

	p := newPrinter(c.format, c.rootCmd.Stdout)
	if resp.Result == nil {
		if err := p.PrintMessage(fmt.Sprintf("Started suite: %s", resp.Suite)); err != nil {
			return fmt.Errorf("could not print message: %w", err)
		}
		return nil
	}

	if err := p.PrintResults(*resp.Result, resp.Verdict); err != nil {
		return fmt.Errorf("could not print results: %w", err)
	}

	if resp.Verdict == model.VerdictFailed {
		return fmt.Errorf("suite %s %s", resp.Suite, resp.Verdict)
	}

	return nil
}
