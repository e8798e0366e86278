package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tokactl/internal/keyword"
	"github.com/slok/tokactl/internal/model"
	"github.com/slok/tokactl/internal/printer"
)

type KeywordsGetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	profile string
	format  string
}

// NewKeywordsGetCommand returns the keywords get command.
func NewKeywordsGetCommand(rootCmd *RootCommand, keywordsCmd *kingpin.CmdClause) *KeywordsGetCommand {
	c := &KeywordsGetCommand{rootCmd: rootCmd}

	c.Cmd = keywordsCmd.Command("get", "Get the keywords of a sandbox execution profile.")
	c.Cmd.Flag("profile", "Execution profile.").Default(model.DefaultExecutionProfile).StringVar(&c.profile)
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c KeywordsGetCommand) Name() string { return c.Cmd.FullCommand() }

func (c KeywordsGetCommand) Run(ctx context.Context) error {
	mgr, _, err := c.rootCmd.selectedManager(ctx)
	if err != nil {
		return err
	}

	kws, err := mgr.Keywords(ctx, c.profile)
	if err != nil {
		return fmt.Errorf("could not get keywords: %w", err)
	}

	if err := newPrinter(c.format, c.rootCmd.Stdout).PrintKeywords(kws); err != nil {
		return fmt.Errorf("could not print keywords: %w", err)
	}

	return nil
}

type KeywordsSetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	profile string
	specs   []string
}

// NewKeywordsSetCommand returns the keywords set command.
func NewKeywordsSetCommand(rootCmd *RootCommand, keywordsCmd *kingpin.CmdClause) *KeywordsSetCommand {
	c := &KeywordsSetCommand{rootCmd: rootCmd}

	c.Cmd = keywordsCmd.Command("set", "Set keywords on a sandbox execution profile.")
	c.Cmd.Flag("profile", "Execution profile.").Default(model.DefaultExecutionProfile).StringVar(&c.profile)
	c.Cmd.Arg("keywords", "Keywords as NAME=VALUE, or NAME to read the value from the environment.").Required().StringsVar(&c.specs)

	return c
}

func (c KeywordsSetCommand) Name() string { return c.Cmd.FullCommand() }

func (c KeywordsSetCommand) Run(ctx context.Context) error {
	kws, err := keyword.ParseSpecs(c.specs)
	if err != nil {
		return fmt.Errorf("invalid keywords: %w", err)
	}

	mgr, s, err := c.rootCmd.selectedManager(ctx)
	if err != nil {
		return err
	}

	if err := mgr.SetKeywords(ctx, c.profile, kws); err != nil {
		return fmt.Errorf("could not set keywords: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	if err := p.PrintMessage(fmt.Sprintf("Set %d keywords on sandbox: %s", len(kws), s.Sandbox)); err != nil {
		return fmt.Errorf("could not print message: %w", err)
	}

	return nil
}
