package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tokactl/internal/app/list"
	"github.com/slok/tokactl/internal/model"
)

type ListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	statusFilter string
	typeFilter   string
	format       string
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *ListCommand {
	c := &ListCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("list", "List all controller sandboxes.")
	c.Cmd.Flag("status", "Filter by reservation status (reserved, available).").StringVar(&c.statusFilter)
	c.Cmd.Flag("type", "Filter by type (regular, blueprint, child).").EnumVar(&c.typeFilter, "regular", "blueprint", "child")
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c ListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ListCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	req := list.Request{}
	if c.statusFilter != "" {
		status := model.ReservationStatus(strings.ToLower(c.statusFilter))
		req.StatusFilter = &status
	}
	if c.typeFilter != "" {
		typ := model.TopologyType(c.typeFilter)
		req.TypeFilter = &typ
	}

	s, err := c.rootCmd.Settings(ctx)
	if err != nil {
		return err
	}

	mgr, err := newManager(ctx, s, logger)
	if err != nil {
		return err
	}

	svc, err := list.NewService(list.ServiceConfig{
		Manager: mgr,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	topologies, err := svc.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("could not list sandboxes: %w", err)
	}

	if err := newPrinter(c.format, c.rootCmd.Stdout).PrintTopologies(topologies); err != nil {
		return fmt.Errorf("could not print list: %w", err)
	}

	return nil
}
