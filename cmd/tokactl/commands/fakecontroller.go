package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"

	"github.com/slok/tokactl/internal/labapi/fake"
)

type FakeControllerCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	listenAddr  string
	fixturePath string
}

// NewFakeControllerCommand returns the fake controller command.
func NewFakeControllerCommand(rootCmd *RootCommand, app *kingpin.Application) *FakeControllerCommand {
	c := &FakeControllerCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("fake-controller", "Serve an in-memory lab controller over plain HTTP for local testing.").Hidden()
	c.Cmd.Flag("listen", "Address to listen on.").Default("127.0.0.1:8080").StringVar(&c.listenAddr)
	c.Cmd.Flag("fixture", "YAML fixture with the controller initial state.").Required().StringVar(&c.fixturePath)

	return c
}

func (c FakeControllerCommand) Name() string { return c.Cmd.FullCommand() }

func (c FakeControllerCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	data, err := os.ReadFile(c.fixturePath)
	if err != nil {
		return fmt.Errorf("could not read fixture: %w", err)
	}

	fixture, err := fake.LoadFixture(data)
	if err != nil {
		return fmt.Errorf("could not load fixture: %w", err)
	}

	ctrl, err := fake.NewController(fake.ControllerConfig{
		Fixture: fixture,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("could not create fake controller: %w", err)
	}

	server := &http.Server{
		Addr:              c.listenAddr,
		Handler:           ctrl.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var g run.Group

	// HTTP server.
	{
		g.Add(
			func() error {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			},
			func(_ error) {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = server.Shutdown(shutdownCtx)
			},
		)
	}

	// Context cancellation (from parent signal handling).
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				<-ctx.Done()
				return ctx.Err()
			},
			func(_ error) {
				cancel()
			},
		)
	}

	logger.Infof("Fake controller listening on http://%s", c.listenAddr)
	return g.Run()
}
