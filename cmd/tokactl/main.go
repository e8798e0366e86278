package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"

	"github.com/slok/tokactl/cmd/tokactl/commands"
	"github.com/slok/tokactl/internal/log"
	loglogrus "github.com/slok/tokactl/internal/log/logrus"
)

const (
	// Version is the application version (set via ldflags).
	Version = "dev"
)

// Run runs the main application.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	app := kingpin.New("tokactl", "Lab controller sandbox reservation tool.")
	app.DefaultEnvars()
	rootCmd := commands.NewRootCommand(app)

	// Setup commands (registers flags).
	reserveCmd := commands.NewReserveCommand(rootCmd, app)
	releaseCmd := commands.NewReleaseCommand(rootCmd, app)
	statusCmd := commands.NewStatusCommand(rootCmd, app)
	listCmd := commands.NewListCommand(rootCmd, app)
	devicesCmd := commands.NewDevicesCommand(rootCmd, app)
	portsCmd := commands.NewPortsCommand(rootCmd, app)
	resultsCmd := commands.NewResultsCommand(rootCmd, app)
	fakeControllerCmd := commands.NewFakeControllerCommand(rootCmd, app)

	// Keyword subcommands share a parent command.
	keywordsCmd := app.Command("keywords", "Manage sandbox keywords.")
	keywordsGetCmd := commands.NewKeywordsGetCommand(rootCmd, keywordsCmd)
	keywordsSetCmd := commands.NewKeywordsSetCommand(rootCmd, keywordsCmd)

	// Suite subcommands share a parent command.
	suiteCmd := app.Command("suite", "Manage sandbox test suites.")
	suiteRunCmd := commands.NewSuiteRunCommand(rootCmd, suiteCmd)

	cmds := map[string]commands.Command{
		reserveCmd.Name():        reserveCmd,
		releaseCmd.Name():        releaseCmd,
		statusCmd.Name():         statusCmd,
		listCmd.Name():           listCmd,
		devicesCmd.Name():        devicesCmd,
		portsCmd.Name():          portsCmd,
		resultsCmd.Name():        resultsCmd,
		fakeControllerCmd.Name(): fakeControllerCmd,
		keywordsGetCmd.Name():    keywordsGetCmd,
		keywordsSetCmd.Name():    keywordsSetCmd,
		suiteRunCmd.Name():       suiteRunCmd,
	}

	// Parse command.
	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	// Set standard input/output.
	rootCmd.Stdin = stdin
	rootCmd.Stdout = stdout
	rootCmd.Stderr = stderr

	// Auto-suppress logging for commands that produce structured output (table/JSON)
	// to prevent log noise from mixing with printer output in the terminal.
	// Users can still enable logging with --debug.
	printerCommands := map[string]bool{
		"list":         true,
		"status":       true,
		"devices":      true,
		"ports":        true,
		"keywords get": true,
	}
	if printerCommands[cmdName] && !rootCmd.Debug {
		rootCmd.NoLog = true
	}

	// Set logger.
	rootCmd.Logger = getLogger(ctx, *rootCmd)

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				rootCmd.Logger.Debugf("Termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				err := cmds[cmdName].Run(ctx)
				if err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

// getLogger returns the application logger.
func getLogger(ctx context.Context, config commands.RootCommand) log.Logger {
	if config.NoLog {
		return log.Noop
	}

	logrusLog := logrus.New()
	logrusLog.Out = config.Stderr // Logs go to stderr so stdout only has the command output.
	logrusLogEntry := logrus.NewEntry(logrusLog)

	if config.Debug {
		logrusLogEntry.Logger.SetLevel(logrus.DebugLevel)
	}

	switch config.LoggerType {
	case commands.LoggerTypeDefault:
		logrusLogEntry.Logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !config.NoColor,
			DisableColors: config.NoColor,
		})
	case commands.LoggerTypeJSON:
		logrusLogEntry.Logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logger := loglogrus.NewLogrus(logrusLogEntry).WithValues(log.Kv{
		"version": Version,
	})

	logger.Debugf("Debug level is enabled")

	return logger
}

func main() {
	ctx := context.Background()
	err := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
