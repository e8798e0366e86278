package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/tokactl/internal/config"
	"github.com/slok/tokactl/internal/conventions"
	"github.com/slok/tokactl/internal/labapi/rest"
	"github.com/slok/tokactl/internal/log"
	"github.com/slok/tokactl/internal/printer"
	"github.com/slok/tokactl/internal/sandbox"
	"github.com/slok/tokactl/internal/transport"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"

	formatTable = "table"
	formatJSON  = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	ConfigPath string

	// Controller flags, they override the config file values.
	Controller            string
	User                  string
	Password              string
	Sandbox               string
	InsecureSkipVerify    bool
	InsecureSkipVerifySet bool
	PollInterval          time.Duration

	defaultConfigPath   string
	configPathSetByUser bool

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	c.defaultConfigPath = filepath.Join(homedir.HomeDir(), conventions.DefaultDataDir, conventions.ConfigFile)
	app.Flag("config", "Path to the sandbox YAML configuration file.").Default(c.defaultConfigPath).IsSetByUser(&c.configPathSetByUser).StringVar(&c.ConfigPath)

	app.Flag("controller", "Lab controller address.").StringVar(&c.Controller)
	app.Flag("user", "Lab controller user.").StringVar(&c.User)
	app.Flag("password", "Lab controller password.").StringVar(&c.Password)
	app.Flag("sandbox", "Sandbox name.").Short('s').StringVar(&c.Sandbox)
	app.Flag("insecure-skip-verify", "Skip the controller TLS certificate verification.").IsSetByUser(&c.InsecureSkipVerifySet).BoolVar(&c.InsecureSkipVerify)
	app.Flag("poll-interval", "Interval between controller status checks.").DurationVar(&c.PollInterval)

	return c
}

// Settings resolves the controller settings from the config file and the flags.
// The default config file is optional.
func (r *RootCommand) Settings(ctx context.Context) (config.Settings, error) {
	path := r.ConfigPath
	if path == "" {
		path = r.defaultConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return config.Settings{}, fmt.Errorf("invalid config path: %w", err)
	}

	repo := config.NewYAMLRepository(os.DirFS(filepath.Dir(absPath)))
	s, err := repo.GetSettings(ctx, filepath.Base(absPath), !r.configPathSetByUser)
	if err != nil {
		return config.Settings{}, fmt.Errorf("could not load config %s: %w", path, err)
	}

	if r.Controller != "" {
		s.Controller = r.Controller
	}
	if r.User != "" {
		s.User = r.User
	}
	if r.Password != "" {
		s.Password = r.Password
	}
	if r.Sandbox != "" {
		s.Sandbox = r.Sandbox
	}
	if r.InsecureSkipVerifySet {
		s.InsecureSkipVerify = r.InsecureSkipVerify
	}
	if r.PollInterval > 0 {
		s.PollInterval = r.PollInterval
	}

	if err := s.Validate(); err != nil {
		return config.Settings{}, err
	}

	return s, nil
}

// newManager authenticates against the controller and returns a sandbox manager.
func newManager(ctx context.Context, s config.Settings, logger log.Logger) (sandbox.Manager, error) {
	session, err := transport.Authenticate(ctx, transport.SessionConfig{
		Endpoint:           s.Controller,
		User:               s.User,
		Password:           s.Password,
		InsecureSkipVerify: s.InsecureSkipVerify,
		Logger:             logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not authenticate: %w", err)
	}

	api, err := rest.NewClient(rest.ClientConfig{
		Session: session,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create controller client: %w", err)
	}

	mgr, err := sandbox.NewController(sandbox.ControllerConfig{
		API:          api,
		PollInterval: s.PollInterval,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create sandbox controller: %w", err)
	}

	return mgr, nil
}

// selectedManager resolves the settings and returns a manager with the sandbox selected.
func (r *RootCommand) selectedManager(ctx context.Context) (sandbox.Manager, config.Settings, error) {
	s, err := r.Settings(ctx)
	if err != nil {
		return nil, config.Settings{}, err
	}
	if s.Sandbox == "" {
		return nil, config.Settings{}, fmt.Errorf("sandbox is required, use --sandbox or the config file")
	}

	mgr, err := newManager(ctx, s, r.Logger)
	if err != nil {
		return nil, config.Settings{}, err
	}

	if err := mgr.Select(ctx, s.Sandbox); err != nil {
		return nil, config.Settings{}, fmt.Errorf("could not select sandbox: %w", err)
	}

	return mgr, s, nil
}

func addFormatFlag(cmd *kingpin.CmdClause, format *string) {
	cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(format, formatTable, formatJSON)
}

func newPrinter(format string, w io.Writer) printer.Printer {
	if format == formatJSON {
		return printer.NewJSONPrinter(w)
	}
	return printer.NewTablePrinter(w)
}
