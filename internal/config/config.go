package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/slok/tokactl/internal/model"
)

// Settings are the resolved controller and sandbox settings.
type Settings struct {
	Controller         string
	User               string
	Password           string
	Sandbox            string
	ForceTakeOwnership bool
	InsecureSkipVerify bool
	PollInterval       time.Duration
}

// Validate checks the settings required to talk with the controller.
func (s Settings) Validate() error {
	if s.Controller == "" {
		return fmt.Errorf("controller is required: %w", model.ErrNotValid)
	}
	if s.User == "" {
		return fmt.Errorf("user is required: %w", model.ErrNotValid)
	}
	if s.PollInterval < 0 {
		return fmt.Errorf("poll interval can't be negative: %w", model.ErrNotValid)
	}
	return nil
}

// YAMLRepository loads settings from YAML files.
type YAMLRepository struct {
	fs fs.FS
}

// NewYAMLRepository creates a new YAML settings repository.
func NewYAMLRepository(filesystem fs.FS) *YAMLRepository {
	return &YAMLRepository{fs: filesystem}
}

// GetSettings loads the settings from a YAML file. When optional is set a
// missing file returns the default settings.
func (r *YAMLRepository) GetSettings(ctx context.Context, path string, optional bool) (Settings, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return File{}.toSettings(), nil
		}
		return Settings{}, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return Settings{}, ctx.Err()
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Settings{}, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := f.validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return f.toSettings(), nil
}

// File represents the YAML structure of the sandbox configuration file.
type File struct {
	Controller string `yaml:"controller"`
	// SDLOControllerIP is the legacy name of the controller field.
	SDLOControllerIP   string `yaml:"sdloControllerIp"`
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	Sandbox            string `yaml:"sandbox"`
	ForceTakeOwnership Bool   `yaml:"forceTakeOwnership"`
	InsecureSkipVerify *Bool  `yaml:"insecureSkipVerify"`
	PollInterval       string `yaml:"pollInterval"`
}

func (f File) validate() error {
	if f.PollInterval != "" {
		d, err := time.ParseDuration(f.PollInterval)
		if err != nil {
			return fmt.Errorf("invalid pollInterval %q: %w", f.PollInterval, err)
		}
		if d < 0 {
			return fmt.Errorf("pollInterval can't be negative")
		}
	}
	return nil
}

func (f File) toSettings() Settings {
	s := Settings{
		Controller:         f.Controller,
		User:               f.User,
		Password:           f.Password,
		Sandbox:            f.Sandbox,
		ForceTakeOwnership: bool(f.ForceTakeOwnership),
		InsecureSkipVerify: true,
	}

	if s.Controller == "" {
		s.Controller = f.SDLOControllerIP
	}
	if f.InsecureSkipVerify != nil {
		s.InsecureSkipVerify = bool(*f.InsecureSkipVerify)
	}
	if f.PollInterval != "" {
		// Already validated.
		s.PollInterval, _ = time.ParseDuration(f.PollInterval)
	}

	return s
}

// Bool is a YAML boolean that also accepts the string forms used by
// hand-written configuration files (`"True"`, `"no"`, `"1"`...).
type Bool bool

func (b *Bool) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: boolean expected", value.Line)
	}

	v, err := ParseBool(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*b = Bool(v)

	return nil
}

// ParseBool parses the boolean forms accepted on configuration files.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "on", "1":
		return true, nil
	case "false", "no", "n", "off", "0", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q: %w", s, model.ErrNotValid)
}
