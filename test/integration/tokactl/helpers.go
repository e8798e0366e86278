package tokactl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/slok/tokactl/test/integration/testutils"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Binary     string
	Controller string
	User       string
	Password   string
	Sandbox    string
}

func (c *Config) defaults() error {
	// go test changes the CWD to the package directory.
	if !filepath.IsAbs(c.Binary) {
		return fmt.Errorf("TOKACTL_INTEGRATION_BINARY must be an absolute path, got %q", c.Binary)
	}
	if _, err := os.Stat(c.Binary); err != nil {
		return fmt.Errorf("tokactl binary not found at %q: %w", c.Binary, err)
	}

	if c.Controller == "" {
		return fmt.Errorf("controller address is required (TOKACTL_INTEGRATION_CONTROLLER)")
	}
	if c.User == "" {
		return fmt.Errorf("controller user is required (TOKACTL_INTEGRATION_USER)")
	}
	if c.Sandbox == "" {
		return fmt.Errorf("a regular sandbox to reserve is required (TOKACTL_INTEGRATION_SANDBOX)")
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the config is invalid or the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "TOKACTL_INTEGRATION"
		envBinary     = "TOKACTL_INTEGRATION_BINARY"
		envController = "TOKACTL_INTEGRATION_CONTROLLER"
		envUser       = "TOKACTL_INTEGRATION_USER"
		envPassword   = "TOKACTL_INTEGRATION_PASSWORD"
		envSandbox    = "TOKACTL_INTEGRATION_SANDBOX"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{
		Binary:     os.Getenv(envBinary),
		Controller: os.Getenv(envController),
		User:       os.Getenv(envUser),
		Password:   os.Getenv(envPassword),
		Sandbox:    os.Getenv(envSandbox),
	}

	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// Env returns the tokactl env vars that point the binary to the integration controller.
// HOME is isolated so a developer config file is never loaded.
func (c Config) Env(t *testing.T) []string {
	t.Helper()
	return []string{
		"HOME=" + t.TempDir(),
		"TOKACTL_CONTROLLER=" + c.Controller,
		"TOKACTL_USER=" + c.User,
		"TOKACTL_PASSWORD=" + c.Password,
		"TOKACTL_SANDBOX=" + c.Sandbox,
		"TOKACTL_POLL_INTERVAL=2s",
	}
}

// Run executes tokactl against the integration controller.
func (c Config) Run(ctx context.Context, t *testing.T, args ...string) (stdout, stderr []byte, err error) {
	t.Helper()
	return testutils.Tokactl{Binary: c.Binary, Env: c.Env(t), NoLog: true}.Run(ctx, args...)
}

// CleanupRelease releases the integration sandbox when the test ends.
func (c Config) CleanupRelease(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		_, stderr, err := c.Run(context.Background(), t, "release")
		if err != nil {
			t.Logf("could not release sandbox %s: %s: %s", c.Sandbox, err, stderr)
		}
	})
}
