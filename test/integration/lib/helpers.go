package lib

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	sdklib "github.com/slok/tokactl/pkg/lib"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Controller string
	User       string
	Password   string
	Sandbox    string
}

func (c *Config) defaults() error {
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
// If the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "TOKACTL_INTEGRATION"
		envController = "TOKACTL_INTEGRATION_CONTROLLER"
		envUser       = "TOKACTL_INTEGRATION_USER"
		envPassword   = "TOKACTL_INTEGRATION_PASSWORD"
		envSandbox    = "TOKACTL_INTEGRATION_SANDBOX"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{
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

// NewTestClient creates an SDK client with the integration sandbox selected.
func NewTestClient(t *testing.T, config Config) *sdklib.Client {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := sdklib.New(ctx, sdklib.Config{
		Address:      config.Controller,
		Username:     config.User,
		Password:     config.Password,
		Sandbox:      config.Sandbox,
		PollInterval: 2 * time.Second,
	})
	require.NoError(t, err)

	return client
}

// CleanupRelease releases the integration sandbox when the test ends.
func CleanupRelease(t *testing.T, client *sdklib.Client) {
	t.Helper()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := client.Release(ctx); err != nil {
			t.Logf("could not release sandbox %s: %s", client.Selected(), err)
		}
	})
}
