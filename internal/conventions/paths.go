package conventions

import "time"

const (
	// DefaultDataDir is the default tokactl data directory name (relative to home).
	DefaultDataDir = ".tokactl"
	// ConfigFile is the default sandbox configuration filename inside the data directory.
	ConfigFile = "sandbox.yml"

	// DefaultPollInterval is the interval used when waiting for sandboxes, suites and devices.
	DefaultPollInterval = 3 * time.Second

	// Controller status messages.

	// ReserveSuccessStatus is the status the controller answers with on a successful reservation.
	ReserveSuccessStatus = "Sandbox Reserved Successfully"
	// ReleaseSuccessStatus is the status the controller answers with on a successful release.
	ReleaseSuccessStatus = "Sandbox Released Successfully"
	// SuiteStartedStatus is the status the controller answers with when a suite run starts.
	SuiteStartedStatus = "Suite Started"

	// TrafficGeneratorDeviceType is the device type of traffic generator chassis.
	TrafficGeneratorDeviceType = "Ixia"
)
