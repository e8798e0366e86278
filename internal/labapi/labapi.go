package labapi

import (
	"context"

	"github.com/slok/tokactl/internal/model"
)

//go:generate mockery --case underscore --output labapimock --outpkg labapimock --name API

// API is the lab controller remote API.
type API interface {
	// ListTopologies lists the topologies, when name is set only the topology
	// with that exact name is returned.
	ListTopologies(ctx context.Context, name string) ([]model.Topology, error)
	ReserveTopology(ctx context.Context, name string) (*model.ReservationResult, error)
	ReleaseTopology(ctx context.Context, name string) (*model.ReservationResult, error)
	ListTopologyDevices(ctx context.Context, name string) ([]model.TopologyDevice, error)

	// GetDeviceDetails returns the raw device detail payloads for a device hostname.
	GetDeviceDetails(ctx context.Context, hostname string) ([]map[string]any, error)

	// GetKeywords returns the sandbox keywords of an execution profile. The
	// returned set has nil keywords when the controller has none configured.
	GetKeywords(ctx context.Context, sandbox, executionProfile string) (*model.KeywordSet, error)
	SetKeywords(ctx context.Context, sandbox string, keywords []model.Keyword) error

	// RunSuite starts a suite and returns the controller status message.
	RunSuite(ctx context.Context, sandbox, suite string) (string, error)
	SuiteStatus(ctx context.Context, sandbox, suite string) (model.SuiteStatus, error)
	LatestResults(ctx context.Context, sandbox string) (*model.TestResult, error)
}
