package lib

import (
	"errors"
	"maps"
	"time"

	"github.com/slok/tokactl/internal/model"
)

// ReservationStatus is the reservation state of a sandbox as reported by the controller.
type ReservationStatus string

const (
	// ReservationStatusReserved means someone holds the sandbox.
	ReservationStatusReserved ReservationStatus = "reserved"
	// ReservationStatusAvailable means the sandbox can be reserved.
	ReservationStatusAvailable ReservationStatus = "available"
)

// SandboxType is the kind of sandbox.
type SandboxType string

const (
	// SandboxTypeRegular is a sandbox reserved by its own name.
	SandboxTypeRegular SandboxType = "regular"
	// SandboxTypeBlueprint is a template, reserving it instantiates a child sandbox.
	SandboxTypeBlueprint SandboxType = "blueprint"
	// SandboxTypeChild is a sandbox instantiated from a blueprint.
	SandboxTypeChild SandboxType = "child"
)

// Sandbox is a lab topology known by the controller.
type Sandbox struct {
	Name   string
	Type   SandboxType
	Status ReservationStatus
	// Children are the blueprint children sandbox names.
	Children []string
	// Devices are the sandbox device names.
	Devices []string
}

// Reservation is the outcome of a successful reservation.
type Reservation struct {
	// Sandbox is the requested sandbox name.
	Sandbox string
	// Child is the reserved blueprint child, empty when the sandbox is not a blueprint.
	Child string
	// Devices is the number of reserved devices.
	Devices int
	// Duration is the time spent waiting and reserving.
	Duration time.Duration
}

// Device is a reserved sandbox device.
type Device struct {
	Name string
	// Fields are the top level scalar fields of the controller device payload.
	Fields map[string]any
	// MgmtInterfaces are ordered as returned by the controller, 0 is the primary one.
	MgmtInterfaces []MgmtInterface
	// Ports is the number of physical port connections.
	Ports int
}

// MgmtInterface is a device administrative network endpoint.
type MgmtInterface struct {
	NetworkAddress string
	Username       string
	Type           string
	ManagementType string
}

// PortPair is a connection between a source device port and a target device port.
type PortPair struct {
	SourcePort string
	TargetPort string
	// TrafficGen is set when the source device is a traffic generator.
	TrafficGen *TrafficGenPort
}

// TrafficGenPort is a traffic generator port address.
type TrafficGenPort struct {
	ChassisAddress string
	Slot           int
	Port           int
}

// SuiteStatus is the running status of a test suite.
type SuiteStatus string

const (
	SuiteStatusRunning SuiteStatus = "Running"
	SuiteStatusStopped SuiteStatus = "Stopped"
	SuiteStatusAborted SuiteStatus = "Aborted"
)

// Verdict is the binary outcome of a test run.
type Verdict string

const (
	VerdictPassed Verdict = "Passed"
	VerdictFailed Verdict = "Failed"
)

// TestResult is the summary of the latest test run of a sandbox.
type TestResult struct {
	TestStatus  string
	Total       int
	CasesPassed int
	CasesFailed int
	StepsPassed int
	StepsFailed int
	// Verdict is failed when any case or step failed.
	Verdict Verdict
}

func fromInternalTopology(t model.Topology) Sandbox {
	sb := Sandbox{
		Name:     t.Name,
		Type:     SandboxType(t.Type),
		Status:   ReservationStatus(t.Status),
		Children: append([]string{}, t.Children...),
		Devices:  make([]string, 0, len(t.Devices)),
	}
	for _, d := range t.Devices {
		sb.Devices = append(sb.Devices, d.Name)
	}

	return sb
}

func fromInternalTopologies(ts []model.Topology) []Sandbox {
	result := make([]Sandbox, len(ts))
	for i, t := range ts {
		result[i] = fromInternalTopology(t)
	}
	return result
}

func fromInternalReservation(r model.Reservation) Reservation {
	return Reservation{
		Sandbox:  r.Sandbox,
		Child:    r.Child,
		Devices:  r.Devices,
		Duration: r.Duration,
	}
}

func fromInternalDevices(ds []model.Device) []Device {
	result := make([]Device, len(ds))
	for i, d := range ds {
		dev := Device{
			Name:           d.Name,
			Fields:         maps.Clone(d.Fields),
			MgmtInterfaces: make([]MgmtInterface, 0, len(d.MgmtInterfaces)),
			Ports:          len(d.Ports),
		}
		for _, mi := range d.MgmtInterfaces {
			dev.MgmtInterfaces = append(dev.MgmtInterfaces, MgmtInterface{
				NetworkAddress: mi.NetworkAddress,
				Username:       mi.Username,
				Type:           mi.Type,
				ManagementType: mi.ManagementType,
			})
		}
		result[i] = dev
	}
	return result
}

func fromInternalPortPairs(ps []model.PortPair) []PortPair {
	if ps == nil {
		return nil
	}

	result := make([]PortPair, len(ps))
	for i, p := range ps {
		result[i] = PortPair{SourcePort: p.SourcePort, TargetPort: p.TargetPort}
		if p.TrafficGen != nil {
			result[i].TrafficGen = &TrafficGenPort{
				ChassisAddress: p.TrafficGen.ChassisAddress,
				Slot:           p.TrafficGen.Slot,
				Port:           p.TrafficGen.Port,
			}
		}
	}
	return result
}

func fromInternalTestResult(r model.TestResult, v model.Verdict) TestResult {
	return TestResult{
		TestStatus:  r.TestStatus,
		Total:       r.Total,
		CasesPassed: r.CasesPassed,
		CasesFailed: r.CasesFailed,
		StepsPassed: r.StepsPassed,
		StepsFailed: r.StepsFailed,
		Verdict:     Verdict(v),
	}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	var sentinel error
	switch {
	case errors.Is(err, model.ErrNotFound):
		sentinel = ErrNotFound
	case errors.Is(err, model.ErrNotValid):
		sentinel = ErrNotValid
	case errors.Is(err, model.ErrAuthentication):
		sentinel = ErrAuthentication
	case errors.Is(err, model.ErrNotReserved):
		sentinel = ErrNotReserved
	case errors.Is(err, model.ErrReservation):
		sentinel = ErrReservation
	case errors.Is(err, model.ErrInvalidOperation):
		sentinel = ErrInvalidOperation
	}

	var apiErr *APIError
	var modelAPIErr *model.APIError
	if errors.As(err, &modelAPIErr) {
		apiErr = &APIError{StatusCode: modelAPIErr.StatusCode, Body: modelAPIErr.Body}
	}

	if sentinel == nil && apiErr == nil {
		return err
	}

	return &mappedError{original: err, sentinel: sentinel, apiErr: apiErr}
}

// mappedError keeps the original error chain while matching the public
// sentinel with errors.Is and the public API error with errors.As.
type mappedError struct {
	original error
	sentinel error
	apiErr   *APIError
}

func (e *mappedError) Error() string { return e.original.Error() }

func (e *mappedError) Is(target error) bool {
	return e.sentinel != nil && target == e.sentinel
}

func (e *mappedError) Unwrap() []error {
	if e.apiErr == nil {
		return []error{e.original}
	}
	return []error{e.original, e.apiErr}
}
