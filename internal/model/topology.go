package model

import "time"

// ReservationStatus is the reservation state of a topology as reported by the controller.
type ReservationStatus string

const (
	// ReservationStatusReserved means someone holds the topology.
	ReservationStatusReserved ReservationStatus = "reserved"
	// ReservationStatusAvailable means the topology can be reserved.
	ReservationStatusAvailable ReservationStatus = "available"
)

// TopologyType is the kind of topology.
type TopologyType string

const (
	// TopologyTypeRegular is a regular sandbox, reserved by its own name.
	TopologyTypeRegular TopologyType = "regular"
	// TopologyTypeBlueprint is a template that can only be reserved by instantiating a child.
	TopologyTypeBlueprint TopologyType = "blueprint"
	// TopologyTypeChild is a topology instantiated from a blueprint.
	TopologyTypeChild TopologyType = "child"
)

// Topology is a sandbox (or blueprint) known by the controller.
type Topology struct {
	Name     string
	Type     TopologyType
	Status   ReservationStatus
	Children []string
	Devices  []TopologyDevice
}

// TopologyDevice is a device reference inside a topology.
type TopologyDevice struct {
	Name       string
	AbstractID string
}

// ReservationResult is the controller answer to a reserve or release request.
type ReservationResult struct {
	// Status is the controller status message, e.g "Sandbox Reserved Successfully".
	Status string
	// Message is an optional detail message.
	Message string
	// TopologyName is the reserved topology, it will differ from the requested
	// one when a blueprint has been reserved.
	TopologyName string
}

// Reservation is the outcome of a successful reservation.
type Reservation struct {
	// Sandbox is the requested sandbox name.
	Sandbox string
	// Child is the blueprint child sandbox name, empty if the sandbox is not a blueprint.
	Child string
	// Devices is the number of devices loaded after the reservation.
	Devices int
	// Duration is the time the controller took to reserve.
	Duration time.Duration
}

// SandboxInfo is the status summary of a selected sandbox.
type SandboxInfo struct {
	Topology Topology
	// Child is the blueprint child reserved by this process, if any.
	Child string
	// Devices are the reserved sandbox devices, nil when not reserved.
	Devices []Device
}
