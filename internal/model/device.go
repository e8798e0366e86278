package model

// Device is the detail of a reserved sandbox device.
type Device struct {
	Name string
	// Fields are the top level scalar fields of the controller device payload.
	Fields map[string]any
	// MgmtInterfaces are ordered as returned by the controller (0 primary, 1 secondary...).
	MgmtInterfaces []MgmtInterface
	// Ports are the physical port connection interfaces.
	Ports []Port
	// HasPorts is false when the device has no physical port connections section.
	HasPorts bool
}

// MgmtInterface is a device administrative network endpoint.
type MgmtInterface struct {
	NetworkAddress string
	Username       string
	Type           string
	ManagementType string
	Raw            map[string]any
}

// Port is a device physical port.
type Port struct {
	Raw              map[string]any
	DirectConnection *DirectConnection
}

// DirectConnection describes a port wired directly to another device port.
type DirectConnection struct {
	TargetHost   string
	SourcePortID string
	TargetPortID string
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
