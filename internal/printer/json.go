package printer

import (
	"encoding/json"
	"io"

	"github.com/slok/tokactl/internal/model"
)

// JSONPrinter prints sandbox information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

type topologyOutput struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Status   string   `json:"status"`
	Children []string `json:"children"`
	Devices  []string `json:"devices"`
}

type statusOutput struct {
	topologyOutput
	Child           string         `json:"child,omitempty"`
	ReservedDevices []deviceOutput `json:"reserved_devices,omitempty"`
}

type reservationOutput struct {
	Sandbox    string `json:"sandbox"`
	Child      string `json:"child,omitempty"`
	Devices    int    `json:"devices"`
	DurationMS int64  `json:"duration_ms"`
}

type deviceOutput struct {
	Name           string                `json:"name"`
	Fields         map[string]any        `json:"fields"`
	MgmtInterfaces []mgmtInterfaceOutput `json:"mgmt_interfaces"`
	Ports          int                   `json:"ports"`
}

type mgmtInterfaceOutput struct {
	NetworkAddress string `json:"network_address"`
	Username       string `json:"username"`
	Type           string `json:"type,omitempty"`
	ManagementType string `json:"management_type,omitempty"`
}

type portPairOutput struct {
	SourcePort string            `json:"source_port"`
	TargetPort string            `json:"target_port"`
	TrafficGen *trafficGenOutput `json:"traffic_generator,omitempty"`
}

type trafficGenOutput struct {
	ChassisAddress string `json:"chassis_address"`
	Slot           int    `json:"slot"`
	Port           int    `json:"port"`
}

type resultOutput struct {
	Verdict     string `json:"verdict"`
	TestStatus  string `json:"test_status"`
	Total       int    `json:"total"`
	CasesPassed int    `json:"cases_passed"`
	CasesFailed int    `json:"cases_failed"`
	StepsPassed int    `json:"steps_passed"`
	StepsFailed int    `json:"steps_failed"`
}

type messageOutput struct {
	Message string `json:"message"`
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func toTopologyOutput(t model.Topology) topologyOutput {
	out := topologyOutput{
		Name:     t.Name,
		Type:     string(t.Type),
		Status:   string(t.Status),
		Children: []string{},
		Devices:  make([]string, 0, len(t.Devices)),
	}
	out.Children = append(out.Children, t.Children...)
	for _, d := range t.Devices {
		out.Devices = append(out.Devices, d.Name)
	}
	return out
}

func toDeviceOutput(d model.Device) deviceOutput {
	out := deviceOutput{
		Name:           d.Name,
		Fields:         d.Fields,
		MgmtInterfaces: make([]mgmtInterfaceOutput, 0, len(d.MgmtInterfaces)),
		Ports:          len(d.Ports),
	}
	if out.Fields == nil {
		out.Fields = map[string]any{}
	}
	for _, mi := range d.MgmtInterfaces {
		out.MgmtInterfaces = append(out.MgmtInterfaces, mgmtInterfaceOutput{
			NetworkAddress: mi.NetworkAddress,
			Username:       mi.Username,
			Type:           mi.Type,
			ManagementType: mi.ManagementType,
		})
	}
	return out
}

// PrintTopologies prints topologies in JSON format.
func (j *JSONPrinter) PrintTopologies(topologies []model.Topology) error {
	items := make([]topologyOutput, 0, len(topologies))
	for _, t := range topologies {
		items = append(items, toTopologyOutput(t))
	}
	return j.encode(items)
}

// PrintStatus prints detailed sandbox status in JSON format.
func (j *JSONPrinter) PrintStatus(info model.SandboxInfo) error {
	out := statusOutput{
		topologyOutput: toTopologyOutput(info.Topology),
		Child:          info.Child,
	}
	for _, d := range info.Devices {
		out.ReservedDevices = append(out.ReservedDevices, toDeviceOutput(d))
	}
	return j.encode(out)
}

// PrintReservation prints a reservation summary in JSON format.
func (j *JSONPrinter) PrintReservation(res model.Reservation) error {
	return j.encode(reservationOutput{
		Sandbox:    res.Sandbox,
		Child:      res.Child,
		Devices:    res.Devices,
		DurationMS: res.Duration.Milliseconds(),
	})
}

// PrintDevices prints devices in JSON format.
func (j *JSONPrinter) PrintDevices(devices []model.Device) error {
	items := make([]deviceOutput, 0, len(devices))
	for _, d := range devices {
		items = append(items, toDeviceOutput(d))
	}
	return j.encode(items)
}

// PrintPorts prints port pairs in JSON format.
func (j *JSONPrinter) PrintPorts(pairs []model.PortPair) error {
	items := make([]portPairOutput, 0, len(pairs))
	for _, p := range pairs {
		item := portPairOutput{SourcePort: p.SourcePort, TargetPort: p.TargetPort}
		if p.TrafficGen != nil {
			item.TrafficGen = &trafficGenOutput{
				ChassisAddress: p.TrafficGen.ChassisAddress,
				Slot:           p.TrafficGen.Slot,
				Port:           p.TrafficGen.Port,
			}
		}
		items = append(items, item)
	}
	return j.encode(items)
}

// PrintKeywords prints keywords in JSON format.
func (j *JSONPrinter) PrintKeywords(keywords map[string]string) error {
	if keywords == nil {
		keywords = map[string]string{}
	}
	return j.encode(keywords)
}

// PrintResults prints a test run result in JSON format.
func (j *JSONPrinter) PrintResults(res model.TestResult, verdict model.Verdict) error {
	return j.encode(resultOutput{
		Verdict:     string(verdict),
		TestStatus:  res.TestStatus,
		Total:       res.Total,
		CasesPassed: res.CasesPassed,
		CasesFailed: res.CasesFailed,
		StepsPassed: res.StepsPassed,
		StepsFailed: res.StepsFailed,
	})
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}
