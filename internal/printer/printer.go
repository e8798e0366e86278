package printer

import "github.com/slok/tokactl/internal/model"

// Printer knows how to print sandbox information in different formats.
type Printer interface {
	PrintTopologies(topologies []model.Topology) error
	PrintStatus(info model.SandboxInfo) error
	PrintReservation(res model.Reservation) error
	PrintDevices(devices []model.Device) error
	PrintPorts(pairs []model.PortPair) error
	PrintKeywords(keywords map[string]string) error
	PrintResults(res model.TestResult, verdict model.Verdict) error
	PrintMessage(msg string) error
}

var (
	_ Printer = &TablePrinter{}
	_ Printer = &JSONPrinter{}
)
