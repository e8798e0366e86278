package printer

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/slok/tokactl/internal/model"
)

// TablePrinter prints sandbox information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintTopologies prints topologies in a table format.
func (t *TablePrinter) PrintTopologies(topologies []model.Topology) error {
	if len(topologies) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "NAME\tTYPE\tSTATUS\tDEVICES\tCHILDREN")
	for _, tp := range topologies {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", tp.Name, tp.Type, tp.Status, len(tp.Devices), orNone(strings.Join(tp.Children, ",")))
	}

	return nil
}

// PrintStatus prints detailed sandbox status.
func (t *TablePrinter) PrintStatus(info model.SandboxInfo) error {
	fmt.Fprintf(t.writer, "Name:       %s\n", info.Topology.Name)
	fmt.Fprintf(t.writer, "Type:       %s\n", info.Topology.Type)
	fmt.Fprintf(t.writer, "Status:     %s\n", info.Topology.Status)

	if info.Child != "" {
		fmt.Fprintf(t.writer, "Child:      %s\n", info.Child)
	}
	if len(info.Topology.Children) > 0 {
		fmt.Fprintf(t.writer, "Children:   %s\n", strings.Join(info.Topology.Children, ", "))
	}

	if info.Devices == nil {
		return nil
	}

	fmt.Fprintf(t.writer, "Devices:    %d\n\n", len(info.Devices))
	return t.PrintDevices(info.Devices)
}

// PrintReservation prints a reservation summary.
func (t *TablePrinter) PrintReservation(res model.Reservation) error {
	fmt.Fprintf(t.writer, "Sandbox:    %s\n", res.Sandbox)
	if res.Child != "" {
		fmt.Fprintf(t.writer, "Child:      %s\n", res.Child)
	}
	fmt.Fprintf(t.writer, "Devices:    %d\n", res.Devices)
	fmt.Fprintf(t.writer, "Took:       %s\n", FormatDuration(res.Duration))

	return nil
}

// PrintDevices prints devices with their primary management interface.
func (t *TablePrinter) PrintDevices(devices []model.Device) error {
	if len(devices) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "NAME\tADDRESS\tUSERNAME\tMGMT INTERFACES\tPORTS")
	for _, d := range devices {
		address, username := "", ""
		if len(d.MgmtInterfaces) > 0 {
			address = d.MgmtInterfaces[0].NetworkAddress
			username = d.MgmtInterfaces[0].Username
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", d.Name, orNone(address), orNone(username), len(d.MgmtInterfaces), len(d.Ports))
	}

	return nil
}

// PrintPorts prints port pairs.
func (t *TablePrinter) PrintPorts(pairs []model.PortPair) error {
	if len(pairs) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "SOURCE PORT\tTARGET PORT\tCHASSIS\tSLOT\tPORT")
	for _, p := range pairs {
		if p.TrafficGen == nil {
			fmt.Fprintf(tw, "%s\t%s\t-\t-\t-\n", p.SourcePort, p.TargetPort)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", p.SourcePort, p.TargetPort, orNone(p.TrafficGen.ChassisAddress), p.TrafficGen.Slot, p.TrafficGen.Port)
	}

	return nil
}

// PrintKeywords prints keywords sorted by name.
func (t *TablePrinter) PrintKeywords(keywords map[string]string) error {
	if len(keywords) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "NAME\tVALUE")
	for _, name := range slices.Sorted(maps.Keys(keywords)) {
		fmt.Fprintf(tw, "%s\t%s\n", name, keywords[name])
	}

	return nil
}

// PrintResults prints a test run result.
func (t *TablePrinter) PrintResults(res model.TestResult, verdict model.Verdict) error {
	fmt.Fprintf(t.writer, "Verdict:       %s\n", verdict)
	fmt.Fprintf(t.writer, "Test status:   %s\n", res.TestStatus)
	fmt.Fprintf(t.writer, "Total:         %d\n", res.Total)
	fmt.Fprintf(t.writer, "Cases:         %d passed, %d failed\n", res.CasesPassed, res.CasesFailed)
	fmt.Fprintf(t.writer, "Steps:         %d passed, %d failed\n", res.StepsPassed, res.StepsFailed)

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
