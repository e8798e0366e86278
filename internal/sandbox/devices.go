package sandbox

import (
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/slok/tokactl/internal/conventions"
	"github.com/slok/tokactl/internal/model"
)

// RefreshDevices loads the details of every device of the active topology.
// The cache is replaced only when all the devices have been loaded.
func (c *Controller) RefreshDevices(ctx context.Context) error {
	if err := c.checkSelected(); err != nil {
		return err
	}

	c.devices = nil
	name := c.activeTopology()

	tds, err := c.api.ListTopologyDevices(ctx, name)
	if err != nil {
		return fmt.Errorf("could not list sandbox %s devices: %w", name, err)
	}

	devices := make(map[string]model.Device, len(tds))
	for _, td := range tds {
		payloads, err := c.api.GetDeviceDetails(ctx, td.Name)
		if err != nil {
			return fmt.Errorf("could not get device %s details: %w", td.Name, err)
		}
		devices[td.Name] = newDevice(td.Name, payloads)
	}

	c.devices = devices
	c.logger.Debugf("Loaded %d devices of sandbox %s", len(devices), name)

	return nil
}

func newDevice(name string, payloads []map[string]any) model.Device {
	d := model.Device{
		Name:   name,
		Fields: map[string]any{},
	}

	for _, p := range payloads {
		for k, v := range p {
			switch v.(type) {
			case map[string]any, []any:
			default:
				d.Fields[k] = v
			}
		}

		if mgmt, ok := p["deviceManagement"].(map[string]any); ok {
			for _, raw := range asMaps(mgmt["managementInterfaces"]) {
				d.MgmtInterfaces = append(d.MgmtInterfaces, model.MgmtInterface{
					NetworkAddress: str(raw["networkAddress"]),
					Username:       str(raw["username"]),
					Type:           str(raw["type"]),
					ManagementType: str(raw["managementType"]),
					Raw:            raw,
				})
			}
		}

		if conns, ok := p["physicalPortConnections"].(map[string]any); ok {
			d.HasPorts = true
			for _, raw := range asMaps(conns["interfaces"]) {
				port := model.Port{Raw: raw}
				if dc, ok := raw["directConnectionDetails"].(map[string]any); ok {
					port.DirectConnection = &model.DirectConnection{
						TargetHost:   str(dc["targetHost"]),
						SourcePortID: str(dc["sourcePortId"]),
						TargetPortID: str(dc["targetPortId"]),
					}
				}
				d.Ports = append(d.Ports, port)
			}
		}
	}

	return d
}

func asMaps(v any) []map[string]any {
	list, _ := v.([]any)
	ms := make([]map[string]any, 0, len(list))
	for _, e := range list {
		if m, ok := e.(map[string]any); ok {
			ms = append(ms, m)
		}
	}
	return ms
}

func str(v any) string {
	switch tv := v.(type) {
	case nil:
		return ""
	case string:
		return tv
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", tv)
	}
}

func (c *Controller) device(name string) (model.Device, error) {
	if c.devices == nil {
		return model.Device{}, fmt.Errorf("sandbox %s devices are not loaded: %w", c.sandbox, model.ErrNotReserved)
	}

	d, ok := c.devices[name]
	if !ok {
		return model.Device{}, fmt.Errorf("%s on sandbox %s: %w", name, c.activeTopology(), model.ErrDeviceNotFound)
	}

	return d, nil
}

// Devices returns the reserved devices sorted by name.
func (c *Controller) Devices() ([]model.Device, error) {
	if c.devices == nil {
		return nil, fmt.Errorf("sandbox %s devices are not loaded: %w", c.sandbox, model.ErrNotReserved)
	}

	devices := make([]model.Device, 0, len(c.devices))
	for _, name := range slices.Sorted(maps.Keys(c.devices)) {
		devices = append(devices, c.devices[name])
	}

	return devices, nil
}

// DeviceExists checks the device on the controller sandbox device list.
func (c *Controller) DeviceExists(ctx context.Context, name string) (bool, error) {
	if err := c.checkSelected(); err != nil {
		return false, err
	}

	tds, err := c.api.ListTopologyDevices(ctx, c.activeTopology())
	if err != nil {
		return false, fmt.Errorf("could not list sandbox %s devices: %w", c.activeTopology(), err)
	}

	return slices.ContainsFunc(tds, func(td model.TopologyDevice) bool { return td.Name == name }), nil
}

// DeviceIP returns the network address of a device management interface (0 is
// the primary one). It returns false only when the device has no such interface,
// an interface without address returns an empty string.
func (c *Controller) DeviceIP(name string, mgmtInterfaceIndex int) (string, bool, error) {
	mi, ok, err := c.mgmtInterface(name, mgmtInterfaceIndex)
	if err != nil || !ok {
		return "", false, err
	}

	return mi.NetworkAddress, true, nil
}

// DeviceUsername returns the username of a device management interface.
func (c *Controller) DeviceUsername(name string, mgmtInterfaceIndex int) (string, bool, error) {
	mi, ok, err := c.mgmtInterface(name, mgmtInterfaceIndex)
	if err != nil || !ok {
		return "", false, err
	}

	return mi.Username, true, nil
}

func (c *Controller) mgmtInterface(name string, idx int) (model.MgmtInterface, bool, error) {
	d, err := c.device(name)
	if err != nil {
		return model.MgmtInterface{}, false, err
	}

	if idx < 0 || idx >= len(d.MgmtInterfaces) {
		return model.MgmtInterface{}, false, nil
	}

	return d.MgmtInterfaces[idx], true, nil
}

// trafficGenPortRe matches `chassis.slot.port` and `slot.port` with any non digit separators.
var trafficGenPortRe = regexp.MustCompile(`^(?:[0-9]+[^ 0-9]+)?([0-9]+)[^ 0-9]+([0-9]+)`)

// DevicePorts returns the port pairs of the source device directly connected
// to the target device. Both devices need a port connections section, otherwise
// nothing is returned. Source ports of traffic generators are parsed into
// chassis/slot/port addresses, ports with other formats are skipped.
func (c *Controller) DevicePorts(srcName, targetName string, srcIsTrafficGenerator bool) ([]model.PortPair, error) {
	src, err := c.device(srcName)
	if err != nil {
		return nil, err
	}
	target, err := c.device(targetName)
	if err != nil {
		return nil, err
	}

	for _, d := range []model.Device{src, target} {
		if !d.HasPorts {
			c.logger.Errorf("Device %s has no physical port connections", d.Name)
			return nil, nil
		}
	}

	chassis := ""
	if len(src.MgmtInterfaces) > 0 {
		chassis = src.MgmtInterfaces[0].NetworkAddress
	}

	pairs := []model.PortPair{}
	for _, p := range src.Ports {
		dc := p.DirectConnection
		if dc == nil || dc.TargetHost != targetName {
			continue
		}

		pair := model.PortPair{SourcePort: dc.SourcePortID, TargetPort: dc.TargetPortID}
		if srcIsTrafficGenerator {
			tg, ok := parseTrafficGenPort(chassis, dc.SourcePortID)
			if !ok {
				c.logger.Debugf("Skipping traffic generator %s port %q", srcName, dc.SourcePortID)
				continue
			}
			pair.TrafficGen = tg
		}
		pairs = append(pairs, pair)
	}

	c.logger.Debugf("Device %s has %d ports connected to %s", srcName, len(pairs), targetName)

	return pairs, nil
}

func parseTrafficGenPort(chassis, portID string) (*model.TrafficGenPort, bool) {
	m := trafficGenPortRe.FindStringSubmatch(portID)
	if m == nil {
		return nil, false
	}

	slot, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, false
	}
	port, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, false
	}

	return &model.TrafficGenPort{ChassisAddress: chassis, Slot: slot, Port: port}, true
}

// InstantiatedVMName returns the sandbox VM device instantiated from a VM profile.
// Instantiated VM names start with `AutoVM-` followed by the first 11 profile characters.
func (c *Controller) InstantiatedVMName(ctx context.Context, vmProfile string) (string, bool, error) {
	if err := c.checkSelected(); err != nil {
		return "", false, err
	}

	prefix := vmProfile
	if len(prefix) > 11 {
		prefix = prefix[:11]
	}
	prefix = "AutoVM-" + prefix

	tds, err := c.api.ListTopologyDevices(ctx, c.activeTopology())
	if err != nil {
		return "", false, fmt.Errorf("could not list sandbox %s devices: %w", c.activeTopology(), err)
	}

	for _, td := range tds {
		if strings.Contains(td.Name, prefix) {
			return td.Name, true, nil
		}
	}

	return "", false, nil
}

// WaitForDevicesReserved waits until every sandbox device reports itself as
// reserved. Traffic generators are not checked.
func (c *Controller) WaitForDevicesReserved(ctx context.Context) error {
	if err := c.checkSelected(); err != nil {
		return err
	}

	tds, err := c.api.ListTopologyDevices(ctx, c.activeTopology())
	if err != nil {
		return fmt.Errorf("could not list sandbox %s devices: %w", c.activeTopology(), err)
	}

	for _, td := range tds {
		for {
			payloads, err := c.api.GetDeviceDetails(ctx, td.Name)
			if err != nil {
				return fmt.Errorf("could not get device %s details: %w", td.Name, err)
			}
			if len(payloads) == 0 {
				return fmt.Errorf("device %s: %w", td.Name, model.ErrNotFound)
			}

			if str(payloads[0]["deviceType"]) == conventions.TrafficGeneratorDeviceType {
				break
			}

			status := ""
			if rd, ok := payloads[0]["reservationDetails"].(map[string]any); ok {
				status = str(rd["reservationStatus"])
			}
			c.logger.Debugf("Device %s reservation status: %s", td.Name, status)
			if model.ReservationStatus(status) == model.ReservationStatusReserved {
				break
			}

			if err := sleep(ctx, c.pollInterval); err != nil {
				return fmt.Errorf("stopped waiting for device %s: %w", td.Name, err)
			}
		}
	}

	return nil
}
