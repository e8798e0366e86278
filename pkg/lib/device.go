package lib

import "context"

// RefreshDevices reloads the reserved device details from the controller.
func (c *Client) RefreshDevices(ctx context.Context) error {
	return mapError(c.manager.RefreshDevices(ctx))
}

// Devices returns the reserved devices sorted by name.
func (c *Client) Devices() ([]Device, error) {
	ds, err := c.manager.Devices()
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalDevices(ds), nil
}

// DeviceExists checks if a device is part of the sandbox on the controller.
func (c *Client) DeviceExists(ctx context.Context, name string) (bool, error) {
	ok, err := c.manager.DeviceExists(ctx, name)
	return ok, mapError(err)
}

// DeviceIP returns the network address of a device management interface, 0 is
// the primary one. The boolean is false when the device has no such interface.
func (c *Client) DeviceIP(name string, mgmtInterfaceIndex int) (string, bool, error) {
	ip, ok, err := c.manager.DeviceIP(name, mgmtInterfaceIndex)
	return ip, ok, mapError(err)
}

// DeviceUsername returns the username of a device management interface.
func (c *Client) DeviceUsername(name string, mgmtInterfaceIndex int) (string, bool, error) {
	u, ok, err := c.manager.DeviceUsername(name, mgmtInterfaceIndex)
	return u, ok, mapError(err)
}

// DevicePorts returns the source device ports directly connected to the target device.
// It returns nil when any of the devices has no port connections. When the source is a traffic generator the ports are returned as chassis/slot/port
// addresses, see [PortPair.TrafficGen].
func (c *Client) DevicePorts(src, target string, srcIsTrafficGenerator bool) ([]PortPair, error) {
	pairs, err := c.manager.DevicePorts(src, target, srcIsTrafficGenerator)
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalPortPairs(pairs), nil
}

// InstantiatedVMName returns the sandbox device instantiated from a VM profile.
func (c *Client) InstantiatedVMName(ctx context.Context, vmProfile string) (string, bool, error) {
	n, ok, err := c.manager.InstantiatedVMName(ctx, vmProfile)
	return n, ok, mapError(err)
}

// WaitForDevicesReserved waits until every sandbox device reports itself as reserved.
func (c *Client) WaitForDevicesReserved(ctx context.Context) error {
	return mapError(c.manager.WaitForDevicesReserved(ctx))
}
