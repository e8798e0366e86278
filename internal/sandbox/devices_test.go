package sandbox_test

import (
	"context"
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/tokactl/internal/labapi/labapimock"
	"github.com/slok/tokactl/internal/model"
	"github.com/slok/tokactl/internal/sandbox"
)

func testDevicePayloads() map[string]map[string]any {
	return map[string]map[string]any{
		"chassisA": {
			"hostname":   "chassisA",
			"deviceType": "Ixia",
			"deviceManagement": map[string]any{
				"managementInterfaces": []any{
					map[string]any{"networkAddress": "10.0.0.10", "username": "admin", "type": "https"},
				},
			},
			"physicalPortConnections": map[string]any{
				"interfaces": []any{
					map[string]any{"directConnectionDetails": map[string]any{"targetHost": "dutB", "sourcePortId": "1/2/3", "targetPortId": "eth1"}},
					map[string]any{"directConnectionDetails": map[string]any{"targetHost": "dutB", "sourcePortId": "1.2", "targetPortId": "eth2"}},
					map[string]any{"directConnectionDetails": map[string]any{"targetHost": "dutB", "sourcePortId": "port-a", "targetPortId": "eth3"}},
					map[string]any{"directConnectionDetails": map[string]any{"targetHost": "dutC", "sourcePortId": "4/5", "targetPortId": "eth1"}},
					map[string]any{"name": "unconnected"},
				},
			},
		},
		"dutB": {
			"hostname": "dutB",
			"deviceManagement": map[string]any{
				"managementInterfaces": []any{
					map[string]any{"networkAddress": "10.0.0.20", "username": "root", "type": "ssh"},
					map[string]any{"networkAddress": "", "username": "", "type": "telnet"},
				},
			},
			"physicalPortConnections": map[string]any{
				"interfaces": []any{
					map[string]any{"directConnectionDetails": map[string]any{"targetHost": "chassisA", "sourcePortId": "eth1", "targetPortId": "1/2/3"}},
					map[string]any{"directConnectionDetails": map[string]any{"targetHost": "dutC", "sourcePortId": "eth9", "targetPortId": "eth9"}},
				},
			},
		},
		"dutC": {
			"hostname": "dutC",
		},
	}
}

// newReservedController returns a controller attached to a reserved sandbox with the devices.
func newReservedController(t *testing.T, logger *recordLogger, payloads map[string]map[string]any) *sandbox.Controller {
	t.Helper()

	m := labapimock.NewMockAPI(t)
	m.On("ListTopologies", mock.Anything, "sb").Once().Return(topologies("sb", model.TopologyTypeRegular, model.ReservationStatusReserved), nil)

	var tds []model.TopologyDevice
	for _, name := range slices.Sorted(maps.Keys(payloads)) {
		tds = append(tds, model.TopologyDevice{Name: name})
		m.On("GetDeviceDetails", mock.Anything, name).Once().Return([]map[string]any{payloads[name]}, nil)
	}
	m.On("ListTopologyDevices", mock.Anything, "sb").Once().Return(tds, nil)

	if logger == nil {
		logger = newRecordLogger()
	}
	c := newTestController(t, m, logger)
	require.NoError(t, c.Select(context.TODO(), "sb"))

	return c
}

func TestControllerDeviceCache(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	mgmt := []any{
		map[string]any{"networkAddress": "10.0.0.1", "username": "root", "type": "ssh"},
		map[string]any{"networkAddress": "10.0.0.2", "username": "admin", "type": "https"},
	}
	ports := []any{
		map[string]any{"portId": "1", "directConnectionDetails": map[string]any{"targetHost": "dut-2", "sourcePortId": "1", "targetPortId": "2"}},
		map[string]any{"portId": "2"},
	}
	c := newReservedController(t, nil, map[string]map[string]any{
		"dut-1": {
			"a":                       1,
			"b":                       "x",
			"tags":                    []any{"x"},
			"deviceManagement":        map[string]any{"managementInterfaces": mgmt},
			"physicalPortConnections": map[string]any{"interfaces": ports},
		},
	})

	devices, err := c.Devices()
	require.NoError(err)
	require.Len(devices, 1)
	d := devices[0]

	assert.Equal("dut-1", d.Name)
	assert.Equal(map[string]any{"a": 1, "b": "x"}, d.Fields)

	require.Len(d.MgmtInterfaces, 2)
	assert.Equal("10.0.0.1", d.MgmtInterfaces[0].NetworkAddress)
	assert.Equal("10.0.0.2", d.MgmtInterfaces[1].NetworkAddress)
	assert.Equal(mgmt[0], d.MgmtInterfaces[0].Raw)
	assert.Equal(mgmt[1], d.MgmtInterfaces[1].Raw)

	assert.True(d.HasPorts)
	require.Len(d.Ports, 2)
	assert.Equal(ports[0], d.Ports[0].Raw)
	assert.Equal(ports[1], d.Ports[1].Raw)
	assert.Equal(&model.DirectConnection{TargetHost: "dut-2", SourcePortID: "1", TargetPortID: "2"}, d.Ports[0].DirectConnection)
	assert.Nil(d.Ports[1].DirectConnection)
}

func TestControllerDeviceWithoutManagement(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c := newReservedController(t, nil, map[string]map[string]any{"dut-1": {"hostname": "dut-1"}})

	devices, err := c.Devices()
	require.NoError(err)
	require.Len(devices, 1)
	assert.Empty(devices[0].MgmtInterfaces)
	assert.False(devices[0].HasPorts)
}

func TestControllerDeviceIPAndUsername(t *testing.T) {
	tests := map[string]struct {
		device      string
		idx         int
		expIP       string
		expUsername string
		expOK       bool
		expErr      error
	}{
		"the primary interface should be returned by default": {
			device:      "dutB",
			idx:         0,
			expIP:       "10.0.0.20",
			expUsername: "root",
			expOK:       true,
		},
		"a secondary interface without address and username should still be found": {
			device: "dutB",
			idx:    1,
			expIP:  "",
			expOK:  true,
		},
		"an out of range interface should return nothing": {
			device: "chassisA",
			idx:    1,
		},
		"a negative interface index should return nothing": {
			device: "dutB",
			idx:    -1,
		},
		"a device without interfaces should return nothing": {
			device: "dutC",
		},
		"a missing device should fail": {
			device: "dutZ",
			expErr: model.ErrDeviceNotFound,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			c := newReservedController(t, nil, testDevicePayloads())

			ip, ok, err := c.DeviceIP(test.device, test.idx)
			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
				assert.ErrorIs(err, model.ErrNotFound)
				return
			}
			assert.NoError(err)
			assert.Equal(test.expIP, ip)
			assert.Equal(test.expOK, ok)

			username, ok, err := c.DeviceUsername(test.device, test.idx)
			assert.NoError(err)
			assert.Equal(test.expUsername, username)
			assert.Equal(test.expOK, ok)
		})
	}
}

func TestControllerDeviceQueriesNotReserved(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	m := labapimock.NewMockAPI(t)
	m.On("ListTopologies", mock.Anything, "sb").Once().Return(topologies("sb", model.TopologyTypeRegular, model.ReservationStatusAvailable), nil)
	c := newTestController(t, m, nil)
	require.NoError(c.Select(context.TODO(), "sb"))

	_, _, err := c.DeviceIP("dutB", 0)
	assert.ErrorIs(err, model.ErrNotReserved)
	assert.NotErrorIs(err, model.ErrNotFound)

	_, _, err = c.DeviceUsername("dutB", 0)
	assert.ErrorIs(err, model.ErrNotReserved)

	_, err = c.DevicePorts("chassisA", "dutB", true)
	assert.ErrorIs(err, model.ErrNotReserved)

	_, err = c.Devices()
	assert.ErrorIs(err, model.ErrNotReserved)
}

func TestControllerDevicePorts(t *testing.T) {
	tests := map[string]struct {
		src        string
		target     string
		trafficGen bool
		expPairs   []model.PortPair
		expErr     error
		expLogErr  bool
	}{
		"traffic generator ports should be parsed into chassis, slot and port": {
			src:        "chassisA",
			target:     "dutB",
			trafficGen: true,
			expPairs: []model.PortPair{
				{SourcePort: "1/2/3", TargetPort: "eth1", TrafficGen: &model.TrafficGenPort{ChassisAddress: "10.0.0.10", Slot: 2, Port: 3}},
				{SourcePort: "1.2", TargetPort: "eth2", TrafficGen: &model.TrafficGenPort{ChassisAddress: "10.0.0.10", Slot: 1, Port: 2}},
			},
		},
		"regular ports should be returned as they are": {
			src:    "chassisA",
			target: "dutB",
			expPairs: []model.PortPair{
				{SourcePort: "1/2/3", TargetPort: "eth1"},
				{SourcePort: "1.2", TargetPort: "eth2"},
				{SourcePort: "port-a", TargetPort: "eth3"},
			},
		},
		"ports of other targets should be ignored": {
			src:    "dutB",
			target: "chassisA",
			expPairs: []model.PortPair{
				{SourcePort: "eth1", TargetPort: "1/2/3"},
			},
		},
		"a source without port connections should log and return nothing": {
			src:       "dutC",
			target:    "chassisA",
			expPairs:  nil,
			expLogErr: true,
		},
		"a target without port connections should log and return nothing": {
			src:        "chassisA",
			target:     "dutC",
			trafficGen: true,
			expPairs:   nil,
			expLogErr:  true,
		},
		"a missing source should fail": {
			src:    "dutZ",
			target: "dutB",
			expErr: model.ErrDeviceNotFound,
		},
		"a missing target should fail": {
			src:    "chassisA",
			target: "dutZ",
			expErr: model.ErrDeviceNotFound,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			logger := newRecordLogger()
			c := newReservedController(t, logger, testDevicePayloads())

			got, err := c.DevicePorts(test.src, test.target, test.trafficGen)
			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
				return
			}
			require.NoError(err)
			assert.Equal(test.expPairs, got)
			assert.Equal(test.expLogErr, len(logger.errors) > 0)
		})
	}
}

func TestControllerDeviceExists(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	m := labapimock.NewMockAPI(t)
	m.On("ListTopologies", mock.Anything, "sb").Once().Return(topologies("sb", model.TopologyTypeRegular, model.ReservationStatusAvailable), nil)
	m.On("ListTopologyDevices", mock.Anything, "sb").Times(2).Return([]model.TopologyDevice{{Name: "dut-1"}}, nil)
	c := newTestController(t, m, nil)
	require.NoError(c.Select(context.TODO(), "sb"))

	ok, err := c.DeviceExists(context.TODO(), "dut-1")
	require.NoError(err)
	assert.True(ok)

	ok, err = c.DeviceExists(context.TODO(), "dut-2")
	require.NoError(err)
	assert.False(ok)
}

func TestControllerInstantiatedVMName(t *testing.T) {
	tests := map[string]struct {
		profile string
		expName string
		expOK   bool
	}{
		"long profile names should match their first 11 characters": {
			profile: "cumulusProfile",
			expName: "AutoVM-cumulusProf-XqJWdN",
			expOK:   true,
		},
		"short profile names should match": {
			profile: "VMOne",
			expName: "AutoVM-VMOne-oIxhHy",
			expOK:   true,
		},
		"unknown profiles should not match": {
			profile: "other",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := labapimock.NewMockAPI(t)
			m.On("ListTopologies", mock.Anything, "sb").Once().Return(topologies("sb", model.TopologyTypeRegular, model.ReservationStatusAvailable), nil)
			m.On("ListTopologyDevices", mock.Anything, "sb").Once().Return([]model.TopologyDevice{
				{Name: "IxNetworkWebAPI", AbstractID: "DUT1"},
				{Name: "AutoVM-cumulusProf-XqJWdN", AbstractID: "DUT2"},
				{Name: "AutoVM-VMOne-oIxhHy", AbstractID: "DUT3"},
			}, nil)
			c := newTestController(t, m, nil)
			require.NoError(c.Select(context.TODO(), "sb"))

			got, ok, err := c.InstantiatedVMName(context.TODO(), test.profile)
			require.NoError(err)
			assert.Equal(test.expName, got)
			assert.Equal(test.expOK, ok)
		})
	}
}

func TestControllerWaitForDevicesReserved(t *testing.T) {
	require := require.New(t)

	m := labapimock.NewMockAPI(t)
	m.On("ListTopologies", mock.Anything, "sb").Once().Return(topologies("sb", model.TopologyTypeRegular, model.ReservationStatusAvailable), nil)
	m.On("ListTopologyDevices", mock.Anything, "sb").Once().Return([]model.TopologyDevice{{Name: "ixia-1"}, {Name: "dut-1"}}, nil)
	m.On("GetDeviceDetails", mock.Anything, "ixia-1").Once().Return([]map[string]any{{"deviceType": "Ixia"}}, nil)
	m.On("GetDeviceDetails", mock.Anything, "dut-1").Once().Return([]map[string]any{{
		"deviceType":         "Switch",
		"reservationDetails": map[string]any{"reservationStatus": "available"},
	}}, nil)
	m.On("GetDeviceDetails", mock.Anything, "dut-1").Once().Return([]map[string]any{{
		"deviceType":         "Switch",
		"reservationDetails": map[string]any{"reservationStatus": "reserved"},
	}}, nil)

	c := newTestController(t, m, nil)
	require.NoError(c.Select(context.TODO(), "sb"))
	require.NoError(c.WaitForDevicesReserved(context.TODO()))
}
