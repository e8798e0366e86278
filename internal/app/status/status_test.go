package status_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/tokactl/internal/app/status"
	"github.com/slok/tokactl/internal/model"
	"github.com/slok/tokactl/internal/sandbox/sandboxmock"
)

func TestNewService(t *testing.T) {
	tests := map[string]struct {
		config status.ServiceConfig
		expErr bool
	}{
		"valid config should create service": {
			config: status.ServiceConfig{Manager: &sandboxmock.MockManager{}},
		},
		"missing manager should fail": {
			config: status.ServiceConfig{},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			svc, err := status.NewService(test.config)

			if test.expErr {
				require.Error(err)
				require.Nil(svc)
			} else {
				require.NoError(err)
				require.NotNil(svc)
			}
		})
	}
}

func TestService_Run(t *testing.T) {
	reservedTopology := &model.Topology{Name: "sb", Type: model.TopologyTypeRegular, Status: model.ReservationStatusReserved}
	availableTopology := &model.Topology{Name: "sb", Type: model.TopologyTypeRegular, Status: model.ReservationStatusAvailable}
	devices := []model.Device{{Name: "dut-1"}, {Name: "dut-2"}}

	tests := map[string]struct {
		mock     func(m *sandboxmock.MockManager)
		req      status.Request
		expInfo  *model.SandboxInfo
		expErr   bool
		expErrIs error
	}{
		"status of a reserved sandbox should include devices": {
			mock: func(m *sandboxmock.MockManager) {
				m.On("Select", mock.Anything, "sb").Once().Return(nil)
				m.On("Details", mock.Anything).Once().Return(reservedTopology, nil)
				m.On("Child").Once().Return("")
				m.On("Devices").Once().Return(devices, nil)
			},
			req:     status.Request{Sandbox: "sb"},
			expInfo: &model.SandboxInfo{Topology: *reservedTopology, Devices: devices},
		},
		"status of an available sandbox should not include devices": {
			mock: func(m *sandboxmock.MockManager) {
				m.On("Select", mock.Anything, "sb").Once().Return(nil)
				m.On("Details", mock.Anything).Once().Return(availableTopology, nil)
				m.On("Child").Once().Return("")
				m.On("Devices").Once().Return(nil, fmt.Errorf("not loaded: %w", model.ErrNotReserved))
			},
			req:     status.Request{Sandbox: "sb"},
			expInfo: &model.SandboxInfo{Topology: *availableTopology},
		},
		"missing sandbox on the controller should fail": {
			mock: func(m *sandboxmock.MockManager) {
				m.On("Select", mock.Anything, "sb").Once().Return(nil)
				m.On("Details", mock.Anything).Once().Return(nil, fmt.Errorf("sandbox sb: %w", model.ErrNotFound))
			},
			req:      status.Request{Sandbox: "sb"},
			expErr:   true,
			expErrIs: model.ErrNotFound,
		},
		"missing sandbox name should fail": {
			mock:     func(m *sandboxmock.MockManager) {},
			req:      status.Request{},
			expErr:   true,
			expErrIs: model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := sandboxmock.NewMockManager(t)
			test.mock(m)

			svc, err := status.NewService(status.ServiceConfig{Manager: m})
			require.NoError(err)

			got, err := svc.Run(context.TODO(), test.req)

			if test.expErr {
				require.Error(err)
				if test.expErrIs != nil {
					assert.ErrorIs(err, test.expErrIs)
				}
				return
			}
			require.NoError(err)
			assert.Equal(test.expInfo, got)
		})
	}
}
