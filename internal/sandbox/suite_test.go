package sandbox_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/tokactl/internal/labapi/labapimock"
	"github.com/slok/tokactl/internal/model"
)

func TestControllerKeywords(t *testing.T) {
	tests := map[string]struct {
		mock        func(m *labapimock.MockAPI)
		profile     string
		expKeywords map[string]string
		expWarning  bool
	}{
		"the default profile should be used when none is set": {
			mock: func(m *labapimock.MockAPI) {
				m.On("GetKeywords", mock.Anything, "sb", "Default").Once().Return(&model.KeywordSet{Keywords: []model.Keyword{
					{Name: "vlan", Value: "100"},
					{Name: "mtu", Value: "9000"},
				}}, nil)
			},
			expKeywords: map[string]string{"vlan": "100", "mtu": "9000"},
		},
		"a custom profile should be requested": {
			mock: func(m *labapimock.MockAPI) {
				m.On("GetKeywords", mock.Anything, "sb", "nightly").Once().Return(&model.KeywordSet{Keywords: []model.Keyword{
					{Name: "vlan", Value: "200"},
				}}, nil)
			},
			profile:     "nightly",
			expKeywords: map[string]string{"vlan": "200"},
		},
		"a profile without keywords should log and return nothing": {
			mock: func(m *labapimock.MockAPI) {
				m.On("GetKeywords", mock.Anything, "sb", "nightly").Once().Return(&model.KeywordSet{Message: "No keywords found"}, nil)
			},
			profile:     "nightly",
			expKeywords: nil,
			expWarning:  true,
		},
		"a profile with an empty keyword list should return an empty set": {
			mock: func(m *labapimock.MockAPI) {
				m.On("GetKeywords", mock.Anything, "sb", "Default").Once().Return(&model.KeywordSet{Keywords: []model.Keyword{}}, nil)
			},
			expKeywords: map[string]string{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := labapimock.NewMockAPI(t)
			m.On("ListTopologies", mock.Anything, "sb").Once().Return(topologies("sb", model.TopologyTypeRegular, model.ReservationStatusAvailable), nil)
			test.mock(m)

			logger := newRecordLogger()
			c := newTestController(t, m, logger)
			require.NoError(c.Select(context.TODO(), "sb"))

			got, err := c.Keywords(context.TODO(), test.profile)
			require.NoError(err)
			assert.Equal(test.expKeywords, got)
			assert.Equal(test.expWarning, len(logger.warnings) > 0)
		})
	}
}

func TestControllerSetKeywords(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	m := labapimock.NewMockAPI(t)
	m.On("ListTopologies", mock.Anything, "sb").Once().Return(topologies("sb", model.TopologyTypeRegular, model.ReservationStatusAvailable), nil)
	m.On("SetKeywords", mock.Anything, "sb", []model.Keyword{
		{Name: "mtu", Value: "9000", DataType: "String", ExecutionProfile: "Default"},
		{Name: "vlan", Value: "100", DataType: "String", ExecutionProfile: "Default"},
	}).Once().Return(nil)

	c := newTestController(t, m, nil)
	require.NoError(c.Select(context.TODO(), "sb"))

	err := c.SetKeywords(context.TODO(), "", map[string]string{"vlan": "100", "mtu": "9000"})
	require.NoError(err)

	err = c.SetKeywords(context.TODO(), "", nil)
	assert.ErrorIs(err, model.ErrNotValid)
}

func TestControllerRunSuite(t *testing.T) {
	tests := map[string]struct {
		status string
		expErr error
	}{
		"a started suite should succeed": {
			status: "Suite Started",
		},
		"a suite not started should fail": {
			status: "Suite Not Found",
			expErr: model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := labapimock.NewMockAPI(t)
			m.On("ListTopologies", mock.Anything, "sb").Once().Return(topologies("sb", model.TopologyTypeRegular, model.ReservationStatusAvailable), nil)
			m.On("RunSuite", mock.Anything, "sb", "smoke").Once().Return(test.status, nil)

			c := newTestController(t, m, nil)
			require.NoError(c.Select(context.TODO(), "sb"))

			err := c.RunSuite(context.TODO(), "smoke")
			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
				return
			}
			assert.NoError(err)
		})
	}
}

func TestControllerWaitForSuite(t *testing.T) {
	tests := map[string]struct {
		statuses  []model.SuiteStatus
		expStatus model.SuiteStatus
	}{
		"waiting should poll until the suite stops": {
			statuses:  []model.SuiteStatus{model.SuiteStatusRunning, model.SuiteStatusRunning, model.SuiteStatusStopped},
			expStatus: model.SuiteStatusStopped,
		},
		"waiting should finish when the suite aborts": {
			statuses:  []model.SuiteStatus{model.SuiteStatusRunning, model.SuiteStatusAborted},
			expStatus: model.SuiteStatusAborted,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := labapimock.NewMockAPI(t)
			m.On("ListTopologies", mock.Anything, "sb").Once().Return(topologies("sb", model.TopologyTypeRegular, model.ReservationStatusAvailable), nil)
			for _, st := range test.statuses {
				m.On("SuiteStatus", mock.Anything, "sb", "smoke").Once().Return(st, nil)
			}

			c := newTestController(t, m, nil)
			require.NoError(c.Select(context.TODO(), "sb"))

			got, err := c.WaitForSuite(context.TODO(), "smoke")
			require.NoError(err)
			assert.Equal(test.expStatus, got)
		})
	}
}

func TestControllerResults(t *testing.T) {
	tests := map[string]struct {
		result     *model.TestResult
		expVerdict model.Verdict
		expLogErr  bool
	}{
		"no failures should pass": {
			result:     &model.TestResult{TestStatus: "Completed", Total: 5, CasesPassed: 5, StepsPassed: 3},
			expVerdict: model.VerdictPassed,
		},
		"a failed case should fail": {
			result:     &model.TestResult{TestStatus: "Completed", Total: 5, CasesPassed: 4, CasesFailed: 1},
			expVerdict: model.VerdictFailed,
			expLogErr:  true,
		},
		"a failed step should fail": {
			result:     &model.TestResult{TestStatus: "Completed", Total: 5, CasesPassed: 5, StepsFailed: 2},
			expVerdict: model.VerdictFailed,
			expLogErr:  true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := labapimock.NewMockAPI(t)
			m.On("ListTopologies", mock.Anything, "sb").Once().Return(topologies("sb", model.TopologyTypeRegular, model.ReservationStatusAvailable), nil)
			m.On("LatestResults", mock.Anything, "sb").Once().Return(test.result, nil)

			logger := newRecordLogger()
			c := newTestController(t, m, logger)
			require.NoError(c.Select(context.TODO(), "sb"))

			got, verdict, err := c.Results(context.TODO())
			require.NoError(err)
			assert.Equal(test.result, got)
			assert.Equal(test.expVerdict, verdict)
			assert.Equal(test.expLogErr, len(logger.errors) > 0)
		})
	}
}
