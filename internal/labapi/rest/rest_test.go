package rest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tokactl/internal/labapi/fake"
	"github.com/slok/tokactl/internal/labapi/rest"
	"github.com/slok/tokactl/internal/model"
	"github.com/slok/tokactl/internal/transport"
)

const testFixture = `
users:
  admin: secret
suitePolls: 1
topologies:
  - name: core
    devices: [dut-1, dut-2]
  - name: core-edge
  - name: lab-bp
    type: blueprint
    devices: [dut-1]
devices:
  - hostname: dut-1
    vendor: acme
    deviceManagement:
      managementInterfaces:
        - networkAddress: 10.0.0.1
          username: root
  - hostname: dut-2
keywords:
  core:
    - name: vlan
      value: "100"
    - name: vlan
      value: "200"
      executionProfile: nightly
results:
  core:
    testStatus: Completed
    total: 3
    casesPassed: 2
    casesFailed: 1
`

func newTestClient(t *testing.T) (*rest.Client, *fake.Controller) {
	t.Helper()

	fixture, err := fake.LoadFixture([]byte(testFixture))
	require.NoError(t, err)
	ctrl, err := fake.NewController(fake.ControllerConfig{Fixture: fixture})
	require.NoError(t, err)

	srv := httptest.NewTLSServer(ctrl.Handler())
	t.Cleanup(srv.Close)

	session, err := transport.Authenticate(context.TODO(), transport.SessionConfig{
		Endpoint:   srv.URL,
		User:       "admin",
		Password:   "secret",
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)

	client, err := rest.NewClient(rest.ClientConfig{Session: session})
	require.NoError(t, err)

	return client, ctrl
}

func TestClientListTopologies(t *testing.T) {
	tests := map[string]struct {
		name     string
		expNames []string
	}{
		"Listing by name should match only the exact name.": {
			name:     "core",
			expNames: []string{"core"},
		},
		"Listing without name should return all the topologies.": {
			name:     "",
			expNames: []string{"core", "core-edge", "lab-bp"},
		},
		"Listing a missing topology should return nothing.": {
			name:     "missing",
			expNames: nil,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			client, _ := newTestClient(t)

			got, err := client.ListTopologies(context.TODO(), test.name)
			require.NoError(err)

			var names []string
			for _, tp := range got {
				names = append(names, tp.Name)
			}
			assert.Equal(test.expNames, names)
		})
	}
}

func TestClientReserveRelease(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client, _ := newTestClient(t)
	ctx := context.TODO()

	res, err := client.ReserveTopology(ctx, "core")
	require.NoError(err)
	assert.Equal("Sandbox Reserved Successfully", res.Status)
	assert.Equal("core", res.TopologyName)

	tps, err := client.ListTopologies(ctx, "core")
	require.NoError(err)
	require.Len(tps, 1)
	assert.Equal(model.ReservationStatusReserved, tps[0].Status)
	assert.Equal(model.TopologyTypeRegular, tps[0].Type)

	// Already reserved.
	res, err = client.ReserveTopology(ctx, "core")
	require.NoError(err)
	assert.NotEqual("Sandbox Reserved Successfully", res.Status)

	res, err = client.ReleaseTopology(ctx, "core")
	require.NoError(err)
	assert.Equal("Sandbox Released Successfully", res.Status)

	tps, err = client.ListTopologies(ctx, "core")
	require.NoError(err)
	require.Len(tps, 1)
	assert.Equal(model.ReservationStatusAvailable, tps[0].Status)
}

func TestClientReserveBlueprint(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client, _ := newTestClient(t)
	ctx := context.TODO()

	res, err := client.ReserveTopology(ctx, "lab-bp")
	require.NoError(err)
	assert.Equal("Sandbox Reserved Successfully", res.Status)
	assert.True(strings.HasPrefix(res.TopologyName, "lab-bp-"))

	tps, err := client.ListTopologies(ctx, "lab-bp")
	require.NoError(err)
	require.Len(tps, 1)
	assert.Equal(model.TopologyTypeBlueprint, tps[0].Type)
	assert.Equal([]string{res.TopologyName}, tps[0].Children)

	devices, err := client.ListTopologyDevices(ctx, res.TopologyName)
	require.NoError(err)
	assert.Equal([]model.TopologyDevice{{Name: "dut-1", AbstractID: "DUT1"}}, devices)

	res, err = client.ReleaseTopology(ctx, res.TopologyName)
	require.NoError(err)
	assert.Equal("Sandbox Released Successfully", res.Status)

	tps, err = client.ListTopologies(ctx, "lab-bp")
	require.NoError(err)
	require.Len(tps, 1)
	assert.Empty(tps[0].Children)
}

func TestClientMissingTopology(t *testing.T) {
	assert := assert.New(t)

	client, _ := newTestClient(t)

	_, err := client.ReserveTopology(context.TODO(), "missing")
	var apiErr *model.APIError
	if assert.ErrorAs(err, &apiErr) {
		assert.Equal(http.StatusNotFound, apiErr.StatusCode)
	}

	_, err = client.ListTopologyDevices(context.TODO(), "missing")
	assert.ErrorIs(err, model.ErrNotFound)
}

func TestClientGetDeviceDetails(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client, _ := newTestClient(t)

	got, err := client.GetDeviceDetails(context.TODO(), "dut-1")
	require.NoError(err)
	require.Len(got, 1)
	assert.Equal("dut-1", got[0]["hostname"])
	assert.Equal("acme", got[0]["vendor"])

	dm, ok := got[0]["deviceManagement"].(map[string]any)
	require.True(ok)
	mgmt, ok := dm["managementInterfaces"].([]any)
	require.True(ok)
	require.Len(mgmt, 1)
	assert.Equal("10.0.0.1", mgmt[0].(map[string]any)["networkAddress"])

	got, err = client.GetDeviceDetails(context.TODO(), "dut")
	require.NoError(err)
	assert.Empty(got)
}

func TestClientKeywords(t *testing.T) {
	tests := map[string]struct {
		sandbox     string
		profile     string
		expKeywords []model.Keyword
	}{
		"Default profile keywords should be returned.": {
			sandbox: "core",
			profile: "",
			expKeywords: []model.Keyword{
				{Name: "vlan", Value: "100", DataType: "String", ExecutionProfile: "Default"},
			},
		},
		"Custom profile keywords should be returned.": {
			sandbox: "core",
			profile: "nightly",
			expKeywords: []model.Keyword{
				{Name: "vlan", Value: "200", DataType: "String", ExecutionProfile: "nightly"},
			},
		},
		"A sandbox without keywords should return no keywords.": {
			sandbox:     "core-edge",
			expKeywords: nil,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			client, _ := newTestClient(t)

			got, err := client.GetKeywords(context.TODO(), test.sandbox, test.profile)
			require.NoError(err)
			assert.Equal(test.expKeywords, got.Keywords)
			assert.NotEmpty(got.Message)
		})
	}
}

func TestClientSetKeywords(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client, _ := newTestClient(t)
	ctx := context.TODO()

	err := client.SetKeywords(ctx, "core-edge", []model.Keyword{
		{Name: "mtu", Value: "9000", DataType: "String", ExecutionProfile: "Default"},
	})
	require.NoError(err)

	got, err := client.GetKeywords(ctx, "core-edge", "Default")
	require.NoError(err)
	assert.Equal([]model.Keyword{{Name: "mtu", Value: "9000", DataType: "String", ExecutionProfile: "Default"}}, got.Keywords)
}

func TestClientSuites(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client, _ := newTestClient(t)
	ctx := context.TODO()

	status, err := client.RunSuite(ctx, "core", "smoke")
	require.NoError(err)
	assert.Equal("Suite Started", status)

	st, err := client.SuiteStatus(ctx, "core", "smoke")
	require.NoError(err)
	assert.Equal(model.SuiteStatusRunning, st)

	st, err = client.SuiteStatus(ctx, "core", "smoke")
	require.NoError(err)
	assert.Equal(model.SuiteStatusStopped, st)

	res, err := client.LatestResults(ctx, "core")
	require.NoError(err)
	assert.Equal(&model.TestResult{TestStatus: "Completed", Total: 3, CasesPassed: 2, CasesFailed: 1}, res)
	assert.Equal(model.VerdictFailed, res.Verdict())
}

func TestClientResultsNumericCounters(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tokalabs/api/login" {
			_, _ = w.Write([]byte(`{"additionalDetails":{"token":{"token":"admin/abc"}}}`))
			return
		}
		assert.Equal("/testrunner/core/TestControl.php", r.URL.Path)
		assert.Equal("2", r.URL.Query().Get("task"))
		_, _ = w.Write([]byte(`{"testStatus":"Completed","total":2,"casesPassed":"2","casesFailed":0,"stepsPassed":"5","stepsFailed":null}`))
	})
	srv := httptest.NewTLSServer(h)
	defer srv.Close()

	session, err := transport.Authenticate(context.TODO(), transport.SessionConfig{
		Endpoint:   srv.URL,
		User:       "admin",
		HTTPClient: srv.Client(),
	})
	require.NoError(err)
	client, err := rest.NewClient(rest.ClientConfig{Session: session})
	require.NoError(err)

	res, err := client.LatestResults(context.TODO(), "core")
	require.NoError(err)
	assert.Equal(&model.TestResult{TestStatus: "Completed", Total: 2, CasesPassed: 2, StepsPassed: 5}, res)
	assert.Equal(model.VerdictPassed, res.Verdict())
}

func TestClientChildTopologyObjects(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tokalabs/api/login" {
			_, _ = w.Write([]byte(`{"additionalDetails":{"token":{"token":"admin/abc"}}}`))
			return
		}
		assert.Equal("^bp$", r.URL.Query().Get("name"))
		_, _ = w.Write([]byte(`{"additionalDetails":{"topologiesList":[{"name":"bp","type":"blueprint","childTopologies":[{"name":"bp-1"},"bp-2"]}]}}`))
	})
	srv := httptest.NewTLSServer(h)
	defer srv.Close()

	session, err := transport.Authenticate(context.TODO(), transport.SessionConfig{
		Endpoint:   srv.URL,
		User:       "admin",
		HTTPClient: srv.Client(),
	})
	require.NoError(err)
	client, err := rest.NewClient(rest.ClientConfig{Session: session})
	require.NoError(err)

	got, err := client.ListTopologies(context.TODO(), "bp")
	require.NoError(err)
	require.Len(got, 1)
	assert.Equal([]string{"bp-1", "bp-2"}, got[0].Children)
	assert.Equal(model.ReservationStatus(""), got[0].Status)
}
