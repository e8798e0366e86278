// Package rest implements the lab controller API over its REST interface.
package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"github.com/slok/tokactl/internal/log"
	"github.com/slok/tokactl/internal/model"
)

// Session is the authenticated controller session used by the client.
type Session interface {
	User() string
	WebToken() string
	Send(ctx context.Context, method, path string, body, out any) error
}

// ClientConfig is the configuration for the REST client.
type ClientConfig struct {
	Session Session
	Logger  log.Logger
}

func (c *ClientConfig) defaults() error {
	if c.Session == nil {
		return fmt.Errorf("session is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "labapi.REST"})

	return nil
}

// Client is the REST implementation of labapi.API.
type Client struct {
	session Session
	logger  log.Logger
}

// NewClient returns a new REST client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		session: cfg.Session,
		logger:  cfg.Logger,
	}, nil
}

func (c *Client) ListTopologies(ctx context.Context, name string) ([]model.Topology, error) {
	path := "/tokalabs/api/topologies"
	if name != "" {
		path += "?" + url.Values{"name": {exactName(name)}}.Encode()
	}

	var resp topologiesResponse
	if err := c.session.Send(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("could not list topologies: %w", err)
	}

	topologies := make([]model.Topology, 0, len(resp.AdditionalDetails.TopologiesList))
	for _, t := range resp.AdditionalDetails.TopologiesList {
		topologies = append(topologies, t.toModel())
	}

	return topologies, nil
}

func (c *Client) ReserveTopology(ctx context.Context, name string) (*model.ReservationResult, error) {
	var resp reservationResponse
	if err := c.session.Send(ctx, http.MethodGet, c.topologyActionPath(name, "reserve"), nil, &resp); err != nil {
		return nil, fmt.Errorf("could not reserve topology %s: %w", name, err)
	}

	return resp.toModel(), nil
}

func (c *Client) ReleaseTopology(ctx context.Context, name string) (*model.ReservationResult, error) {
	var resp reservationResponse
	if err := c.session.Send(ctx, http.MethodGet, c.topologyActionPath(name, "release"), nil, &resp); err != nil {
		return nil, fmt.Errorf("could not release topology %s: %w", name, err)
	}

	return resp.toModel(), nil
}

func (c *Client) ListTopologyDevices(ctx context.Context, name string) ([]model.TopologyDevice, error) {
	path := "/tokalabs/api/topologies?" + url.Values{
		"name":          {exactName(name)},
		"fieldsToFetch": {"devices"},
	}.Encode()

	var resp topologiesResponse
	if err := c.session.Send(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("could not list topology %s devices: %w", name, err)
	}

	list := resp.AdditionalDetails.TopologiesList
	if len(list) == 0 {
		return nil, fmt.Errorf("topology %s: %w", name, model.ErrNotFound)
	}

	// Prefer the exact match, the controller may return related topologies.
	selected := list[0]
	for _, t := range list {
		if t.Name == name {
			selected = t
			break
		}
	}

	return selected.toModel().Devices, nil
}

func (c *Client) GetDeviceDetails(ctx context.Context, hostname string) ([]map[string]any, error) {
	path := "/tokalabs/api/devices?" + url.Values{"hostname": {exactName(hostname)}}.Encode()

	var resp devicesResponse
	if err := c.session.Send(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("could not get device %s details: %w", hostname, err)
	}

	return resp.AdditionalDetails.DevicesList, nil
}

func (c *Client) GetKeywords(ctx context.Context, sandbox, executionProfile string) (*model.KeywordSet, error) {
	path := "/tokalabs/api/keywords/sandbox/" + url.PathEscape(sandbox)
	if executionProfile != "" && executionProfile != model.DefaultExecutionProfile {
		path += "?" + url.Values{"executionProfile": {executionProfile}}.Encode()
	}

	var resp keywordsResponse
	if err := c.session.Send(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("could not get sandbox %s keywords: %w", sandbox, err)
	}

	return resp.toModel()
}

func (c *Client) SetKeywords(ctx context.Context, sandbox string, keywords []model.Keyword) error {
	req := keywordsRequest{KeywordsList: make([]keywordJSON, 0, len(keywords))}
	for _, k := range keywords {
		req.KeywordsList = append(req.KeywordsList, keywordJSON{
			Name:             k.Name,
			Value:            k.Value,
			DataType:         k.DataType,
			ExecutionProfile: k.ExecutionProfile,
		})
	}

	path := "/tokalabs/api/keywords/sandbox/" + url.PathEscape(sandbox)
	if err := c.session.Send(ctx, http.MethodPost, path, req, nil); err != nil {
		return fmt.Errorf("could not set sandbox %s keywords: %w", sandbox, err)
	}

	return nil
}

func (c *Client) RunSuite(ctx context.Context, sandbox, suite string) (string, error) {
	var resp statusResponse
	if err := c.session.Send(ctx, http.MethodGet, c.suiteActionPath(sandbox, suite, "run"), nil, &resp); err != nil {
		return "", fmt.Errorf("could not run suite %s: %w", suite, err)
	}

	return resp.Status, nil
}

func (c *Client) SuiteStatus(ctx context.Context, sandbox, suite string) (model.SuiteStatus, error) {
	var resp suiteStatusResponse
	if err := c.session.Send(ctx, http.MethodGet, c.suiteActionPath(sandbox, suite, "status"), nil, &resp); err != nil {
		return "", fmt.Errorf("could not get suite %s status: %w", suite, err)
	}

	return model.SuiteStatus(resp.TestSuiteStatus), nil
}

func (c *Client) LatestResults(ctx context.Context, sandbox string) (*model.TestResult, error) {
	path := fmt.Sprintf("/testrunner/%s/TestControl.php?task=2", url.PathEscape(sandbox))

	var resp resultsResponse
	if err := c.session.Send(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("could not get sandbox %s results: %w", sandbox, err)
	}

	return resp.toModel(), nil
}

func (c *Client) topologyActionPath(name, action string) string {
	return fmt.Sprintf("/tokalabs/api/topology/%s/%s/user=%s/token=%s",
		url.PathEscape(name), action, url.PathEscape(c.session.User()), url.PathEscape(c.session.WebToken()))
}

func (c *Client) suiteActionPath(sandbox, suite, action string) string {
	return fmt.Sprintf("/tokalabs/api/topology/%s/%s/suite/suite=%s/user=%s/token=%s",
		url.PathEscape(sandbox), action, url.PathEscape(suite), url.PathEscape(c.session.User()), url.PathEscape(c.session.WebToken()))
}

// exactName returns the controller name filter (a regex) matching only name.
func exactName(name string) string {
	return "^" + regexp.QuoteMeta(name) + "$"
}
