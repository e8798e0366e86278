// Package fake is an in-memory lab controller. It implements labapi.API and
// can be served over HTTP with the controller REST interface, so it is useful
// for tests and for developing test harnesses without a real lab.
package fake

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/slok/tokactl/internal/conventions"
	"github.com/slok/tokactl/internal/log"
	"github.com/slok/tokactl/internal/model"
)

// Fixture is the initial state of the fake controller.
type Fixture struct {
	// Users are the accepted credentials (user -> password).
	Users      map[string]string           `yaml:"users"`
	Topologies []TopologyFixture           `yaml:"topologies"`
	Devices    []map[string]any            `yaml:"devices"`
	Keywords   map[string][]KeywordFixture `yaml:"keywords"`
	Results    map[string]ResultFixture    `yaml:"results"`
	// SuitePolls is the number of status queries a suite stays running.
	SuitePolls int `yaml:"suitePolls"`
}

// TopologyFixture is a topology of the fixture.
type TopologyFixture struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Reserved bool     `yaml:"reserved"`
	Devices  []string `yaml:"devices"`
}

// KeywordFixture is a keyword of the fixture.
type KeywordFixture struct {
	Name             string `yaml:"name"`
	Value            string `yaml:"value"`
	ExecutionProfile string `yaml:"executionProfile"`
}

// ResultFixture is the latest test result of a sandbox.
type ResultFixture struct {
	TestStatus  string `yaml:"testStatus"`
	Total       int    `yaml:"total"`
	CasesPassed int    `yaml:"casesPassed"`
	CasesFailed int    `yaml:"casesFailed"`
	StepsPassed int    `yaml:"stepsPassed"`
	StepsFailed int    `yaml:"stepsFailed"`
}

// LoadFixture decodes a YAML fixture.
func LoadFixture(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parsing YAML: %w", err)
	}
	return f, nil
}

// Call is an operation received by the fake controller.
type Call struct {
	Op     string
	Target string
}

// ControllerConfig is the configuration for the fake controller.
type ControllerConfig struct {
	Fixture Fixture
	Logger  log.Logger
}

func (c *ControllerConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "labapi.Fake"})

	if len(c.Fixture.Users) == 0 {
		c.Fixture.Users = map[string]string{"admin": "admin"}
	}

	seen := map[string]bool{}
	for _, t := range c.Fixture.Topologies {
		if t.Name == "" {
			return fmt.Errorf("topology name is required")
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicated topology %s", t.Name)
		}
		seen[t.Name] = true

		switch model.TopologyType(t.Type) {
		case "", model.TopologyTypeRegular, model.TopologyTypeBlueprint, model.TopologyTypeChild:
		default:
			return fmt.Errorf("topology %s has an invalid type %q", t.Name, t.Type)
		}
	}

	for _, d := range c.Fixture.Devices {
		if deviceHostname(d) == "" {
			return fmt.Errorf("device hostname is required")
		}
	}

	return nil
}

type topology struct {
	name     string
	typ      model.TopologyType
	reserved bool
	parent   string
	children []string
	devices  []string
	// releaseAfter auto releases the topology after this number of status queries.
	releaseAfter int
}

// Controller is the in-memory fake lab controller.
type Controller struct {
	mu         sync.Mutex
	users      map[string]string
	tokens     map[string]string
	topologies map[string]*topology
	order      []string
	devices    map[string]map[string]any
	keywords   map[string][]model.Keyword
	results    map[string]model.TestResult
	suites     map[string]int
	suitePolls int
	calls      []Call
	logger     log.Logger
}

// NewController returns a new fake controller.
func NewController(cfg ControllerConfig) (*Controller, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := &Controller{
		users:      maps.Clone(cfg.Fixture.Users),
		tokens:     map[string]string{},
		topologies: map[string]*topology{},
		devices:    map[string]map[string]any{},
		keywords:   map[string][]model.Keyword{},
		results:    map[string]model.TestResult{},
		suites:     map[string]int{},
		suitePolls: cfg.Fixture.SuitePolls,
		logger:     cfg.Logger,
	}

	for _, t := range cfg.Fixture.Topologies {
		typ := model.TopologyType(t.Type)
		if typ == "" {
			typ = model.TopologyTypeRegular
		}
		c.addTopology(&topology{
			name:     t.Name,
			typ:      typ,
			reserved: t.Reserved,
			devices:  slices.Clone(t.Devices),
		})
	}

	for _, d := range cfg.Fixture.Devices {
		c.devices[deviceHostname(d)] = d
	}

	for sandbox, kws := range cfg.Fixture.Keywords {
		for _, kw := range kws {
			c.keywords[sandbox] = append(c.keywords[sandbox], model.Keyword{
				Name:             kw.Name,
				Value:            kw.Value,
				DataType:         "String",
				ExecutionProfile: profileOrDefault(kw.ExecutionProfile),
			})
		}
	}

	for sandbox, r := range cfg.Fixture.Results {
		c.results[sandbox] = model.TestResult(r)
	}

	return c, nil
}

func (c *Controller) addTopology(t *topology) {
	c.topologies[t.name] = t
	c.order = append(c.order, t.name)
}

func (c *Controller) removeTopology(name string) {
	delete(c.topologies, name)
	c.order = slices.DeleteFunc(c.order, func(n string) bool { return n == name })
}

func (c *Controller) record(op, target string) {
	c.calls = append(c.calls, Call{Op: op, Target: target})
}

// Calls returns the operations received by the controller in order.
func (c *Controller) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.calls)
}

// HoldReservation marks a topology as reserved by someone else. When polls is
// positive the holder releases it after that number of reservation status queries.
func (c *Controller) HoldReservation(name string, polls int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.topologies[name]
	if !ok {
		return fmt.Errorf("topology %s: %w", name, model.ErrNotFound)
	}
	t.reserved = true
	t.releaseAfter = polls

	return nil
}

// Login validates the credentials and returns a new `<user>/<web token>` token.
func (c *Controller) Login(user, password string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.record("login", user)

	pass, ok := c.users[user]
	if !ok || pass != password {
		return "", fmt.Errorf("invalid credentials for %s: %w", user, model.ErrAuthentication)
	}

	token := fmt.Sprintf("%s/%s", user, uuid.NewString()[:8])
	c.tokens[token] = user

	return token, nil
}

func (c *Controller) validToken(token string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.tokens[token]
	return ok
}

func (c *Controller) ListTopologies(ctx context.Context, name string) ([]model.Topology, error) {
	return c.listTopologies(func(n string) bool { return name == "" || n == name }), nil
}

func (c *Controller) listTopologies(match func(name string) bool) []model.Topology {
	c.mu.Lock()
	defer c.mu.Unlock()

	var ts []model.Topology
	for _, name := range c.order {
		if !match(name) {
			continue
		}
		c.record("list-topologies", name)

		t := c.topologies[name]
		if t.reserved && t.releaseAfter > 0 {
			t.releaseAfter--
			if t.releaseAfter == 0 {
				c.logger.Debugf("Holder released topology %s", name)
				t.reserved = false
			}
		}
		ts = append(ts, c.topologyModel(t))
	}

	return ts
}

func (c *Controller) topologyModel(t *topology) model.Topology {
	status := model.ReservationStatusAvailable
	if t.reserved {
		status = model.ReservationStatusReserved
	}

	devices := make([]model.TopologyDevice, 0, len(t.devices))
	for i, d := range t.devices {
		devices = append(devices, model.TopologyDevice{Name: d, AbstractID: fmt.Sprintf("DUT%d", i+1)})
	}

	return model.Topology{
		Name:     t.name,
		Type:     t.typ,
		Status:   status,
		Children: slices.Clone(t.children),
		Devices:  devices,
	}
}

func (c *Controller) ReserveTopology(ctx context.Context, name string) (*model.ReservationResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.record("reserve", name)

	t, ok := c.topologies[name]
	if !ok {
		return nil, fmt.Errorf("topology %s: %w", name, model.ErrNotFound)
	}

	if t.typ == model.TopologyTypeBlueprint {
		child := &topology{
			name:     fmt.Sprintf("%s-%s", name, uuid.NewString()[:6]),
			typ:      model.TopologyTypeChild,
			reserved: true,
			parent:   name,
			devices:  slices.Clone(t.devices),
		}
		c.addTopology(child)
		t.children = append(t.children, child.name)
		c.logger.Debugf("Instantiated blueprint %s child %s", name, child.name)

		return &model.ReservationResult{Status: conventions.ReserveSuccessStatus, TopologyName: child.name}, nil
	}

	if t.reserved {
		return &model.ReservationResult{Status: "Sandbox is already reserved", TopologyName: name}, nil
	}
	t.reserved = true

	return &model.ReservationResult{Status: conventions.ReserveSuccessStatus, TopologyName: name}, nil
}

func (c *Controller) ReleaseTopology(ctx context.Context, name string) (*model.ReservationResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.record("release", name)

	t, ok := c.topologies[name]
	if !ok {
		return nil, fmt.Errorf("topology %s: %w", name, model.ErrNotFound)
	}

	switch t.typ {
	case model.TopologyTypeBlueprint:
		return &model.ReservationResult{
			Status:  "Sandbox Release Failed",
			Message: fmt.Sprintf("%s is a blueprint", name),
		}, nil
	case model.TopologyTypeChild:
		c.removeTopology(name)
		if parent, ok := c.topologies[t.parent]; ok {
			parent.children = slices.DeleteFunc(parent.children, func(n string) bool { return n == name })
		}
	default:
		t.reserved = false
		t.releaseAfter = 0
	}

	return &model.ReservationResult{Status: conventions.ReleaseSuccessStatus, TopologyName: name}, nil
}

func (c *Controller) ListTopologyDevices(ctx context.Context, name string) ([]model.TopologyDevice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.record("list-devices", name)

	t, ok := c.topologies[name]
	if !ok {
		return nil, fmt.Errorf("topology %s: %w", name, model.ErrNotFound)
	}

	return c.topologyModel(t).Devices, nil
}

func (c *Controller) GetDeviceDetails(ctx context.Context, hostname string) ([]map[string]any, error) {
	return c.deviceDetails(func(h string) bool { return h == hostname }), nil
}

func (c *Controller) deviceDetails(match func(hostname string) bool) []map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()

	var details []map[string]any
	for _, hostname := range slices.Sorted(maps.Keys(c.devices)) {
		if !match(hostname) {
			continue
		}
		c.record("get-device", hostname)

		d := maps.Clone(c.devices[hostname])
		status := model.ReservationStatusAvailable
		if c.deviceReserved(hostname) {
			status = model.ReservationStatusReserved
		}
		d["reservationDetails"] = map[string]any{"reservationStatus": string(status)}
		details = append(details, d)
	}

	return details
}

func (c *Controller) deviceReserved(hostname string) bool {
	for _, t := range c.topologies {
		if t.reserved && slices.Contains(t.devices, hostname) {
			return true
		}
	}
	return false
}

func (c *Controller) GetKeywords(ctx context.Context, sandbox, executionProfile string) (*model.KeywordSet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.record("get-keywords", sandbox)

	profile := profileOrDefault(executionProfile)
	var kws []model.Keyword
	for _, kw := range c.keywords[sandbox] {
		if kw.ExecutionProfile == profile {
			kws = append(kws, kw)
		}
	}

	if len(kws) == 0 {
		return &model.KeywordSet{
			Message: fmt.Sprintf("No keywords found for sandbox %s and execution profile %s", sandbox, profile),
		}, nil
	}

	return &model.KeywordSet{Keywords: kws, Message: "Keywords GET API success."}, nil
}

func (c *Controller) SetKeywords(ctx context.Context, sandbox string, keywords []model.Keyword) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.record("set-keywords", sandbox)

	if _, ok := c.topologies[sandbox]; !ok {
		return fmt.Errorf("topology %s: %w", sandbox, model.ErrNotFound)
	}

	for _, kw := range keywords {
		kw.ExecutionProfile = profileOrDefault(kw.ExecutionProfile)
		current := c.keywords[sandbox]
		idx := slices.IndexFunc(current, func(k model.Keyword) bool {
			return k.Name == kw.Name && k.ExecutionProfile == kw.ExecutionProfile
		})
		if idx >= 0 {
			current[idx] = kw
			continue
		}
		c.keywords[sandbox] = append(current, kw)
	}

	return nil
}

func (c *Controller) RunSuite(ctx context.Context, sandbox, suite string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.record("run-suite", sandbox+"/"+suite)

	if _, ok := c.topologies[sandbox]; !ok {
		return "", fmt.Errorf("topology %s: %w", sandbox, model.ErrNotFound)
	}
	c.suites[sandbox+"/"+suite] = c.suitePolls

	return conventions.SuiteStartedStatus, nil
}

func (c *Controller) SuiteStatus(ctx context.Context, sandbox, suite string) (model.SuiteStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := sandbox + "/" + suite
	c.record("suite-status", key)

	remaining, ok := c.suites[key]
	if !ok {
		return "", fmt.Errorf("suite %s: %w", key, model.ErrNotFound)
	}
	if remaining > 0 {
		c.suites[key] = remaining - 1
		return model.SuiteStatusRunning, nil
	}

	return model.SuiteStatusStopped, nil
}

func (c *Controller) LatestResults(ctx context.Context, sandbox string) (*model.TestResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.record("results", sandbox)

	r, ok := c.results[sandbox]
	if !ok {
		return nil, fmt.Errorf("results for %s: %w", sandbox, model.ErrNotFound)
	}

	return &r, nil
}

func deviceHostname(d map[string]any) string {
	for _, key := range []string{"hostname", "name"} {
		if v, ok := d[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func profileOrDefault(profile string) string {
	if profile == "" {
		return model.DefaultExecutionProfile
	}
	return profile
}
