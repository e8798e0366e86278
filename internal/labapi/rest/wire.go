package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/slok/tokactl/internal/model"
)

// --- JSON wire types (private, for the controller REST API) ---

type topologiesResponse struct {
	Status            string `json:"status"`
	Message           string `json:"message"`
	AdditionalDetails struct {
		TopologiesList []topologyJSON `json:"topologiesList"`
	} `json:"additionalDetails"`
}

type topologyJSON struct {
	Name               string `json:"name"`
	Type               string `json:"type"`
	ReservationDetails struct {
		ReservationStatus string `json:"reservationStatus"`
	} `json:"reservationDetails"`
	ChildTopologies childTopologiesJSON  `json:"childTopologies"`
	Devices         []topologyDeviceJSON `json:"devices"`
}

type topologyDeviceJSON struct {
	Name       string `json:"name"`
	AbstractID string `json:"abstractId"`
}

func (t topologyJSON) toModel() model.Topology {
	devices := make([]model.TopologyDevice, 0, len(t.Devices))
	for _, d := range t.Devices {
		devices = append(devices, model.TopologyDevice{Name: d.Name, AbstractID: d.AbstractID})
	}

	return model.Topology{
		Name:     t.Name,
		Type:     model.TopologyType(t.Type),
		Status:   model.ReservationStatus(t.ReservationDetails.ReservationStatus),
		Children: []string(t.ChildTopologies),
		Devices:  devices,
	}
}

// childTopologiesJSON accepts child topologies as names or as objects with a name.
type childTopologiesJSON []string

func (c *childTopologiesJSON) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("child topologies must be a list: %w", err)
	}

	names := make([]string, 0, len(raw))
	for _, r := range raw {
		var name string
		if err := json.Unmarshal(r, &name); err == nil {
			names = append(names, name)
			continue
		}

		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(r, &obj); err != nil {
			return fmt.Errorf("invalid child topology %s: %w", string(r), err)
		}
		names = append(names, obj.Name)
	}

	*c = names
	return nil
}

type reservationResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	TopologyName string `json:"TopologyName"`
}

func (r reservationResponse) toModel() *model.ReservationResult {
	return &model.ReservationResult{
		Status:       r.Status,
		Message:      r.Message,
		TopologyName: r.TopologyName,
	}
}

type devicesResponse struct {
	AdditionalDetails struct {
		DevicesList []map[string]any `json:"devicesList"`
	} `json:"additionalDetails"`
}

type keywordJSON struct {
	Name             string `json:"name"`
	Value            any    `json:"value"`
	DataType         string `json:"dataType,omitempty"`
	ExecutionProfile string `json:"executionProfile,omitempty"`
}

type keywordsRequest struct {
	KeywordsList []keywordJSON `json:"keywordsList"`
}

type keywordsResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	// AdditionalDetails is an empty list when there are no keywords, and an
	// object with the keyword list otherwise.
	AdditionalDetails json.RawMessage `json:"additionalDetails"`
}

func (k keywordsResponse) toModel() (*model.KeywordSet, error) {
	set := &model.KeywordSet{Message: k.Message}

	details := bytes.TrimSpace(k.AdditionalDetails)
	if len(details) == 0 || details[0] != '{' {
		return set, nil
	}

	var obj struct {
		KeywordsList []keywordJSON `json:"keywordsList"`
	}
	if err := json.Unmarshal(details, &obj); err != nil {
		return nil, fmt.Errorf("could not decode keywords: %w", err)
	}

	set.Keywords = make([]model.Keyword, 0, len(obj.KeywordsList))
	for _, kw := range obj.KeywordsList {
		set.Keywords = append(set.Keywords, model.Keyword{
			Name:             kw.Name,
			Value:            stringValue(kw.Value),
			DataType:         kw.DataType,
			ExecutionProfile: kw.ExecutionProfile,
		})
	}

	return set, nil
}

func stringValue(v any) string {
	switch tv := v.(type) {
	case nil:
		return ""
	case string:
		return tv
	default:
		return fmt.Sprintf("%v", tv)
	}
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type suiteStatusResponse struct {
	TestSuiteStatus string `json:"TestSuiteStatus"`
}

type resultsResponse struct {
	TestStatus  string  `json:"testStatus"`
	Total       flexInt `json:"total"`
	CasesPassed flexInt `json:"casesPassed"`
	CasesFailed flexInt `json:"casesFailed"`
	StepsPassed flexInt `json:"stepsPassed"`
	StepsFailed flexInt `json:"stepsFailed"`
}

func (r resultsResponse) toModel() *model.TestResult {
	return &model.TestResult{
		TestStatus:  r.TestStatus,
		Total:       int(r.Total),
		CasesPassed: int(r.CasesPassed),
		CasesFailed: int(r.CasesFailed),
		StepsPassed: int(r.StepsPassed),
		StepsFailed: int(r.StepsFailed),
	}
}

// flexInt decodes counters sent either as JSON numbers or as numeric strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid counter %q: %w", s, err)
	}
	*f = flexInt(n)

	return nil
}
