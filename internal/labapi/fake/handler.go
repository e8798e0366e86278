package fake

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/slok/tokactl/internal/model"
)

// Handler returns the HTTP handler that serves the controller REST interface.
func (c *Controller) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/tokalabs/api/login", c.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(c.authenticated)

		r.Get("/tokalabs/api/topologies", c.handleTopologies)
		r.Get("/tokalabs/api/devices", c.handleDevices)
		r.Get("/tokalabs/api/topology/{name}/reserve/user={user}/token={token}", c.handleReserve)
		r.Get("/tokalabs/api/topology/{name}/release/user={user}/token={token}", c.handleRelease)
		r.Get("/tokalabs/api/topology/{name}/run/suite/suite={suite}/user={user}/token={token}", c.handleRunSuite)
		r.Get("/tokalabs/api/topology/{name}/status/suite/suite={suite}/user={user}/token={token}", c.handleSuiteStatus)
		r.Get("/tokalabs/api/keywords/sandbox/{name}", c.handleGetKeywords)
		r.Post("/tokalabs/api/keywords/sandbox/{name}", c.handleSetKeywords)
		r.Get("/testrunner/{name}/TestControl.php", c.handleResults)
	})

	return r
}

func (c *Controller) authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !c.validToken(r.Header.Get("Authorization")) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"status": "Failure", "message": "invalid token"})
			return
		}

		// Path credentials must belong to the session.
		if user := chi.URLParam(r, "user"); user != "" {
			if r.Header.Get("Authorization") != user+"/"+chi.URLParam(r, "token") {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"status": "Failure", "message": "invalid user token"})
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (c *Controller) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "Failure", "message": err.Error()})
		return
	}

	token, err := c.Login(req.Username, req.Password)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"status": "Failure", "message": "Invalid credentials"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "Success",
		"message": "Login successful",
		"additionalDetails": map[string]any{
			"token": map[string]any{"token": token},
		},
	})
}

func (c *Controller) handleTopologies(w http.ResponseWriter, r *http.Request) {
	match, ok := nameMatcher(w, r.URL.Query().Get("name"))
	if !ok {
		return
	}

	list := []map[string]any{}
	for _, t := range c.listTopologies(match) {
		devices := make([]map[string]any, 0, len(t.Devices))
		for _, d := range t.Devices {
			devices = append(devices, map[string]any{"name": d.Name, "abstractId": d.AbstractID})
		}
		children := t.Children
		if children == nil {
			children = []string{}
		}

		list = append(list, map[string]any{
			"name":               t.Name,
			"type":               string(t.Type),
			"reservationDetails": map[string]any{"reservationStatus": string(t.Status)},
			"childTopologies":    children,
			"devices":            devices,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":            "Success",
		"message":           "Sandbox GET API success.",
		"additionalDetails": map[string]any{"topologiesList": list},
	})
}

func (c *Controller) handleDevices(w http.ResponseWriter, r *http.Request) {
	match, ok := nameMatcher(w, r.URL.Query().Get("hostname"))
	if !ok {
		return
	}

	list := c.deviceDetails(match)
	if list == nil {
		list = []map[string]any{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":            "Success",
		"message":           "Device GET API success.",
		"additionalDetails": map[string]any{"devicesList": list},
	})
}

func (c *Controller) handleReserve(w http.ResponseWriter, r *http.Request) {
	res, err := c.ReserveTopology(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       res.Status,
		"message":      res.Message,
		"TopologyName": res.TopologyName,
	})
}

func (c *Controller) handleRelease(w http.ResponseWriter, r *http.Request) {
	res, err := c.ReleaseTopology(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  res.Status,
		"message": res.Message,
	})
}

func (c *Controller) handleRunSuite(w http.ResponseWriter, r *http.Request) {
	status, err := c.RunSuite(r.Context(), chi.URLParam(r, "name"), chi.URLParam(r, "suite"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": status})
}

func (c *Controller) handleSuiteStatus(w http.ResponseWriter, r *http.Request) {
	status, err := c.SuiteStatus(r.Context(), chi.URLParam(r, "name"), chi.URLParam(r, "suite"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"TestSuiteStatus": string(status)})
}

func (c *Controller) handleGetKeywords(w http.ResponseWriter, r *http.Request) {
	set, err := c.GetKeywords(r.Context(), chi.URLParam(r, "name"), r.URL.Query().Get("executionProfile"))
	if err != nil {
		writeError(w, err)
		return
	}

	if set.Keywords == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":            "Success",
			"message":           set.Message,
			"additionalDetails": []any{},
		})
		return
	}

	list := make([]map[string]any, 0, len(set.Keywords))
	for _, kw := range set.Keywords {
		list = append(list, map[string]any{
			"name":             kw.Name,
			"value":            kw.Value,
			"dataType":         kw.DataType,
			"executionProfile": kw.ExecutionProfile,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":            "Success",
		"message":           set.Message,
		"additionalDetails": map[string]any{"keywordsList": list},
	})
}

func (c *Controller) handleSetKeywords(w http.ResponseWriter, r *http.Request) {
	var req struct {
		KeywordsList []struct {
			Name             string `json:"name"`
			Value            string `json:"value"`
			DataType         string `json:"dataType"`
			ExecutionProfile string `json:"executionProfile"`
		} `json:"keywordsList"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "Failure", "message": err.Error()})
		return
	}

	kws := make([]model.Keyword, 0, len(req.KeywordsList))
	for _, kw := range req.KeywordsList {
		kws = append(kws, model.Keyword(kw))
	}

	if err := c.SetKeywords(r.Context(), chi.URLParam(r, "name"), kws); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "Success", "message": "Keywords updated"})
}

func (c *Controller) handleResults(w http.ResponseWriter, r *http.Request) {
	res, err := c.LatestResults(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}

	// The test runner sends counters as strings.
	writeJSON(w, http.StatusOK, map[string]any{
		"testStatus":  res.TestStatus,
		"total":       strconv.Itoa(res.Total),
		"casesPassed": strconv.Itoa(res.CasesPassed),
		"casesFailed": strconv.Itoa(res.CasesFailed),
		"stepsPassed": strconv.Itoa(res.StepsPassed),
		"stepsFailed": strconv.Itoa(res.StepsFailed),
	})
}

func nameMatcher(w http.ResponseWriter, pattern string) (func(string) bool, bool) {
	if pattern == "" {
		return func(string) bool { return true }, true
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "Failure", "message": err.Error()})
		return nil, false
	}

	return re.MatchString, true
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	if errors.Is(err, model.ErrNotFound) {
		code = http.StatusNotFound
	}
	writeJSON(w, code, map[string]any{"status": "Failure", "message": err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
