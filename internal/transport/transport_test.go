package transport_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tokactl/internal/log"
	"github.com/slok/tokactl/internal/model"
	"github.com/slok/tokactl/internal/transport"
)

func newLoginHandler(t *testing.T, token string, apiHandler http.HandlerFunc) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tokalabs/api/login" {
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["username"] != "admin" || body["password"] != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"status":"Failure","message":"invalid credentials"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status":            "Success",
				"additionalDetails": map[string]any{"token": map[string]any{"token": token}},
			})
			return
		}
		apiHandler(w, r)
	})
}

func TestAuthenticate(t *testing.T) {
	tests := map[string]struct {
		token       string
		password    string
		stripScheme bool
		expErr      error
		expToken    string
		expWebToken string
	}{
		"A correct login should return the session tokens.": {
			token:       "admin/NPT0PXsm6KNl4RQe",
			password:    "secret",
			expToken:    "admin/NPT0PXsm6KNl4RQe",
			expWebToken: "NPT0PXsm6KNl4RQe",
		},
		"An endpoint without scheme should use https.": {
			token:       "admin/NPT0PXsm6KNl4RQe",
			password:    "secret",
			stripScheme: true,
			expToken:    "admin/NPT0PXsm6KNl4RQe",
			expWebToken: "NPT0PXsm6KNl4RQe",
		},
		"Wrong credentials should fail with an authentication error.": {
			token:    "admin/NPT0PXsm6KNl4RQe",
			password: "wrong",
			expErr:   model.ErrAuthentication,
		},
		"A login response without token should fail with an authentication error.": {
			token:    "",
			password: "secret",
			expErr:   model.ErrAuthentication,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			srv := httptest.NewTLSServer(newLoginHandler(t, test.token, http.NotFound))
			defer srv.Close()

			endpoint := srv.URL
			if test.stripScheme {
				endpoint = strings.TrimPrefix(endpoint, "https://")
			}

			s, err := transport.Authenticate(context.Background(), transport.SessionConfig{
				Endpoint:           endpoint,
				User:               "admin",
				Password:           test.password,
				InsecureSkipVerify: true,
				Logger:             log.Noop,
			})

			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
				return
			}
			require.NoError(err)
			assert.Equal(test.expToken, s.Token())
			assert.Equal(test.expWebToken, s.WebToken())
			assert.Equal("admin", s.User())
			assert.Equal(srv.URL, s.Endpoint())
		})
	}
}

func TestAuthenticateVerifiesCertificatesWhenRequested(t *testing.T) {
	srv := httptest.NewTLSServer(newLoginHandler(t, "admin/tk", http.NotFound))
	defer srv.Close()

	_, err := transport.Authenticate(context.Background(), transport.SessionConfig{
		Endpoint:           srv.URL,
		User:               "admin",
		Password:           "secret",
		InsecureSkipVerify: false,
	})
	require.Error(t, err)

	var apiErr *model.APIError
	assert.False(t, errors.As(err, &apiErr), "certificate failures are transport errors, not API errors")
}

func TestAuthenticateInvalidConfig(t *testing.T) {
	tests := map[string]struct {
		cfg transport.SessionConfig
	}{
		"Missing endpoint should fail.": {cfg: transport.SessionConfig{User: "admin"}},
		"Missing user should fail.":     {cfg: transport.SessionConfig{Endpoint: "10.0.0.1"}},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := transport.Authenticate(context.Background(), test.cfg)
			assert.Error(t, err)
		})
	}
}

func TestSessionSend(t *testing.T) {
	tests := map[string]struct {
		handler    http.HandlerFunc
		body       any
		expErr     bool
		expAPIErr  *model.APIError
		expPayload map[string]any
	}{
		"A 2xx response should be decoded and carry the authorization header.": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Authorization") != "admin/tk" || r.Header.Get("X-Request-ID") == "" {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				_, _ = w.Write([]byte(`{"status":"Success","path":"` + r.URL.Path + `"}`))
			},
			expPayload: map[string]any{"status": "Success", "path": "/tokalabs/api/topologies"},
		},
		"A request body should be sent as JSON.": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				var in map[string]any
				_ = json.NewDecoder(r.Body).Decode(&in)
				_ = json.NewEncoder(w).Encode(map[string]any{"echo": in["name"]})
			},
			body:       map[string]any{"name": "kw"},
			expPayload: map[string]any{"echo": "kw"},
		},
		"A non 2xx response should return an API error with the status and body.": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"status":"Failure"}`))
			},
			expErr:    true,
			expAPIErr: &model.APIError{StatusCode: 500, Body: `{"status":"Failure"}`},
		},
		"An invalid JSON response should fail.": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{not-json`))
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			srv := httptest.NewTLSServer(newLoginHandler(t, "admin/tk", test.handler))
			defer srv.Close()

			s, err := transport.Authenticate(context.Background(), transport.SessionConfig{
				Endpoint:           srv.URL,
				User:               "admin",
				Password:           "secret",
				InsecureSkipVerify: true,
			})
			require.NoError(err)

			var out map[string]any
			err = s.Send(context.Background(), http.MethodGet, "/tokalabs/api/topologies", test.body, &out)

			if test.expErr {
				require.Error(err)
				if test.expAPIErr != nil {
					var apiErr *model.APIError
					require.True(errors.As(err, &apiErr))
					assert.Equal(test.expAPIErr, apiErr)
				}
				return
			}
			require.NoError(err)
			assert.Equal(test.expPayload, out)
		})
	}
}
