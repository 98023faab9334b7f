package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ganot/committee/internal/apperror"
	"github.com/stretchr/testify/require"
)

func TestHTTPServer_Health(t *testing.T) {
	server := httptest.NewServer(NewServer(Services{}, &testResolver{}, Options{}))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPServer_MountsMetricsAndMCP(t *testing.T) {
	mounted := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	resolver := &testResolver{tokenToUser: map[string]string{"token": "user1"}}
	server := httptest.NewServer(NewServer(Services{}, resolver, Options{Metrics: mounted, MCP: mounted}))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	require.Equal(t, http.StatusTeapot, resp.StatusCode)

	resp, err = http.Post(server.URL+"/mcp", "application/json", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPost, server.URL+"/mcp", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer token")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusTeapot, resp.StatusCode)
}

func TestHTTPServer_ProtectedRoutesNeedToken(t *testing.T) {
	server := httptest.NewServer(NewServer(Services{}, &testResolver{}, Options{}))
	t.Cleanup(server.Close)

	for _, path := range []string{"/user", "/meeting/m1", "/meetingByMember", "/motion/mo1", "/voting/v1"} {
		resp, err := http.Get(server.URL + path)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestStatusFor(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, StatusFor(apperror.KindValidation))
	require.Equal(t, http.StatusBadRequest, StatusFor(apperror.KindConflict))
	require.Equal(t, http.StatusForbidden, StatusFor(apperror.KindAuthorization))
	require.Equal(t, http.StatusNotFound, StatusFor(apperror.KindNotFound))
	require.Equal(t, http.StatusInternalServerError, StatusFor(apperror.KindPersistence))
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   errorResponse
	}{
		{
			name:       "validation keeps fields",
			err:        apperror.Validation(apperror.FieldError{Field: "name", Message: "name is required"}),
			wantStatus: http.StatusBadRequest,
			wantBody: errorResponse{
				Kind:   apperror.KindValidation,
				Error:  "invalid input (name: name is required)",
				Fields: []apperror.FieldError{{Field: "name", Message: "name is required"}},
			},
		},
		{
			name:       "conflict keeps reason",
			err:        apperror.Conflict("meeting adjourned"),
			wantStatus: http.StatusBadRequest,
			wantBody:   errorResponse{Kind: apperror.KindConflict, Error: "meeting adjourned"},
		},
		{
			name:       "unclassified is hidden",
			err:        errors.New("database is locked"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   errorResponse{Kind: apperror.KindPersistence, Error: "internal error"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil, tt.err)

			require.Equal(t, tt.wantStatus, rec.Code)
			var body errorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			require.Equal(t, tt.wantBody, body)
		})
	}
}
