package calibrate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-fatigue/fatigue/internal/httputil"
	"github.com/go-fatigue/fatigue/internal/registry"
)

func newTestHandler(t *testing.T, reg *registry.Registry) http.Handler {
	t.Helper()
	h, err := NewHandler(&Config{RequestTimeout: time.Second, MaxPoints: 3}, reg)
	require.NoError(t, err)
	return h
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/calibrate", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestHandler(t *testing.T) {
	reg := registry.New()
	h := newTestHandler(t, reg)

	w := post(h, `{"method":"linear","points":[{"coordinates":[0],"value":0},{"coordinates":[1],"value":2}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Dataset)
	assert.Equal(t, 2, resp.Len)

	// a tolerance-equal point overwrites
	w = post(h, `{"dataset":"`+resp.Dataset+`","method":"LINEAR","points":[{"coordinates":[1.000001],"value":3}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Len)
}

func TestHandler_Errors(t *testing.T) {
	reg := registry.New()
	_, _, err := reg.Calibrate("nearest-set", "NEAREST", 0, nil)
	require.NoError(t, err)
	h := newTestHandler(t, reg)

	tests := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{name: "unknown_method", body: `{"method":"cubic","points":[]}`, status: http.StatusBadRequest, msg: `unknown interpolation method: "cubic"`},
		{name: "quoted_method", body: `{"method":"fo\"o","points":[]}`, status: http.StatusBadRequest, msg: `unknown interpolation method: "fo\"o"`},
		{name: "negative_tolerance", body: `{"method":"linear","tolerance":-1,"points":[]}`, status: http.StatusBadRequest, msg: "tolerance must not be negative"},
		{name: "too_many_points", body: `{"method":"linear","points":[{},{},{},{}]}`, status: http.StatusBadRequest, msg: "too many points, max allowed len is 3"},
		{name: "method_conflict", body: `{"dataset":"nearest-set","method":"linear","points":[]}`, status: http.StatusConflict},
		{name: "malformed", body: `{"method":`, status: http.StatusBadRequest, msg: "malformed json"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := post(h, test.body)
			assert.Equal(t, test.status, w.Code, w.Body.String())

			var body httputil.ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
			assert.NotEmpty(t, body.Error)
			if test.msg != "" {
				assert.Equal(t, test.msg, body.Error)
			}
		})
	}
}

func TestReleaseHandler(t *testing.T) {
	reg := registry.New()
	_, _, err := reg.Calibrate("bracket-7", "NEAREST", 0, nil)
	require.NoError(t, err)
	h, err := NewReleaseHandler(&Config{RequestTimeout: time.Second}, reg)
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		target string
		status int
	}{
		{name: "get", method: http.MethodGet, target: "/datasets?id=bracket-7", status: http.StatusMethodNotAllowed},
		{name: "no_id", method: http.MethodDelete, target: "/datasets", status: http.StatusBadRequest},
		{name: "released", method: http.MethodDelete, target: "/datasets?id=bracket-7", status: http.StatusNoContent},
		{name: "already_released", method: http.MethodDelete, target: "/datasets?id=bracket-7", status: http.StatusNotFound},
		{name: "unknown", method: http.MethodDelete, target: "/datasets?id=missing", status: http.StatusNotFound},
	}
	// cases run in order: the second delete sees the first one's effect
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(test.method, test.target, nil))
			assert.Equal(t, test.status, w.Code, w.Body.String())
			if test.status != http.StatusNoContent {
				var body httputil.ErrorBody
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
			}
		})
	}
	assert.Equal(t, 0, reg.Len())
}
