package interpolate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-fatigue/fatigue/internal/geom"
	"github.com/go-fatigue/fatigue/internal/ndinterp"
	"github.com/go-fatigue/fatigue/internal/registry"
)

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/interpolate", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestHandler(t *testing.T) {
	reg := registry.New()
	_, _, err := reg.Calibrate("line", ndinterp.MethodLinear, 0, []registry.Sample{
		{Point: geom.NewPoint(0), Value: 0},
		{Point: geom.NewPoint(10), Value: 20},
	})
	require.NoError(t, err)
	_, _, err = reg.Calibrate("single", ndinterp.MethodLinear, 0, []registry.Sample{
		{Point: geom.NewPoint(1), Value: 1},
	})
	require.NoError(t, err)

	h, err := NewHandler(&Config{RequestTimeout: time.Second, MaxTargets: 4}, reg)
	require.NoError(t, err)

	w := post(h, `{"dataset":"line","targets":[[0],[10],[15]]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "LINEAR", resp.Method)
	require.Len(t, resp.Values, 3)
	assert.InDelta(t, 0.0, resp.Values[0], 1e-9)
	assert.InDelta(t, 20.0, resp.Values[1], 1e-9)
	assert.InDelta(t, 30.0, resp.Values[2], 1e-9)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "unknown_dataset", body: `{"dataset":"nope","targets":[[1]]}`, status: http.StatusNotFound},
		{name: "insufficient_points", body: `{"dataset":"single","targets":[[1]]}`, status: http.StatusUnprocessableEntity},
		{name: "dimension_mismatch", body: `{"dataset":"line","targets":[[1,2]]}`, status: http.StatusUnprocessableEntity},
		{name: "too_many_targets", body: `{"dataset":"line","targets":[[1],[2],[3],[4],[5]]}`, status: http.StatusBadRequest},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := post(h, test.body)
			assert.Equal(t, test.status, w.Code, w.Body.String())
		})
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h, err := NewHandler(&Config{RequestTimeout: time.Second, MaxTargets: 1}, registry.New())
	require.NoError(t, err)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/interpolate", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
