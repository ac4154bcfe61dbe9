package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/stats/view"
)

func TestRecord(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register())

	ctx := context.Background()
	Record(ctx, CountedCycles, "", 7)
	Record(ctx, CalibrationPoints, "LINEAR", 3)
	Since(ctx, "/rainflow", time.Now().Add(-3*time.Millisecond))

	rows, err := view.RetrieveData("counted_cycles")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	sum, ok := rows[0].Data.(*view.SumData)
	require.True(t, ok)
	assert.GreaterOrEqual(t, sum.Value, 7.0)

	rows, err = view.RetrieveData("request_latency")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, "/rainflow", rows[0].Tags[0].Value)
}

func TestNewExporter(t *testing.T) {
	h, err := NewExporter(&Config{Namespace: "fatigue"})
	require.NoError(t, err)

	Record(context.Background(), InterpolatedTargets, "NEAREST", 5)

	srv := httptest.NewServer(h)
	defer srv.Close()

	// views are flushed by the opencensus worker asynchronously
	assert.Eventually(t, func() bool {
		resp, err := http.Get(srv.URL)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && strings.Contains(string(body), "fatigue_interpolated_targets")
	}, 2*time.Second, 50*time.Millisecond)
}
