package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-fatigue/fatigue/internal/job"
)

func TestRun_Local(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), "../../internal/job/testdata/job.toml", "local", true, &stdout, &stderr)
	require.NoError(t, err)

	var res job.Result
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &res))
	assert.Equal(t, "bracket-calibration", res.Name)
	require.Len(t, res.Interpolations, 2)
	assert.InDelta(t, 12.0, res.Interpolations[0].Values[0], 1e-5)
	assert.Contains(t, stderr.String(), "bracket-calibration")
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(context.Background(), "", "local", false, &out, &out))
	assert.Error(t, run(context.Background(), "../../internal/job/testdata/job.yaml", "orbit", false, &out, &out))
	assert.Error(t, run(context.Background(), "missing.yaml", "local", false, &out, &out))
}
