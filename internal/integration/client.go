// Package integration is the HTTP client of fatigue-srv.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/go-fatigue/fatigue/internal/httputil"
	"github.com/go-fatigue/fatigue/internal/job"
	"github.com/go-fatigue/fatigue/internal/logging"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

// errBodyLimit caps how much of an error response is kept.
const errBodyLimit = 4096

const releaseTimeout = 10 * time.Second

type prefixRoundTripper struct {
	addr string
	rt   http.RoundTripper
}

func (p *prefixRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	u := r.URL
	if u.Scheme == "" {
		u.Scheme = "http"
	}
	if u.Host == "" {
		u.Host = p.addr
		r.Host = p.addr
	}

	return p.rt.RoundTrip(r)
}

func NewClient(cfg *Config) (*Client, error) {
	c, err := httputil.NewClientFromConfig(httputil.HTTPClientConfig{BearerToken: cfg.Token}, cfg.Timeout, false)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}
	c.Transport = &prefixRoundTripper{addr: cfg.Addr, rt: c.Transport}
	return &Client{client: c}, nil
}

type Client struct {
	client *http.Client
}

func (c *Client) Calibrate(ctx context.Context, r CalibrateRequest) (*CalibrateResponse, error) {
	var resp CalibrateResponse
	if err := c.post(ctx, "/calibrate", r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Interpolate(ctx context.Context, r InterpolateRequest) (*InterpolateResponse, error) {
	var resp InterpolateResponse
	if err := c.post(ctx, "/interpolate", r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Rainflow(ctx context.Context, s job.Series) (*job.RainflowResult, error) {
	var resp job.RainflowResult
	if err := c.post(ctx, "/rainflow", s, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Release drops dataset id on the server.
func (c *Client) Release(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, "/datasets?id="+url.QueryEscape(id), nil)
	if err != nil {
		return fmt.Errorf("create new request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
		return fmt.Errorf("%w: release %s: %s", ErrUnexpectedStatus, resp.Status, bytes.TrimSpace(body))
	}
	return nil
}

func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return fmt.Errorf("create new request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health %s", ErrUnexpectedStatus, resp.Status)
	}
	return nil
}

// Run executes j on the server. Each interpolation calibrates a fresh
// dataset, evaluates its targets and releases the dataset again. Each series
// is counted remotely.
func (c *Client) Run(ctx context.Context, j *job.Job, parallelism int) (*job.Result, error) {
	if err := j.Validate(); err != nil {
		return nil, err
	}
	if parallelism < 1 {
		parallelism = 1
	}
	logger := logging.FromContext(ctx)

	res := &job.Result{
		Name:           j.Name,
		Interpolations: make([]job.InterpolationResult, len(j.Interpolations)),
		Rainflow:       make([]job.RainflowResult, len(j.Rainflow)),
	}
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(parallelism)
	for i := range j.Interpolations {
		i := i
		grp.Go(func() error {
			task := j.Interpolations[i]
			out, err := c.interpolate(ctx, task)
			if err != nil {
				return fmt.Errorf("interpolation %q: %w", task.Name, err)
			}
			res.Interpolations[i] = out
			logger.Debugf("remote interpolation %q evaluated %d targets", task.Name, len(out.Values))
			return nil
		})
	}
	for i := range j.Rainflow {
		i := i
		grp.Go(func() error {
			out, err := c.Rainflow(ctx, j.Rainflow[i])
			if err != nil {
				return fmt.Errorf("rainflow %q: %w", j.Rainflow[i].Name, err)
			}
			res.Rainflow[i] = *out
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) interpolate(ctx context.Context, task job.Interpolation) (job.InterpolationResult, error) {
	points := make([]Point, len(task.Points))
	for i, p := range task.Points {
		points[i] = Point{Coordinates: p.Coordinates, Value: p.Value, Source: p.Source}
	}
	cal, err := c.Calibrate(ctx, CalibrateRequest{Method: task.Method, Tolerance: task.Tolerance, Points: points})
	if err != nil {
		return job.InterpolationResult{}, err
	}
	defer func() {
		// the job context may already be cancelled by a failed sibling
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()
		if err := c.Release(rctx, cal.Dataset); err != nil {
			logging.FromContext(ctx).Warnf("release dataset %s: %v", cal.Dataset, err)
		}
	}()
	targets := task.Targets
	if targets == nil {
		targets = [][]float64{}
	}
	out, err := c.Interpolate(ctx, InterpolateRequest{Dataset: cal.Dataset, Targets: targets})
	if err != nil {
		return job.InterpolationResult{}, err
	}
	return job.InterpolationResult{Name: task.Name, Method: out.Method, Values: out.Values}, nil
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("unable marshal %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("error with sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
		return fmt.Errorf("%w: %s %s: %s", ErrUnexpectedStatus, path, resp.Status, bytes.TrimSpace(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
