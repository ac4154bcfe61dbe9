package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		contentType string
		body        string
		status      int
		ok          bool
	}{
		{name: "ok", method: http.MethodPost, contentType: "application/json", body: `{"name":"a","values":[1,2]}`, ok: true},
		{name: "charset", method: http.MethodPost, contentType: "application/json; charset=utf-8", body: `{"name":"a"}`, ok: true},
		{name: "get", method: http.MethodGet, contentType: "application/json", status: http.StatusMethodNotAllowed},
		{name: "text", method: http.MethodPost, contentType: "text/plain", body: `{}`, status: http.StatusUnsupportedMediaType},
		{name: "syntax", method: http.MethodPost, contentType: "application/json", body: `{"name":}`, status: http.StatusBadRequest},
		{name: "type", method: http.MethodPost, contentType: "application/json", body: `{"values":"x"}`, status: http.StatusBadRequest},
		{name: "unknown", method: http.MethodPost, contentType: "application/json", body: `{"other":1}`, status: http.StatusBadRequest},
		{name: "empty", method: http.MethodPost, contentType: "application/json", status: http.StatusBadRequest},
		{name: "too_large", method: http.MethodPost, contentType: "application/json", body: `{"name":"` + strings.Repeat("x", 128) + `"}`, status: http.StatusRequestEntityTooLarge},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := httptest.NewRequest(test.method, "/", strings.NewReader(test.body))
			r.Header.Set("Content-Type", test.contentType)
			w := httptest.NewRecorder()

			var p payload
			ok := DecodeJSON(context.Background(), w, r, 64, &p)
			assert.Equal(t, test.ok, ok)
			if !test.ok {
				assert.Equal(t, test.status, w.Code)
			}
		})
	}
}

func TestRespJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RespJSON(context.Background(), w, payload{Name: "a", Values: []float64{1.5}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"name":"a","values":[1.5]}`, w.Body.String())
}

func TestRespError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		resp   func(ctx context.Context, w http.ResponseWriter)
		want   string
	}{
		{
			name:   "quoted_error",
			status: http.StatusBadRequest,
			resp: func(ctx context.Context, w http.ResponseWriter) {
				RespBadRequest(ctx, w, "%v", errors.New(`unknown method "foo"`))
			},
			want: `unknown method "foo"`,
		},
		{
			name:   "control_chars",
			status: http.StatusConflict,
			resp: func(ctx context.Context, w http.ResponseWriter) {
				RespError(ctx, w, http.StatusConflict, "line\nbreak\t\\%s", "x")
			},
			want: "line\nbreak\t\\x",
		},
		{
			name:   "internal",
			status: http.StatusInternalServerError,
			resp: func(ctx context.Context, w http.ResponseWriter) {
				RespInternalError(ctx, w, "secret %q", "details")
			},
			want: "internal error",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			test.resp(context.Background(), w)

			assert.Equal(t, test.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			var body ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
			assert.Equal(t, test.want, body.Error)
		})
	}
}

func TestBearerRoundTrip(t *testing.T) {
	var seen string
	h := RequireBearer("s3cret", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	srv := httptest.NewServer(h)
	defer srv.Close()

	client, err := NewClientFromConfig(HTTPClientConfig{BearerToken: "s3cret"}, time.Second, true)
	require.NoError(t, err)
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "Bearer s3cret", seen)

	resp, err = http.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHTTPClientConfig_Validate(t *testing.T) {
	cfg := HTTPClientConfig{BearerToken: "t", BasicAuth: &BasicAuth{Username: "u"}}
	assert.ErrorIs(t, cfg.Validate(), ErrAmbiguousAuth)
	_, err := NewClientFromConfig(cfg, 0, false)
	assert.ErrorIs(t, err, ErrAmbiguousAuth)

	assert.NoError(t, (&HTTPClientConfig{BearerToken: "t"}).Validate())
}
