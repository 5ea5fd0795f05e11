package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-codemap/pkg/config"
)

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	s := NewServer(config.Default(), nil, nil)
	t.Cleanup(s.Close)
	return s, s.Handler()
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLayoutEndpoint(t *testing.T) {
	_, h := newTestServer(t)

	body := `{
		"hits": [
			{"symbol_name": "foo", "kind": "function", "file_path": "a.ts", "start_line": 10,
			 "edge_path": ["a.ts:foo", "b.ts:bar"]}
		],
		"seed": 42
	}`
	rec := postJSON(t, h, "/layout", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp LayoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, 120, resp.Ticks)
	assert.NotEmpty(t, resp.RunID)

	require.Len(t, resp.Nodes, 2)
	require.Len(t, resp.Edges, 1)
	assert.Equal(t, "a.ts:foo", resp.Edges[0].SourceID)
	assert.Equal(t, "b.ts:bar", resp.Edges[0].TargetID)

	cfg := config.Default()
	for _, n := range resp.Nodes {
		assert.GreaterOrEqual(t, n.X, cfg.Canvas.Margin, "node %s x", n.ID)
		assert.LessOrEqual(t, n.X, cfg.Canvas.Width-cfg.Canvas.Margin, "node %s x", n.ID)
		assert.GreaterOrEqual(t, n.Y, cfg.Canvas.Margin, "node %s y", n.ID)
		assert.LessOrEqual(t, n.Y, cfg.Canvas.Height-cfg.Canvas.Margin, "node %s y", n.ID)
	}
}

func TestLayoutEmptyHits(t *testing.T) {
	_, h := newTestServer(t)

	rec := postJSON(t, h, "/layout", `{"hits": []}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LayoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.Empty(t, resp.Nodes)
	assert.Empty(t, resp.Edges)
}

func TestLayoutIsDeterministicForFixedSeed(t *testing.T) {
	_, h := newTestServer(t)

	body := `{
		"hits": [
			{"symbol_name": "foo", "kind": "function", "file_path": "a.ts",
			 "edge_path": ["a.ts:foo", "b.ts:bar", "c.ts:baz"]}
		],
		"seed": 7
	}`

	first := postJSON(t, h, "/layout", body)
	second := postJSON(t, h, "/layout", body)
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)

	var a, b LayoutResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))

	// Run ids differ, positions do not.
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, a.Nodes, b.Nodes)
	assert.Equal(t, a.Edges, b.Edges)
}

func TestLayoutRejectsBadRequests(t *testing.T) {
	_, h := newTestServer(t)

	cases := map[string]string{
		"invalid JSON":     `{not json`,
		"bad canvas":       `{"hits": [], "canvas": {"width": 100, "height": 100, "margin": 60}}`,
		"damping too high": `{"hits": [], "simulation": {"damping": 1.5}}`,
	}
	for name, body := range cases {
		rec := postJSON(t, h, "/layout", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), name)
		assert.NotEmpty(t, resp.Error, name)
	}
}

func TestLayoutSimulationOverrides(t *testing.T) {
	_, h := newTestServer(t)

	body := `{
		"hits": [{"symbol_name": "foo", "kind": "function", "file_path": "a.ts"}],
		"simulation": {"max_ticks": 10},
		"seed": 1
	}`
	rec := postJSON(t, h, "/layout", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LayoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.Ticks)
}

func TestLayoutStream(t *testing.T) {
	_, h := newTestServer(t)

	body := `{
		"hits": [
			{"symbol_name": "foo", "kind": "function", "file_path": "a.ts",
			 "edge_path": ["a.ts:foo", "b.ts:bar"]}
		],
		"simulation": {"max_ticks": 5},
		"seed": 3
	}`
	rec := postJSON(t, h, "/layout/stream", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	out := rec.Body.String()
	assert.Equal(t, 5, strings.Count(out, "event: snapshot"), out)
	require.Equal(t, 1, strings.Count(out, "event: done"), out)
	assert.Contains(t, out, `"status":"completed"`)
	assert.Contains(t, out, `"ticks":5`)
}

func TestHealthEndpoint(t *testing.T) {
	_, h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.NotEmpty(t, resp.Version)
}

func TestMetricsEndpoint(t *testing.T) {
	_, h := newTestServer(t)

	// Generate some traffic first so counters exist.
	postJSON(t, h, "/layout", `{"hits": [], "seed": 1}`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "codemap_layout_runs_total")
	assert.Contains(t, rec.Body.String(), "codemap_http_requests_total")
}

func TestCORSPreflight(t *testing.T) {
	_, h := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/layout", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestOversizedBodyRejected(t *testing.T) {
	_, h := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/layout", bytes.NewBuffer(make([]byte, 16)))
	req.ContentLength = maxRequestBody + 1
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
