package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/geocoder89/eventmanager/internal/config"
	apphttp "github.com/geocoder89/eventmanager/internal/http"
	"github.com/geocoder89/eventmanager/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	apiPrefix = "/api/event-manager"
	publicURL = "http://api.test"
	linkBase  = publicURL + apiPrefix
)

func testConfig() config.Config {
	return config.Config{
		Env:               "test",
		PublicBaseURL:     publicURL,
		APIPrefix:         apiPrefix,
		ServiceName:       "event-manager-test",
		RateLimitRequests: 10000,
		RateLimitWindow:   time.Minute,
		MaxBodyBytes:      1 << 20,
	}
}

func newTestRouter(t *testing.T, stores apphttp.Stores) *gin.Engine {
	t.Helper()

	reg := prometheus.NewRegistry()

	return apphttp.NewRouter(discard(), testConfig(), apphttp.Deps{
		Stores:   stores,
		Prom:     observability.NewProm(reg),
		Gatherer: reg,
	})
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// function that runs a request against the router and returns the recorder
func doRequest(router http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(method, apiPrefix+path, reader)

	if method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

// follow issues a GET against an absolute href emitted in _links.
func follow(t *testing.T, router http.Handler, href string) *httptest.ResponseRecorder {
	t.Helper()

	if !strings.HasPrefix(href, linkBase) {
		t.Fatalf("href %q is not rooted at %q", href, linkBase)
	}

	return doRequest(router, http.MethodGet, strings.TrimPrefix(href, linkBase), "")
}

func mustReadJSON[T any](t *testing.T, w *httptest.ResponseRecorder, out *T) {
	t.Helper()
	err := json.Unmarshal(w.Body.Bytes(), out)
	if err != nil {
		t.Fatalf("failed to unmarshal json: %v, body=%s", err, w.Body.String())
	}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d, body=%s", want, w.Code, w.Body.String())
	}
}

type link struct {
	Href string `json:"href"`
	Type string `json:"type"`
}

type resource struct {
	ID      int             `json:"id"`
	Code    string          `json:"cod"`
	Name    string          `json:"nume"`
	Links   map[string]link `json:"_links"`
	Packet  *int            `json:"id_pachet"`
	EventID *int            `json:"id_event"`
}

type apiError struct {
	Error     string   `json:"error"`
	Details   []string `json:"details"`
	RequestID string   `json:"requestId"`
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, title, detail string) {
	t.Helper()
	expectStatus(t, w, status)

	var resp apiError
	mustReadJSON(t, w, &resp)

	if resp.Error != title {
		t.Fatalf("expected title %q, got %q", title, resp.Error)
	}
	if detail != "" && (len(resp.Details) != 1 || resp.Details[0] != detail) {
		t.Fatalf("expected details [%q], got %v", detail, resp.Details)
	}
	if resp.RequestID == "" {
		t.Fatalf("expected requestId in error body")
	}
}
