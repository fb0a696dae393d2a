package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/msomdec/lotes-map/internal/handler"
	"github.com/msomdec/lotes-map/internal/repository/memory"
	"github.com/msomdec/lotes-map/internal/service"
)

const testSessionSecret = "test-secret-for-handler-tests"

type testEnv struct {
	srv      *httptest.Server
	client   *http.Client
	plots    *service.PlotService
	auth     *service.AuthService
	sessions *service.SessionService
}

func newTestServices(t *testing.T) (*service.PlotService, *service.AuthService, *service.SessionService) {
	t.Helper()
	store := memory.New()
	return service.NewPlotService(store, nil),
		service.NewAuthService(store),
		service.NewSessionService(testSessionSecret)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithLimit(t, 100, 100)
}

func newTestEnvWithLimit(t *testing.T, rate, burst float64) *testEnv {
	t.Helper()
	plots, auth, sessions := newTestServices(t)

	srv := httptest.NewServer(newTestHandler(t, plots, auth, sessions, rate, burst))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}

	return &testEnv{
		srv:      srv,
		client:   &http.Client{Jar: jar, Timeout: 5 * time.Second},
		plots:    plots,
		auth:     auth,
		sessions: sessions,
	}
}

func newTestHandler(t *testing.T, plots *service.PlotService, auth *service.AuthService, sessions *service.SessionService, rate, burst float64) http.Handler {
	t.Helper()
	limiter := service.NewTokenBucket(rate, burst)
	t.Cleanup(limiter.Close)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, plots, auth, sessions, limiter, false)
	return handler.SecurityHeaders(mux)
}

// serve runs a single request through h in-process. Bodies too large to
// round-trip reliably over a socket go through here.
func serve(h http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// do sends a request with an optional JSON body and decodes the JSON
// response into out when out is non-nil.
func (e *testEnv) do(t *testing.T, method, path string, body any, out any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return resp
}

type userBody struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	User  *struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
}
