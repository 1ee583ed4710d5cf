package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	cfgstore "github.com/focusguard/core/config/store"
	"github.com/focusguard/core/encoding/json"
	"github.com/focusguard/core/http/mock"
	mockpsutil "github.com/focusguard/core/internal/mock/psutil"
	"github.com/focusguard/core/prometheus"
	timesrc "github.com/focusguard/core/time"

	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestNewServerRequiresEngine(t *testing.T) {
	_, err := NewServer(Config{Inspector: mockpsutil.New()})
	require.Error(t, err)
}

func TestServerRoutes(t *testing.T) {
	inspector := mockpsutil.New("game.exe")

	engine, _, err := mock.DummyEngine(inspector, timesrc.NewManualSource(time.Now()))
	require.NoError(t, err)

	metrics := prometheus.New()
	require.NoError(t, metrics.Register(prometheus.NewSessionCollector("core", engine)))

	s, err := NewServer(Config{
		Config:     cfgstore.NewDummy(),
		Engine:     engine,
		Inspector:  inspector,
		Prometheus: metrics,
		Profiling:  true,
		ID:         "id",
		Name:       "name",
	})
	require.NoError(t, err)

	tests := []struct {
		method string
		path   string
		body   string
		code   int
	}{
		{"GET", "/ping", "", http.StatusOK},
		{"GET", "/api/v1/config", "", http.StatusOK},
		{"GET", "/api", "", http.StatusOK},
		{"GET", "/api/swagger/doc.json", "", http.StatusOK},
		{"GET", "/api/v1/session", "", http.StatusNotFound},
		{"POST", "/api/v1/session", `{"app":"game.exe","purpose":"break","time_limit_sec":60}`, http.StatusCreated},
		{"GET", "/api/v1/session", "", http.StatusOK},
		{"GET", "/api/v1/session/stats", "", http.StatusOK},
		{"GET", "/api/v1/log", "", http.StatusOK},
		{"GET", "/api/v1/log/system", "", http.StatusOK},
		{"GET", "/api/v1/process?name=game.exe", "", http.StatusOK},
		{"GET", "/metrics", "", http.StatusOK},
		{"GET", "/profiling/cmdline", "", http.StatusOK},
		{"GET", "/api/v2/session", "", http.StatusNotFound},
	}

	for _, test := range tests {
		var body *strings.Reader
		if len(test.body) != 0 {
			body = strings.NewReader(test.body)
		}

		w := httptest.NewRecorder()

		var req *http.Request
		if body != nil {
			req = httptest.NewRequest(test.method, test.path, body)
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(test.method, test.path, nil)
		}

		s.ServeHTTP(w, req)

		require.Equal(t, test.code, w.Code, "%s %s: %s", test.method, test.path, w.Body.String())
	}

	h, ok := engine.Active()
	require.True(t, ok)

	h.Cancel()
}

func TestServerWithoutMetrics(t *testing.T) {
	inspector := mockpsutil.New()

	engine, _, err := mock.DummyEngine(inspector, timesrc.NewManualSource(time.Now()))
	require.NoError(t, err)

	s, err := NewServer(Config{
		Engine:    engine,
		Inspector: inspector,
	})
	require.NoError(t, err)

	for _, path := range []string{"/metrics", "/profiling/cmdline", "/api/v1/config"} {
		w := httptest.NewRecorder()
		s.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		require.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestSwaggerDocsCoverRoutes(t *testing.T) {
	inspector := mockpsutil.New()

	engine, _, err := mock.DummyEngine(inspector, timesrc.NewManualSource(time.Now()))
	require.NoError(t, err)

	s, err := NewServer(Config{
		Config:     cfgstore.NewDummy(),
		Engine:     engine,
		Inspector:  inspector,
		Prometheus: prometheus.New(),
	})
	require.NoError(t, err)

	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	spec := struct {
		Paths map[string]map[string]interface{} `json:"paths"`
	}{}

	require.NoError(t, json.Unmarshal([]byte(doc), &spec))

	for _, route := range s.(*server).router.Routes() {
		if strings.HasPrefix(route.Path, "/api/swagger") {
			continue
		}

		path := strings.ReplaceAll(route.Path, ":id", "{id}")

		methods, ok := spec.Paths[path]
		require.True(t, ok, "undocumented route %s", path)

		_, ok = methods[strings.ToLower(route.Method)]
		require.True(t, ok, "undocumented method %s %s", route.Method, path)
	}
}
