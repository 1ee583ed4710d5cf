package api

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/focusguard/core/encoding/json"
	"github.com/focusguard/core/http/api"
	"github.com/focusguard/core/http/mock"
	mockpsutil "github.com/focusguard/core/internal/mock/psutil"
	"github.com/focusguard/core/session"
	"github.com/focusguard/core/session/store"
	timesrc "github.com/focusguard/core/time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type sessionEnv struct {
	router    *echo.Echo
	engine    session.Engine
	store     store.MemoryStore
	inspector *mockpsutil.MockInspector
	clock     *timesrc.ManualSource
}

func getDummySessionRouter(t *testing.T) *sessionEnv {
	env := &sessionEnv{
		router:    mock.DummyEcho(),
		inspector: mockpsutil.New("game.exe"),
		clock:     timesrc.NewManualSource(time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)),
	}

	engine, logstore, err := mock.DummyEngine(env.inspector, env.clock)
	require.NoError(t, err)

	env.engine = engine
	env.store = logstore

	handler := NewSession(engine)

	env.router.Add("POST", "/session", handler.Start)
	env.router.Add("GET", "/session", handler.Active)
	env.router.Add("GET", "/session/stats", handler.Stats)
	env.router.Add("GET", "/session/:id", handler.Get)
	env.router.Add("DELETE", "/session/:id", handler.Cancel)
	env.router.Add("GET", "/session/:id/events", handler.Events)

	return env
}

func startSession(t *testing.T, env *sessionEnv) api.Session {
	response := mock.Request(t, http.StatusCreated, env.router, "POST", "/session", mock.JSON(t, api.SessionStart{
		App:       "game.exe",
		Purpose:   "break",
		TimeLimit: 60,
	}))

	mock.Validate(t, &api.Session{}, response.Data)

	s := api.Session{}
	require.NoError(t, json.Unmarshal(response.Raw, &s))

	return s
}

func TestSessionStart(t *testing.T) {
	env := getDummySessionRouter(t)

	s := startSession(t, env)

	require.NotEmpty(t, s.ID)
	require.Equal(t, "game.exe", s.App)
	require.Equal(t, "break", s.Purpose)
	require.Equal(t, int64(60), s.TimeLimit)
	require.Equal(t, "running", s.State)
	require.Equal(t, "01:00", s.Display)
	require.Empty(t, s.EndedAt)

	entries, err := env.store.ReadRecent(0)
	require.NoError(t, err)
	require.Equal(t, 1, len(entries))
	require.Equal(t, store.ActionStarted, entries[0].Action)
}

func TestSessionStartDefaultLimit(t *testing.T) {
	env := getDummySessionRouter(t)

	response := mock.Request(t, http.StatusCreated, env.router, "POST", "/session", strings.NewReader(`{"app": "game.exe", "purpose": "break"}`))

	s := api.Session{}
	require.NoError(t, json.Unmarshal(response.Raw, &s))
	require.Equal(t, int64(900), s.TimeLimit)
	require.Equal(t, "15:00", s.Display)
}

func TestSessionStartInvalid(t *testing.T) {
	env := getDummySessionRouter(t)

	mock.Request(t, http.StatusBadRequest, env.router, "POST", "/session", strings.NewReader(`{"purpose": "break"}`))
	mock.Request(t, http.StatusBadRequest, env.router, "POST", "/session", strings.NewReader(`{"app": "game.exe"}`))
	mock.Request(t, http.StatusBadRequest, env.router, "POST", "/session", strings.NewReader(`{"app": " ", "purpose": "break"}`))
	mock.Request(t, http.StatusBadRequest, env.router, "POST", "/session", strings.NewReader(`{"app": "game.exe", "purpose": "break", "time_limit_sec": -1}`))
	mock.Request(t, http.StatusBadRequest, env.router, "POST", "/session", strings.NewReader(`{"app": "game.exe",}`))

	entries, err := env.store.ReadRecent(0)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestSessionStartLimitTooLarge(t *testing.T) {
	env := getDummySessionRouter(t)

	mock.Request(t, http.StatusBadRequest, env.router, "POST", "/session", mock.JSON(t, api.SessionStart{
		App:       "game.exe",
		Purpose:   "break",
		TimeLimit: (1 << 55) + 5,
	}))

	mock.Request(t, http.StatusBadRequest, env.router, "POST", "/session", mock.JSON(t, api.SessionStart{
		App:       "game.exe",
		Purpose:   "break",
		TimeLimit: int64(math.MaxInt64/time.Second) + 1,
	}))

	_, ok := env.engine.Active()
	require.False(t, ok)

	entries, err := env.store.ReadRecent(0)
	require.NoError(t, err)
	require.Empty(t, entries)

	s := mock.Request(t, http.StatusCreated, env.router, "POST", "/session", mock.JSON(t, api.SessionStart{
		App:       "game.exe",
		Purpose:   "break",
		TimeLimit: int64(math.MaxInt64 / time.Second),
	}))

	started := api.Session{}
	require.NoError(t, json.Unmarshal(s.Raw, &started))
	require.Equal(t, int64(math.MaxInt64/time.Second), started.TimeLimit)

	env.engine.Cancel(started.ID)
}

func TestSessionStartConflict(t *testing.T) {
	env := getDummySessionRouter(t)

	startSession(t, env)

	response := mock.Request(t, http.StatusConflict, env.router, "POST", "/session", mock.JSON(t, api.SessionStart{
		App:     "other.exe",
		Purpose: "work",
	}))

	mock.Validate(t, &api.Error{}, response.Data)
}

func TestSessionStartLogError(t *testing.T) {
	env := getDummySessionRouter(t)

	env.store.SetError(errors.New("disk full"))

	mock.Request(t, http.StatusInternalServerError, env.router, "POST", "/session", mock.JSON(t, api.SessionStart{
		App:     "game.exe",
		Purpose: "break",
	}))

	_, ok := env.engine.Active()
	require.False(t, ok)
}

func TestSessionActive(t *testing.T) {
	env := getDummySessionRouter(t)

	mock.Request(t, http.StatusNotFound, env.router, "GET", "/session", nil)

	s := startSession(t, env)

	response := mock.Request(t, http.StatusOK, env.router, "GET", "/session", nil)
	mock.Validate(t, &api.Session{}, response.Data)

	active := api.Session{}
	require.NoError(t, json.Unmarshal(response.Raw, &active))
	require.Equal(t, s.ID, active.ID)
}

func TestSessionCancel(t *testing.T) {
	env := getDummySessionRouter(t)

	s := startSession(t, env)

	response := mock.Request(t, http.StatusOK, env.router, "DELETE", "/session/"+s.ID, nil)
	mock.Validate(t, &api.SessionResult{}, response.Data)

	r := api.SessionResult{}
	require.NoError(t, json.Unmarshal(response.Raw, &r))
	require.Equal(t, s.ID, r.ID)
	require.Equal(t, string(session.OutcomeCancelled), r.Outcome)
	require.Equal(t, 1, r.Matched)
	require.Equal(t, 1, r.Killed)

	require.Equal(t, []string{"game.exe"}, env.inspector.Terminated())

	// Cancelling an ended session returns the same result
	response = mock.Request(t, http.StatusOK, env.router, "DELETE", "/session/"+s.ID, nil)

	again := api.SessionResult{}
	require.NoError(t, json.Unmarshal(response.Raw, &again))
	require.Equal(t, r, again)

	mock.Request(t, http.StatusNotFound, env.router, "DELETE", "/session/unknown", nil)
	mock.Request(t, http.StatusNotFound, env.router, "GET", "/session", nil)

	entries, err := env.store.ReadRecent(0)
	require.NoError(t, err)
	require.Equal(t, 2, len(entries))
	require.Equal(t, store.ActionClosed, entries[1].Action)
}

func TestSessionGet(t *testing.T) {
	env := getDummySessionRouter(t)

	s := startSession(t, env)

	mock.Request(t, http.StatusOK, env.router, "DELETE", "/session/"+s.ID, nil)

	response := mock.Request(t, http.StatusOK, env.router, "GET", "/session/"+s.ID, nil)
	mock.Validate(t, &api.Session{}, response.Data)

	ended := api.Session{}
	require.NoError(t, json.Unmarshal(response.Raw, &ended))
	require.Equal(t, "cancelled", ended.State)
	require.NotEmpty(t, ended.EndedAt)

	mock.Request(t, http.StatusNotFound, env.router, "GET", "/session/unknown", nil)
}

func TestSessionStats(t *testing.T) {
	env := getDummySessionRouter(t)

	s := startSession(t, env)
	mock.Request(t, http.StatusOK, env.router, "DELETE", "/session/"+s.ID, nil)

	response := mock.Request(t, http.StatusOK, env.router, "GET", "/session/stats", nil)
	mock.Validate(t, &api.SessionStats{}, response.Data)

	stats := api.SessionStats{}
	require.NoError(t, json.Unmarshal(response.Raw, &stats))
	require.Equal(t, api.SessionStats{Started: 1, Cancelled: 1}, stats)
}

func TestSessionEventsSSE(t *testing.T) {
	env := getDummySessionRouter(t)

	s := startSession(t, env)
	mock.Request(t, http.StatusOK, env.router, "DELETE", "/session/"+s.ID, nil)

	response := mock.Request(t, http.StatusOK, env.router, "GET", "/session/"+s.ID+"/events", nil)

	body := string(response.Raw)

	require.True(t, strings.HasPrefix(body, ":keepalive\n\n"))
	require.Contains(t, body, "event: final\ndata: ")
	require.Contains(t, body, `"outcome":"cancelled"`)
	require.Contains(t, body, `"message":"session cancelled"`)
}

func TestSessionEventsJSONStream(t *testing.T) {
	env := getDummySessionRouter(t)

	s := startSession(t, env)
	mock.Request(t, http.StatusOK, env.router, "DELETE", "/session/"+s.ID, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/session/"+s.ID+"/events", nil)
	req.Header.Set(echo.HeaderAccept, "application/x-json-stream")

	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get(echo.HeaderContentType), "application/x-json-stream")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Equal(t, 2, len(lines))
	require.Equal(t, `{"type":"keepalive"}`, lines[0])

	event := api.SessionEvent{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &event))
	require.Equal(t, s.ID, event.SessionID)
	require.Equal(t, "final", event.Type)
	require.Equal(t, "cancelled", event.Outcome)

	mock.Request(t, http.StatusNotFound, env.router, "GET", "/session/unknown/events", nil)
}
