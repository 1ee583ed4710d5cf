package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/focusguard/core/encoding/json"
	"github.com/focusguard/core/http/api"
	"github.com/focusguard/core/http/handler/util"
	"github.com/focusguard/core/session"

	"github.com/labstack/echo/v4"
)

// The SessionHandler type provides handler functions for starting, observing
// and cancelling sessions.
type SessionHandler struct {
	engine    session.Engine
	keepalive time.Duration
}

// NewSession return a new Session type. You have to provide a session engine.
func NewSession(engine session.Engine) *SessionHandler {
	return &SessionHandler{
		engine:    engine,
		keepalive: 5 * time.Second,
	}
}

// Start starts a new session
// @Summary Start a session
// @Description Start a session for an app. The app will be killed after the time limit, unless it has been closed before.
// @ID session-1-start
// @Accept json
// @Produce json
// @Param config body api.SessionStart true "Session parameters"
// @Success 201 {object} api.Session
// @Failure 400 {object} api.Error
// @Failure 409 {object} api.Error
// @Failure 500 {object} api.Error
// @Router /api/v1/session [post]
func (h *SessionHandler) Start(c echo.Context) error {
	req := api.SessionStart{}

	if err := util.ShouldBindJSON(c, &req); err != nil {
		return api.Err(http.StatusBadRequest, "", "invalid JSON: %s", err.Error())
	}

	handle, err := h.engine.Start(req.App, req.Purpose, time.Duration(req.TimeLimit)*time.Second)
	if err != nil {
		return sessionError(err)
	}

	s := api.Session{}
	s.Unmarshal(handle.Info())

	return c.JSON(http.StatusCreated, s)
}

// Active returns the running session
// @Summary The running session
// @Description The running session
// @ID session-1-active
// @Produce json
// @Success 200 {object} api.Session
// @Failure 404 {object} api.Error
// @Router /api/v1/session [get]
func (h *SessionHandler) Active(c echo.Context) error {
	handle, ok := h.engine.Active()
	if !ok {
		return api.Err(http.StatusNotFound, "", "there is no running session")
	}

	s := api.Session{}
	s.Unmarshal(handle.Info())

	return c.JSON(http.StatusOK, s)
}

// Get returns a running or recently ended session
// @Summary A session by its ID
// @Description A running or recently ended session
// @ID session-1-get
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} api.Session
// @Failure 404 {object} api.Error
// @Router /api/v1/session/{id} [get]
func (h *SessionHandler) Get(c echo.Context) error {
	id := util.PathParam(c, "id")

	handle, ok := h.engine.Get(id)
	if !ok {
		return api.Err(http.StatusNotFound, "", "unknown session: %s", id)
	}

	s := api.Session{}
	s.Unmarshal(handle.Info())

	return c.JSON(http.StatusOK, s)
}

// Cancel cancels a session
// @Summary Cancel a session
// @Description Cancel a session. The app will be killed. If the session already ended, its result is returned.
// @ID session-1-cancel
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} api.SessionResult
// @Failure 404 {object} api.Error
// @Router /api/v1/session/{id} [delete]
func (h *SessionHandler) Cancel(c echo.Context) error {
	id := util.PathParam(c, "id")

	result, err := h.engine.Cancel(id)
	if err != nil {
		return sessionError(err)
	}

	r := api.SessionResult{}
	r.Unmarshal(result)

	return c.JSON(http.StatusOK, r)
}

// Stats returns the counters of the session engine
// @Summary Session statistics
// @Description Number of started sessions and how they ended
// @ID session-1-stats
// @Produce json
// @Success 200 {object} api.SessionStats
// @Router /api/v1/session/stats [get]
func (h *SessionHandler) Stats(c echo.Context) error {
	s := api.SessionStats{}
	s.Unmarshal(h.engine.Stats())

	return c.JSON(http.StatusOK, s)
}

// Events returns a stream of the countdown of a session
// @Summary Stream of session events
// @Description Countdown ticks of a session, terminated by the final event
// @ID session-1-events
// @Produce text/event-stream
// @Produce json-stream
// @Param id path string true "Session ID"
// @Success 200 {object} api.SessionEvent
// @Failure 404 {object} api.Error
// @Router /api/v1/session/{id}/events [get]
func (h *SessionHandler) Events(c echo.Context) error {
	id := util.PathParam(c, "id")

	handle, ok := h.engine.Get(id)
	if !ok {
		return api.Err(http.StatusNotFound, "", "unknown session: %s", id)
	}

	evts, cancel := handle.Events()
	defer cancel()

	ticker := time.NewTicker(h.keepalive)
	defer ticker.Stop()

	req := c.Request()
	reqctx := req.Context()

	contentType := "text/event-stream"
	accept := req.Header.Get(echo.HeaderAccept)
	if strings.Contains(accept, "application/x-json-stream") {
		contentType = "application/x-json-stream"
	}

	res := c.Response()

	res.Header().Set(echo.HeaderContentType, contentType+"; charset=UTF-8")
	res.Header().Set(echo.HeaderCacheControl, "no-store")
	res.Header().Set(echo.HeaderConnection, "close")
	res.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(res)
	enc.SetIndent("", "")

	sse := contentType == "text/event-stream"

	keepalive := func() {
		if sse {
			res.Write([]byte(":keepalive\n\n"))
		} else {
			res.Write([]byte("{\"type\":\"keepalive\"}\n"))
		}
		res.Flush()
	}

	keepalive()

	event := api.SessionEvent{}

	for {
		select {
		case <-reqctx.Done():
			return nil
		case <-ticker.C:
			keepalive()
		case e, ok := <-evts:
			if !ok {
				return nil
			}

			if !event.Unmarshal(e) {
				continue
			}

			if sse {
				res.Write([]byte("event: " + event.Type + "\ndata: "))
			}

			if err := enc.Encode(event); err != nil {
				return err
			}

			if sse {
				res.Write([]byte("\n"))
			}

			res.Flush()
		}
	}
}

func sessionError(err error) error {
	switch {
	case errors.Is(err, session.ErrValidation):
		return api.Err(http.StatusBadRequest, "", "%s", err.Error())
	case errors.Is(err, session.ErrSessionAlreadyActive):
		return api.Err(http.StatusConflict, "", "%s", err.Error())
	case errors.Is(err, session.ErrNotFound):
		return api.Err(http.StatusNotFound, "", "%s", err.Error())
	case errors.Is(err, session.ErrIO):
		return api.Err(http.StatusInternalServerError, "", "%s", err.Error())
	}

	return api.Err(http.StatusInternalServerError, "", "%s", err.Error())
}
