package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/focusguard/core/http/api"
	"github.com/focusguard/core/http/handler/util"
	"github.com/focusguard/core/log"
	"github.com/focusguard/core/session"
	"github.com/focusguard/core/session/store"

	"github.com/labstack/echo/v4"
)

// The LogHandler type provides handler functions for reading the session log
// and the application log
type LogHandler struct {
	engine session.Engine
	buffer log.BufferWriter
}

// NewLog return a new Log type. You have to provide a session engine and a log buffer.
func NewLog(engine session.Engine, buffer log.BufferWriter) *LogHandler {
	l := &LogHandler{
		engine: engine,
		buffer: buffer,
	}

	if l.buffer == nil {
		l.buffer = log.NewBufferWriter(log.Lsilent, 1)
	}

	return l
}

// SessionLog returns the latest entries of the session log
// @Summary Session log
// @Description Get the latest entries of the session log, oldest first
// @ID log-1-session
// @Param n query integer false "Number of entries, 0 for all" default(10)
// @Param app query string false "Glob pattern for the app name"
// @Produce json
// @Success 200 {array} api.LogEntry
// @Failure 400 {object} api.Error
// @Router /api/v1/log [get]
func (p *LogHandler) SessionLog(c echo.Context) error {
	n, err := strconv.Atoi(util.DefaultQuery(c, "n", "10"))
	if err != nil || n < 0 {
		return api.Err(http.StatusBadRequest, "", "n must be a non-negative number")
	}

	pattern := util.DefaultQuery(c, "app", "")

	entries, err := p.engine.RecentLogs(0)
	if err != nil {
		return api.Err(http.StatusInternalServerError, "", "%s", err.Error())
	}

	if len(pattern) != 0 {
		entries, err = store.Filter(entries, pattern)
		if err != nil {
			return api.Err(http.StatusBadRequest, "", "invalid pattern: %s", err.Error())
		}
	}

	entries = store.Recent(entries, n)

	list := make([]api.LogEntry, len(entries))

	for i, e := range entries {
		list[i].Unmarshal(e)
	}

	return c.JSON(http.StatusOK, list)
}

// SystemLog returns the last log lines of the application
// @Summary Application log
// @Description Get the last log lines of the application
// @ID log-1-system
// @Param format query string false "Format of the list of log events (*console, raw)"
// @Produce json
// @Success 200 {array} api.LogEvent "application log"
// @Success 200 {array} string "application log"
// @Router /api/v1/log/system [get]
func (p *LogHandler) SystemLog(c echo.Context) error {
	format := util.DefaultQuery(c, "format", "console")

	events := p.buffer.Events()

	if format == "raw" {
		list := make([]api.LogEvent, len(events))

		for i, e := range events {
			list[i].Unmarshal(e)
		}

		return c.JSON(http.StatusOK, list)
	}

	formatter := log.NewConsoleFormatter(false)

	lines := make([]string, len(events))

	for i, e := range events {
		lines[i] = strings.TrimSpace(formatter.String(e))
	}

	return c.JSON(http.StatusOK, lines)
}
