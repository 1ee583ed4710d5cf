package api

import (
	"net/http"
	"strings"

	"github.com/focusguard/core/http/api"
	"github.com/focusguard/core/http/handler/util"
	"github.com/focusguard/core/psutil"

	"github.com/labstack/echo/v4"
)

// The ProcessHandler type provides handler functions for looking up
// running processes by name
type ProcessHandler struct {
	inspector psutil.Inspector
}

// NewProcess return a new Process type. You have to provide a process inspector.
func NewProcess(inspector psutil.Inspector) *ProcessHandler {
	return &ProcessHandler{
		inspector: inspector,
	}
}

// Find returns the processes with the given name
// @Summary Find processes by name
// @Description List all processes whose name matches the given name, case-insensitive
// @ID process-1-find
// @Param name query string true "Executable name, e.g. game.exe"
// @Produce json
// @Success 200 {object} api.ProcessList
// @Failure 400 {object} api.Error
// @Router /api/v1/process [get]
func (h *ProcessHandler) Find(c echo.Context) error {
	name := strings.TrimSpace(util.DefaultQuery(c, "name", ""))
	if len(name) == 0 {
		return api.Err(http.StatusBadRequest, "", "a process name is required")
	}

	procs := h.inspector.Find(name)

	list := api.ProcessList{
		Name:      name,
		Running:   len(procs) != 0,
		Processes: make([]api.Process, len(procs)),
	}

	for i, p := range procs {
		list.Processes[i].Unmarshal(p)
	}

	return c.JSON(http.StatusOK, list)
}
