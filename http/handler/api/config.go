package api

import (
	"io"
	"net/http"
	"time"

	cfgstore "github.com/focusguard/core/config/store"
	cfgvars "github.com/focusguard/core/config/vars"
	"github.com/focusguard/core/encoding/json"
	"github.com/focusguard/core/http/api"

	"github.com/labstack/echo/v4"
)

// The ConfigHandler type provides handler functions for reading and manipulating
// the current config.
type ConfigHandler struct {
	store cfgstore.Store
}

// NewConfig return a new Config type. You have to provide a valid config store.
func NewConfig(store cfgstore.Store) *ConfigHandler {
	return &ConfigHandler{
		store: store,
	}
}

// Get returns the currently active configuration
// @Summary Retrieve the currently active configuration
// @Description Retrieve the currently active configuration
// @ID config-1-get
// @Produce json
// @Success 200 {object} api.Config
// @Router /api/v1/config [get]
func (p *ConfigHandler) Get(c echo.Context) error {
	cfg := p.store.GetActive()

	apicfg := api.Config{}
	apicfg.Unmarshal(cfg)

	return c.JSON(http.StatusOK, apicfg)
}

// Set will set the given configuration as new active configuration
// @Summary Update the current configuration
// @Description Update the current configuration by providing a complete or partial configuration. Fields that are not provided will not be changed. The new configuration is used after a reload.
// @ID config-1-set
// @Accept json
// @Produce json
// @Param config body api.SetConfig true "Configuration"
// @Success 200 {string} string
// @Failure 400 {object} api.Error
// @Failure 409 {object} api.ConfigError
// @Router /api/v1/config [put]
func (p *ConfigHandler) Set(c echo.Context) error {
	version := api.ConfigVersion{}

	req := c.Request()

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return api.Err(http.StatusBadRequest, "Invalid JSON", "%s", err)
	}

	if err := json.Unmarshal(body, &version); err != nil {
		return api.Err(http.StatusBadRequest, "Invalid JSON", "%s", json.FormatError(body, err))
	}

	cfg := p.store.Get()
	cfgActive := p.store.GetActive()

	if version.Version != cfg.Version {
		return api.Err(http.StatusBadRequest, "Invalid config version", "version %d", version.Version)
	}

	// Copy the timestamp of when this config has been used
	cfg.LoadedAt = cfgActive.LoadedAt

	// The current config is the default for all fields that are not part of the upload
	setConfig := api.NewSetConfig(cfg)

	if err := json.Unmarshal(body, &setConfig); err != nil {
		return api.Err(http.StatusBadRequest, "Invalid JSON", "%s", json.FormatError(body, err))
	}

	setConfig.MergeTo(cfg)

	cfg.UpdatedAt = time.Now()

	// The merged copy must be valid, the un-merged one is stored
	mergedConfig := cfg.Clone()
	mergedConfig.Merge()

	mergedConfig.Validate(true)
	if mergedConfig.HasErrors() {
		errors := api.ConfigError{}

		mergedConfig.Messages(func(level string, v cfgvars.Variable, message string) {
			if level != "error" {
				return
			}

			errors[v.Name] = append(errors[v.Name], message)
		})

		return c.JSON(http.StatusConflict, errors)
	}

	cfg.Validate(true)

	if err := p.store.Set(cfg); err != nil {
		return api.Err(http.StatusBadRequest, "Failed to store config", "%s", err)
	}

	if err := p.store.SetActive(mergedConfig); err != nil {
		return api.Err(http.StatusBadRequest, "Failed to activate config", "%s", err)
	}

	return c.JSON(http.StatusOK, "OK")
}

// Reload will reload the currently active configuration
// @Summary Reload the currently active configuration
// @Description Reload the currently active configuration. This will restart the core. A running session will be cancelled.
// @ID config-1-reload
// @Produce json
// @Success 200 {string} string
// @Router /api/v1/config/reload [get]
func (p *ConfigHandler) Reload(c echo.Context) error {
	p.store.Reload()

	return c.JSON(http.StatusOK, "OK")
}
