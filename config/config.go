// Package config implements types for handling the configuation for the app.
package config

import (
	"time"

	"github.com/focusguard/core/config/value"
	"github.com/focusguard/core/config/vars"

	haikunator "github.com/atrox/haikunatorgo/v2"
	"github.com/google/uuid"
)

const version int64 = 1

// Config is a wrapper for Data
type Config struct {
	vars vars.Variables

	Data
}

// New returns a Config which is initialized with its default values
func New() *Config {
	cfg := &Config{}

	cfg.init()

	return cfg
}

func (d *Config) Get(name string) (string, error) {
	return d.vars.Get(name)
}

func (d *Config) Set(name, val string) error {
	return d.vars.Set(name, val)
}

// Clone returns a deep copy of a Config
func (d *Config) Clone() *Config {
	data := New()

	data.CreatedAt = d.CreatedAt
	data.LoadedAt = d.LoadedAt
	data.UpdatedAt = d.UpdatedAt

	data.Version = d.Version
	data.ID = d.ID
	data.Name = d.Name
	data.Address = d.Address

	data.Log = d.Log
	data.DB = d.DB
	data.Session = d.Session
	data.Metrics = d.Metrics
	data.Debug = d.Debug

	data.Log.Topics = copyStringSlice(d.Log.Topics)

	data.vars.Transfer(&d.vars)

	return data
}

func (d *Config) init() {
	d.vars.Register(value.NewInt64(&d.Version, version), "version", "", nil, "Configuration file layout version", true, false)
	d.vars.Register(value.NewTime(&d.CreatedAt, time.Now()), "created_at", "", nil, "Configuration file creation time", false, false)
	d.vars.Register(value.NewString(&d.ID, uuid.New().String()), "id", "FOCUSGUARD_ID", nil, "ID for this instance", true, false)
	d.vars.Register(value.NewString(&d.Name, haikunator.New().Haikunate()), "name", "FOCUSGUARD_NAME", nil, "A human readable name for this instance", false, false)
	d.vars.Register(value.NewMustAddress(&d.Address, "127.0.0.1:8090"), "address", "FOCUSGUARD_ADDRESS", nil, "HTTP listening address", false, false)

	// Log
	d.vars.Register(value.NewLogLevel(&d.Log.Level, "info"), "log.level", "FOCUSGUARD_LOG_LEVEL", nil, "Loglevel: silent, error, warn, info, debug", false, false)
	d.vars.Register(value.NewLogFormat(&d.Log.Format, "console"), "log.format", "FOCUSGUARD_LOG_FORMAT", nil, "Log output format: console, json", false, false)
	d.vars.Register(value.NewStringList(&d.Log.Topics, []string{}, ","), "log.topics", "FOCUSGUARD_LOG_TOPICS", nil, "Show only selected log topics", false, false)
	d.vars.Register(value.NewInt(&d.Log.MaxLines, 1000), "log.max_lines", "FOCUSGUARD_LOG_MAXLINES", nil, "Number of latest log lines to keep in memory", false, false)

	// DB
	d.vars.Register(value.NewMustDir(&d.DB.Dir, "./config"), "db.dir", "FOCUSGUARD_DB_DIR", nil, "Directory for holding the session log", false, false)

	// Session
	d.vars.Register(value.NewFilename(&d.Session.Logfile, "app_usage_log.json"), "session.logfile", "FOCUSGUARD_SESSION_LOGFILE", nil, "Name of the session log file in db.dir", false, false)
	d.vars.Register(value.NewMinInt64(&d.Session.TimeLimit, 900, 1), "session.time_limit_sec", "FOCUSGUARD_SESSION_TIME_LIMIT_SEC", nil, "Default time limit of a session in seconds", false, false)
	d.vars.Register(value.NewMinInt64(&d.Session.PollInterval, 5, 1), "session.poll_interval_sec", "FOCUSGUARD_SESSION_POLL_INTERVAL_SEC", nil, "Seconds between checks whether the app is still running", false, false)
	d.vars.Register(value.NewMinInt64(&d.Session.TickInterval, 1000, 10), "session.tick_interval_ms", "FOCUSGUARD_SESSION_TICK_INTERVAL_MS", nil, "Milliseconds between countdown updates", false, false)

	// Metrics
	d.vars.Register(value.NewBool(&d.Metrics.EnablePrometheus, false), "metrics.enable_prometheus", "FOCUSGUARD_METRICS_ENABLE_PROMETHEUS", nil, "Enable prometheus endpoint /metrics", false, false)

	// Debug
	d.vars.Register(value.NewBool(&d.Debug.Profiling, false), "debug.profiling", "FOCUSGUARD_DEBUG_PROFILING", nil, "Enable profiling endpoint on /profiling", false, false)
	d.vars.Register(value.NewBool(&d.Debug.AutoMaxProcs, false), "debug.auto_max_procs", "FOCUSGUARD_DEBUG_AUTO_MAX_PROCS", nil, "Set GOMAXPROCS automatically from the CPU quota", false, false)
	d.vars.Register(value.NewString(&d.Debug.AgentAddress, ""), "debug.agent_address", "FOCUSGUARD_DEBUG_AGENT_ADDRESS", nil, "Listen address for the gops agent, empty to disable", false, false)
}

// Validate validates the current state of the Config for completeness and sanity. Errors are
// written to the log. Use resetLogs to indicate to reset the logs prior validation.
func (d *Config) Validate(resetLogs bool) {
	if resetLogs {
		d.vars.ResetLogs()
	}

	if d.Version != version {
		d.vars.Log("error", "version", "unknown configuration layout version (found version %d, expecting version %d)", d.Version, version)

		return
	}

	d.vars.Validate()

	// A session must outlive at least one countdown tick
	if d.Session.TimeLimit*1000 < d.Session.TickInterval {
		d.vars.Log("error", "session.tick_interval_ms", "must not be larger than session.time_limit_sec")
	}
}

// Merge merges the values of the known environment variables into the configuration
func (d *Config) Merge() {
	d.vars.Merge()
}

// Messages calls for each log entry the provided callback. The level has the values 'error', 'warn', or 'info'.
// The name is the name of the configuration value, e.g. 'session.time_limit_sec'. The message is the log message.
func (d *Config) Messages(logger func(level string, v vars.Variable, message string)) {
	d.vars.Messages(logger)
}

// HasErrors returns whether there are some error messages in the log.
func (d *Config) HasErrors() bool {
	return d.vars.HasErrors()
}

// Overrides returns a list of configuration value names that have been overriden by an environment variable.
func (d *Config) Overrides() []string {
	return d.vars.Overrides()
}

func copyStringSlice(src []string) []string {
	dst := make([]string, len(src))
	copy(dst, src)

	return dst
}
