package api

import (
	"context"
	"fmt"
	"io"
	golog "log"
	gohttp "net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/focusguard/core/app"
	configstore "github.com/focusguard/core/config/store"
	configvars "github.com/focusguard/core/config/vars"
	"github.com/focusguard/core/http"
	"github.com/focusguard/core/io/fs"
	"github.com/focusguard/core/log"
	"github.com/focusguard/core/prometheus"
	"github.com/focusguard/core/psutil"
	"github.com/focusguard/core/session"
	sessionjsonstore "github.com/focusguard/core/session/store/json"

	"github.com/google/gops/agent"
	"go.uber.org/automaxprocs/maxprocs"
)

// The API interface runs the session engine behind the HTTP API.
type API interface {
	// Start starts the API and blocks until the context is done, the HTTP server
	// failed, or a configuration reload has been requested. The latter returns
	// ErrConfigReload.
	Start(ctx context.Context) error

	// Stop stops the API. A running session will be cancelled.
	Stop()

	// Destroy is the same as Stop().
	Destroy()

	// Reload the configuration for the API. If there's an error the
	// previously loaded configuration is not altered.
	Reload() error
}

// ErrConfigReload is an error returned to indicate that a reload of
// the configuration has been requested.
var ErrConfigReload = fmt.Errorf("configuration reload")

type api struct {
	configpath string
	logwriter  io.Writer

	store  configstore.Store
	logger log.Logger
	buffer log.BufferWriter

	// requested reloads, survives restarts
	reload chan struct{}

	lock    sync.Mutex
	running bool

	engine    session.Engine
	prom      prometheus.Metrics
	server    *gohttp.Server
	serverErr chan error
	done      sync.WaitGroup

	undoMaxprocs func()
}

// New returns a new instance of the API interface. The configuration is read
// from configpath and the application log is written to logwriter.
func New(configpath string, logwriter io.Writer) (API, error) {
	a := &api{
		configpath: configpath,
		logwriter:  logwriter,
		reload:     make(chan struct{}, 1),
	}

	if a.logwriter == nil {
		a.logwriter = io.Discard
	}

	if err := a.Reload(); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *api) Reload() error {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.running {
		return fmt.Errorf("can't reload config while running")
	}

	bootlog := log.New("Core").WithOutput(log.NewConsoleWriter(a.logwriter, log.Lwarn, true))

	rootfs, _ := fs.NewDiskFilesystem(fs.DiskConfig{})
	store, err := configstore.NewJSON(rootfs, a.configpath, a.requestReload)
	if err != nil {
		bootlog.Error().WithError(err).WithField("path", a.configpath).Log("Reading config file failed")
		return err
	}

	cfg := store.Get()
	cfg.Merge()

	// db.dir must exist in order to pass validation
	if len(cfg.DB.Dir) != 0 {
		os.MkdirAll(cfg.DB.Dir, 0740)
	}

	cfg.Validate(false)

	logger, buffer := newLogger(a.logwriter, cfg.Log.Level, cfg.Log.Format, cfg.Log.Topics, cfg.Log.MaxLines)

	logger.Info().WithFields(log.Fields{
		"application": app.Name,
		"version":     app.Version.String(),
		"arch":        app.Arch,
		"compiler":    app.Compiler,
		"commit":      app.Commit,
		"build":       app.Build,
	}).Log("")
	logger.Info().WithField("path", a.configpath).Log("Read config file")

	logConfigMessages(logger.WithComponent("Config"), cfg.Messages)

	if cfg.HasErrors() {
		logger.Error().Log("Invalid configuration, see the messages above")
		return fmt.Errorf("not all variables are set or valid")
	}

	cfg.LoadedAt = time.Now()

	if err := store.SetActive(cfg); err != nil {
		return err
	}

	a.store = store
	a.logger = logger
	a.buffer = buffer

	return nil
}

func (a *api) requestReload() {
	select {
	case a.reload <- struct{}{}:
	default:
	}
}

// newLogger returns the application logger and the buffer that keeps the
// latest lines for the system log endpoint.
func newLogger(w io.Writer, level, format string, topics []string, lines int) (log.Logger, log.BufferWriter) {
	loglevel, ok := log.ParseLevel(level)
	if !ok {
		loglevel = log.Linfo
	}

	buffer := log.NewBufferWriter(loglevel, lines)

	var output log.Writer
	if format == "json" {
		output = log.NewJSONWriter(w, loglevel)
	} else {
		output = log.NewConsoleWriter(w, loglevel, true)
	}

	logger := log.New("Core").WithOutput(log.NewSyncWriter(
		log.NewMultiWriter(log.NewTopicWriter(output, topics), buffer),
	))

	return logger, buffer
}

func logConfigMessages(logger log.Logger, messages func(func(level string, v configvars.Variable, message string))) {
	messages(func(level string, v configvars.Variable, message string) {
		l := logger.WithFields(log.Fields{
			"variable": v.Name,
			"value":    v.Value,
			"env":      v.EnvName,
			"override": v.Merged,
		})

		switch level {
		case "error":
			l.Error().Log(message)
		case "warn":
			l.Warn().Log(message)
		default:
			l.Debug().Log(message)
		}
	})
}

func (a *api) start() error {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.running {
		return fmt.Errorf("already running")
	}

	cfg := a.store.GetActive()

	if cfg.Debug.AutoMaxProcs {
		undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			a.logger.Debug().Log(strings.TrimPrefix(format, "maxprocs: "), args...)
		}))
		if err != nil {
			a.logger.Warn().WithError(err).Log("Setting GOMAXPROCS failed")
		}

		a.undoMaxprocs = undo
	}

	if len(cfg.Debug.AgentAddress) != 0 {
		if err := agent.Listen(agent.Options{
			Addr:                   cfg.Debug.AgentAddress,
			ReuseSocketAddrAndPort: true,
		}); err != nil {
			a.logger.Error().WithError(err).Log("Starting gops agent failed")
		}
	}

	dbfs, err := fs.NewDiskFilesystem(fs.DiskConfig{
		Name:   "db",
		Dir:    cfg.DB.Dir,
		Logger: a.logger.WithComponent("Filesystem").WithField("fs", "db"),
	})
	if err != nil {
		return fmt.Errorf("disk filesystem: %w", err)
	}

	logstore, err := sessionjsonstore.New(sessionjsonstore.Config{
		Filesystem: dbfs,
		Filepath:   "/" + cfg.Session.Logfile,
		Logger:     a.logger.WithComponent("SessionStore"),
	})
	if err != nil {
		return fmt.Errorf("session log: %w", err)
	}

	inspector := psutil.New(psutil.Config{
		Lister: psutil.NewSystemLister(2 * time.Second),
		Logger: a.logger.WithComponent("Inspector"),
	})

	a.engine, err = session.New(session.Config{
		Store:            logstore,
		Inspector:        inspector,
		DefaultTimeLimit: time.Duration(cfg.Session.TimeLimit) * time.Second,
		PollInterval:     time.Duration(cfg.Session.PollInterval) * time.Second,
		TickInterval:     time.Duration(cfg.Session.TickInterval) * time.Millisecond,
		Logger:           a.logger.WithComponent("Session"),
	})
	if err != nil {
		return fmt.Errorf("session engine: %w", err)
	}

	httplogger := a.logger.WithComponent("HTTP").WithField("address", cfg.Address)

	serverConfig := http.Config{
		Logger:    httplogger,
		LogBuffer: a.buffer,
		Config:    a.store,
		Engine:    a.engine,
		Inspector: inspector,
		Profiling: cfg.Debug.Profiling,
		ID:        cfg.ID,
		Name:      cfg.Name,
		CreatedAt: cfg.CreatedAt,
	}

	if cfg.Metrics.EnablePrometheus {
		a.prom = prometheus.New()
		a.prom.Register(prometheus.NewUptimeCollector(cfg.ID, time.Now()))
		a.prom.Register(prometheus.NewSessionCollector(cfg.ID, a.engine))
		a.prom.Register(prometheus.NewProcessCollector(cfg.ID, a.engine, inspector))

		serverConfig.Prometheus = a.prom
	}

	handler, err := http.NewServer(serverConfig)
	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	a.server = &gohttp.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          golog.New(httplogger.Debug(), "", 0),
	}
	a.serverErr = make(chan error, 1)

	a.done.Add(1)

	go func(server *gohttp.Server, errc chan<- error) {
		defer a.done.Done()

		httplogger.Info().Log("Server started")

		err := server.ListenAndServe()
		if err == gohttp.ErrServerClosed {
			err = nil
		}

		httplogger.Info().Log("Server exited")

		errc <- err
	}(a.server, a.serverErr)

	a.running = true

	return nil
}

func (a *api) Start(ctx context.Context) error {
	if err := a.start(); err != nil {
		a.stop()
		return err
	}

	select {
	case <-ctx.Done():
		return nil
	case <-a.reload:
		return ErrConfigReload
	case err := <-a.serverErr:
		if err != nil {
			return fmt.Errorf("HTTP server: %w", err)
		}

		return nil
	}
}

func (a *api) stop() {
	a.lock.Lock()
	defer a.lock.Unlock()

	logger := a.logger.WithField("action", "shutdown")

	// Cancelling the running session kills the app
	if a.engine != nil {
		if h, ok := a.engine.Active(); ok {
			logger.Info().WithField("session", h.ID()).Log("Cancelling running session")
			h.Cancel()
		}

		a.engine = nil
	}

	if a.prom != nil {
		a.prom.UnregisterAll()
		a.prom = nil
	}

	if a.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := a.server.Shutdown(ctx); err != nil {
			logger.Error().WithError(err).Log("Stopping HTTP server failed")
		}

		a.server = nil
	}

	a.done.Wait()

	agent.Close()

	if a.undoMaxprocs != nil {
		a.undoMaxprocs()
		a.undoMaxprocs = nil
	}

	a.running = false

	logger.Info().Log("Complete")
}

func (a *api) Stop() {
	a.logger.Info().Log("Shutdown requested")
	a.stop()
}

func (a *api) Destroy() {
	a.Stop()
}
