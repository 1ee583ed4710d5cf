// @title FocusGuard Core API
// @version 1.0
// @description Expose REST API for the FocusGuard Core

// @BasePath /

package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	cfgstore "github.com/focusguard/core/config/store"
	"github.com/focusguard/core/http/errorhandler"
	"github.com/focusguard/core/http/handler"
	api "github.com/focusguard/core/http/handler/api"
	httplog "github.com/focusguard/core/http/log"
	"github.com/focusguard/core/http/validator"
	"github.com/focusguard/core/log"
	"github.com/focusguard/core/prometheus"
	"github.com/focusguard/core/psutil"
	"github.com/focusguard/core/session"

	mwlog "github.com/focusguard/core/http/middleware/log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger" // echo-swagger middleware

	// Expose the API docs
	_ "github.com/focusguard/core/docs"
)

type Config struct {
	Logger     log.Logger
	LogBuffer  log.BufferWriter
	Config     cfgstore.Store
	Engine     session.Engine
	Inspector  psutil.Inspector
	Prometheus prometheus.Reader
	Profiling  bool

	// Instance details for the about endpoint
	ID        string
	Name      string
	CreatedAt time.Time
}

type Server interface {
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}

type server struct {
	logger log.Logger

	handler struct {
		about      *api.AboutHandler
		prometheus *handler.PrometheusHandler
		profiling  *handler.ProfilingHandler
		ping       *handler.PingHandler
	}

	v1handler struct {
		config  *api.ConfigHandler
		session *api.SessionHandler
		log     *api.LogHandler
		process *api.ProcessHandler
	}

	middleware struct {
		log echo.MiddlewareFunc
	}

	router *echo.Echo

	profiling bool
}

func NewServer(config Config) (Server, error) {
	if config.Engine == nil {
		return nil, fmt.Errorf("no session engine provided")
	}

	if config.Inspector == nil {
		return nil, fmt.Errorf("no process inspector provided")
	}

	s := &server{
		logger:    config.Logger,
		profiling: config.Profiling,
	}

	if s.logger == nil {
		s.logger = log.New("HTTP")
	}

	s.handler.about = api.NewAbout(api.AboutConfig{
		ID:        config.ID,
		Name:      config.Name,
		CreatedAt: config.CreatedAt,
	})

	if config.Config != nil {
		s.v1handler.config = api.NewConfig(
			config.Config,
		)
	}

	s.v1handler.session = api.NewSession(
		config.Engine,
	)

	s.v1handler.log = api.NewLog(
		config.Engine,
		config.LogBuffer,
	)

	s.v1handler.process = api.NewProcess(
		config.Inspector,
	)

	if config.Prometheus != nil {
		s.handler.prometheus = handler.NewPrometheus(
			config.Prometheus.HTTPHandler(),
		)
	}

	if config.Profiling {
		s.handler.profiling = handler.NewProfiling()
	}

	s.handler.ping = handler.NewPing()

	s.middleware.log = mwlog.NewWithConfig(mwlog.Config{
		Logger: s.logger,
	})

	s.router = echo.New()
	s.router.HTTPErrorHandler = errorhandler.HTTPErrorHandler
	s.router.Validator = validator.New()
	s.router.Use(s.middleware.log)
	s.router.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			rows := strings.Split(string(stack), "\n")
			s.logger.Error().WithField("stack", rows).Log("recovered from a panic")
			return nil
		},
	}))

	s.router.HideBanner = true
	s.router.HidePort = true

	s.router.Logger.SetOutput(httplog.NewWrapper(s.logger))

	s.setRoutes()

	return s, nil
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *server) setRoutes() {
	// Prometheus metrics
	if s.handler.prometheus != nil {
		s.router.GET("/metrics", s.handler.prometheus.Metrics)
	}

	// Health check
	s.router.GET("/ping", s.handler.ping.Ping)

	// Profiling routes
	if s.profiling {
		prof := s.router.Group("/profiling")

		s.handler.profiling.Register(prof)
	}

	// API router group
	api := s.router.Group("/api")

	api.GET("", s.handler.about.About)

	// Swagger API documentation router group
	doc := s.router.Group("/api/swagger/*")
	doc.Use(middleware.Gzip())
	doc.GET("", echoSwagger.WrapHandler)

	// APIv1 router group
	v1 := api.Group("/v1")

	s.setRoutesV1(v1)
}

func (s *server) setRoutesV1(v1 *echo.Group) {
	// v1 Config
	if s.v1handler.config != nil {
		v1.GET("/config", s.v1handler.config.Get)
		v1.PUT("/config", s.v1handler.config.Set)
		v1.GET("/config/reload", s.v1handler.config.Reload)
	}

	// v1 Session
	v1.POST("/session", s.v1handler.session.Start)
	v1.GET("/session", s.v1handler.session.Active)
	v1.GET("/session/stats", s.v1handler.session.Stats)
	v1.GET("/session/:id", s.v1handler.session.Get)
	v1.DELETE("/session/:id", s.v1handler.session.Cancel)
	v1.GET("/session/:id/events", s.v1handler.session.Events)

	// v1 Log
	v1.GET("/log", s.v1handler.log.SessionLog)
	v1.GET("/log/system", s.v1handler.log.SystemLog)

	// v1 Process
	v1.GET("/process", s.v1handler.process.Find)
}
