package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/reminder"
	"github.com/trezcool/phoebuz/core/study"
)

// Deps are the services the handlers work with.
type Deps struct {
	Validate   *validator.Validate
	Translator ut.Translator
	Registry   *study.Registry
	Reminders  *reminder.Service
	Metrics    *Metrics // optional
}

type Server struct {
	conf     *core.Config
	logger   core.Logger
	deps     Deps
	app      *echo.Echo
	errors   chan error
	shutdown chan os.Signal
}

var _ http.Handler = (*Server)(nil)

func NewServer(conf *core.Config, logger core.Logger, deps Deps) *Server {
	s := &Server{
		conf:     conf,
		logger:   logger,
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	debug := s.conf.Debug

	s.app.HideBanner = s.conf.TestMode
	s.app.Debug = debug
	if debug {
		s.app.Logger.SetLevel(log.DEBUG)
	} else {
		s.app.Logger.SetLevel(log.WARN)
	}

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || s.conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	if s.deps.Metrics != nil {
		s.app.Use(s.deps.Metrics.middleware())
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.logger, s.deps.Translator, s.signalShutdown)

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	v1.GET("/subjects", listSubjects)

	authed := []echo.MiddlewareFunc{
		middleware.JWTWithConfig(jwtConfig(s.conf)),
		workspaceMiddleware(s.deps.Registry),
	}
	api := &studyApi{
		validate:  s.deps.Validate,
		registry:  s.deps.Registry,
		reminders: s.deps.Reminders,
	}
	ag := v1.Group("", authed...)
	registerHomeworkAPI(ag.Group("/homework"), api)
	registerEventAPI(ag.Group("/events"), api)
	registerGradeAPI(ag.Group("/grades"), api)
	registerTimetableAPI(ag, api)
	registerSessionAPI(ag, api)
}

// Start serves until Shutdown or Close is called. Listen failures are sent on Errors.
func (s *Server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.conf.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error { return s.errors }

// ShutdownSignal receives the OS interrupt/terminate signals, and SIGTERM when a
// request failed with a shutdown error.
func (s *Server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

// Shutdown stops accepting requests and waits for the in-flight ones until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.conf.AppName+" API!")
}
