package httpserver

import (
	"agenda/appointment"
	"agenda/contact"
	"agenda/errs"
	"agenda/pkg/config"
	"agenda/pkg/logger"
	"agenda/pkg/metrics"
	"agenda/pkg/sentry"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	// ValidateRequests turns on validation of request bodies before they
	// reach the services.
	ValidateRequests bool

	Logger  *zap.SugaredLogger
	Metrics *metrics.Metrics

	ContactService     contact.Service
	AppointmentService appointment.Service
}

func Default(cfg *config.Config, opts ...Options) *Server {
	s := Server{
		Router:           echo.New(),
		Addr:             ":8080",
		AllowOrigins:     []string{"*"},
		ValidateRequests: cfg.Agenda.Validate,
		Logger:           logger.NOOPLogger,
	}
	if cfg.Port != 0 {
		s.Addr = fmt.Sprintf(":%d", cfg.Port)
	}
	if cfg.AllowOrigins != "" {
		s.AllowOrigins = strings.Split(cfg.AllowOrigins, ",")
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.Metrics == nil {
		s.Metrics = metrics.New()
	}

	s.Router.HideBanner = true
	s.Router.Validator = NewValidator()
	s.Router.HTTPErrorHandler = s.customHTTPErrorHandler
	s.RegisterGlobalMiddlewares()
	api := s.Router.Group("/api")

	// PUBLIC
	public := api.Group("")
	s.RegisterPublicRoutes(public)

	// PRIVATE
	private := api.Group("")
	private.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(cfg.Auth.JWTSecret),
		SigningMethod: "HS256",
		ErrorHandler: func(c echo.Context, err error) error {
			return errUnauthorized
		},
	}))
	s.RegisterPrivateRoutes(private)
	s.RegisterHealthRoutes()
	s.RegisterMetricsRoutes()
	s.RegisterSwaggerRoutes()
	return &s
}

var errUnauthorized = errs.Errorf(errs.EUNAUTHORIZED, "missing or invalid access token")

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

// customHTTPErrorHandler maps application errors to appropriate HTTP status codes
func (s *Server) customHTTPErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = fmt.Sprint(he.Message)
	} else {
		switch errs.ErrorCode(err) {
		case errs.EINVALID:
			code = http.StatusBadRequest
			message = errs.ErrorMessage(err)
		case errs.ENOTFOUND:
			code = http.StatusNotFound
			message = errs.ErrorMessage(err)
		case errs.ECONFLICT:
			code = http.StatusConflict
			message = errs.ErrorMessage(err)
		case errs.EUNAUTHORIZED:
			code = http.StatusUnauthorized
			message = errs.ErrorMessage(err)
		case errs.ENOTIMPLEMENTED:
			code = http.StatusNotImplemented
			message = errs.ErrorMessage(err)
		}
	}

	if code >= http.StatusInternalServerError {
		s.Logger.Errorw(err.Error(), zap.String("request_id", s.requestID(c)))
		sentry.WithContext(c).Error(err)
	}

	// Don't write response if already committed
	if !c.Response().Committed {
		if err := writeError(c, code, message, "", err); err != nil {
			s.Logger.Errorw("cannot write error response", "error", err)
		}
	}
}

func (s *Server) requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// bind decodes the request body into req and validates it when request
// validation is on. Decoding failures are reported as invalid input.
func (s *Server) bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return errs.Errorf(errs.EINVALID, "malformed request body: %v", he.Message)
		}
		return errs.Errorf(errs.EINVALID, "malformed request body")
	}
	if !s.ValidateRequests {
		return nil
	}
	return c.Validate(req)
}

func (s *Server) RegisterPublicRoutes(g *echo.Group) {
	s.RegisterPublicContactRoutes(g)
	s.RegisterPublicAppointmentRoutes(g)
}

func (s *Server) RegisterPrivateRoutes(g *echo.Group) {
	s.RegisterPrivateContactRoutes(g)
	s.RegisterPrivateAppointmentRoutes(g)
	s.RegisterCallerRoutes(g)
}
