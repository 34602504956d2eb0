package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"sitereport/docs"
	"sitereport/internal/config"
	apperrors "sitereport/internal/errors"
	"sitereport/internal/handler"
	"sitereport/internal/model"
)

// TokenVerifier resolves a bearer token to its user.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*model.User, error)
}

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	Sync      *handler.SyncHandler
	Bootstrap *handler.BootstrapHandler
	System    *handler.SystemHandler
	Dashboard *handler.DashboardHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, log *zap.Logger, tokens TokenVerifier, h Handlers) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.GET("/", h.System.Index)
	e.GET("/health", h.System.Health)
	e.GET("/api-status", h.System.APIStatus)
	e.GET("/init-db", h.Bootstrap.InitDB)

	api := e.Group("/api")

	// Public routes
	api.GET("/status", h.System.Status)
	api.POST("/login", h.Auth.Login)

	// Secured routes (require bearer token)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  handler.UserContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return tokens.Verify(c.Request().Context(), token)
		},
		ErrorHandler: authErrorHandler,
	}))

	secured.GET("/sync/down", h.Sync.SyncDown)
	secured.GET("/dashboard", h.Dashboard.Dashboard)
	secured.GET("/projects", h.Dashboard.Projects)
	secured.GET("/reports", h.Dashboard.Reports)
	secured.GET("/visits", h.Dashboard.Visits)
}

// authErrorHandler reports why a bearer token was refused. Anything that is
// not a verification failure means no usable token was presented.
func authErrorHandler(c echo.Context, err error) error {
	var storageErr *apperrors.StorageError
	switch {
	case errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid),
		errors.As(err, &storageErr):
	default:
		err = apperrors.ErrTokenMissing
	}
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				log.Warn("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
