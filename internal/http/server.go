package httpapp

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/shopfront/shopfront/internal/analytics"
	"github.com/shopfront/shopfront/internal/auth"
	"github.com/shopfront/shopfront/internal/catalog"
	"github.com/shopfront/shopfront/internal/config"
	"github.com/shopfront/shopfront/internal/http/authn"
	"github.com/shopfront/shopfront/internal/http/handlers"
	"github.com/shopfront/shopfront/internal/http/requestid"
)

// Deps are the stores and services the HTTP layer reads from.
type Deps struct {
	Sessions  *scs.SessionManager
	Resolver  authn.PrincipalResolver
	Users     handlers.UserStore
	Catalog   catalog.Lister
	Analytics analytics.Source
	DB        handlers.Pinger
	Logger    *slog.Logger
}

// EchoServer is the HTTP server wrapper.
type EchoServer struct {
	h        *handlers.Handlers
	e        *echo.Echo
	cfg      config.Config
	sessions *scs.SessionManager
	resolver authn.PrincipalResolver
	logger   *slog.Logger
}

// NewEchoServer creates a new HTTP server.
func NewEchoServer(cfg config.Config, deps Deps) (*EchoServer, error) {
	if deps.Sessions == nil {
		return nil, errors.New("httpapp: session manager is required")
	}
	if deps.Resolver == nil {
		return nil, errors.New("httpapp: principal resolver is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h := &handlers.Handlers{
		Cfg:       cfg,
		Sessions:  deps.Sessions,
		Users:     deps.Users,
		Catalog:   deps.Catalog,
		Analytics: deps.Analytics,
		DB:        deps.DB,
	}
	es := &EchoServer{
		h:        h,
		e:        echo.New(),
		cfg:      cfg,
		sessions: deps.Sessions,
		resolver: deps.Resolver,
		logger:   logger,
	}
	es.e.Logger = logger
	es.e.HTTPErrorHandler = es.httpErrorHandler
	es.registerRoutes()
	return es, nil
}

func (es *EchoServer) registerRoutes() {
	es.e.Use(middleware.Recover())
	es.e.Use(requestid.Middleware())

	es.e.GET("/healthz", es.h.HandleHealthz)

	csrf := middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "header:" + echo.HeaderXCSRFToken + ",form:csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   es.cfg.AuthCookieSecure,
		CookieSameSite: http.SameSiteLaxMode,
	})

	pages := es.e.Group("", csrf, authn.Identify(es.resolver))
	pages.GET("/", es.h.HandleProducts)
	pages.GET("/products", es.h.HandleProducts)
	pages.GET("/products/grid", es.h.HandleProductsGrid)
	pages.GET("/login", es.h.HandleLoginGet)
	pages.POST("/login", es.h.HandleLoginPost)
	pages.POST("/logout", es.h.HandleLogoutPost)

	admin := es.e.Group("/admin", csrf, authn.Gate(es.resolver, auth.RoleIs(auth.RoleAdmin), authn.GateOptions{
		DenyPath: es.cfg.DenyRedirectPath,
		Logger:   es.logger,
	}))
	admin.GET("/analytics", es.h.HandleAnalytics)
	admin.GET("/analytics/summary", es.h.HandleAnalyticsSummary)
	admin.GET("/analytics/top-products", es.h.HandleAnalyticsTopProducts)
}

// Handler returns the router wrapped in session loading, ready for an
// http.Server.
func (es *EchoServer) Handler() http.Handler {
	return es.sessions.LoadAndSave(es.e)
}

type statusCoder interface {
	StatusCode() int
}

func httpStatusFromError(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		if code := sc.StatusCode(); code >= 400 && code <= 599 {
			return code
		}
	}
	return http.StatusInternalServerError
}

// httpErrorHandler never exposes error text: internal errors get a reference,
// everything else its status text.
func (es *EchoServer) httpErrorHandler(c *echo.Context, err error) {
	status := httpStatusFromError(err)
	switch status {
	case http.StatusInternalServerError:
		_ = es.h.RenderError(c, err)
	case http.StatusNotFound:
		_ = handlers.RenderNotFound(c)
	default:
		_ = c.String(status, http.StatusText(status))
	}
}
