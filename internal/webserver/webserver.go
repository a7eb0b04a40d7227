package webserver

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/minitill/minitill/internal/app"
)

// Server serves the till screen: gallery, cart, checkout and the
// password-gated add-product panel.
type Server struct {
	app  app.AppContext
	echo *echo.Echo
}

func NewServer(a app.AppContext) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = newRenderer()

	e.Use(middleware.Recover())
	e.Use(requestLogger())

	cookieStore := sessions.NewCookieStore([]byte(a.Config().Server.SessionSecret))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
	}
	e.Use(session.Middleware(cookieStore))

	s := &Server{app: a, echo: e}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/", s.index)
	s.echo.POST("/cart/add", s.addToCart)
	s.echo.POST("/cart/clear", s.clearCart)
	s.echo.POST("/checkout", s.checkout)
	s.echo.POST("/admin/unlock", s.adminUnlock)
	s.echo.POST("/admin/lock", s.adminLock)
	s.echo.POST("/admin/products", s.adminAddProduct)
	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

// Echo exposes the underlying router (used in tests).
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) Start() error {
	addr := s.app.Config().Server.Addr()
	zap.L().Info("webserver starting", zap.String("address", addr))
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Debug("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	})
}
