package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	appmw "equestrian/internal/middleware"
	httprouters "equestrian/internal/transport/http"
	"equestrian/internal/transport/http/dto/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Options struct {
	Host      string
	Port      string
	Timeout   time.Duration
	LoginRate float64
	MediaDir  string
	MediaURL  string
}

type Server struct {
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	auth    echo.MiddlewareFunc
	opts    Options
}

func New(log *slog.Logger, opts Options, routers *httprouters.Routers, auth echo.MiddlewareFunc) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = &CustomValidator{validator: validator.New()}

	if opts.Timeout > 0 {
		e.Server.ReadTimeout = opts.Timeout
		e.Server.WriteTimeout = opts.Timeout
	}

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Use(middleware.Recover())
	e.Use(appmw.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogMethod:   true,
		LogLatency:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
			)

			return nil
		},
	}))

	return &Server{
		log:     log,
		e:       e,
		routers: routers,
		auth:    auth,
		opts:    opts,
	}
}

// Handler отдает echo для тестов
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"), slog.String("addr", s.addr()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) addr() string {
	return fmt.Sprintf("%s:%s", s.opts.Host, s.opts.Port)
}

// loginLimiter ограничивает попытки входа по IP клиента
func (s *Server) loginLimiter() echo.MiddlewareFunc {
	limit := rate.Limit(s.opts.LoginRate)
	if s.opts.LoginRate <= 0 {
		limit = rate.Limit(1)
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      limit,
			Burst:     5,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, response.ErrForbidden)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			s.log.Warn("login rate limit exceeded", slog.String("remote ip", identifier))
			return c.JSON(http.StatusTooManyRequests, response.ErrorResponseWithDetails(
				"too_many_requests", "Too many login attempts, try again later",
			))
		},
	})
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echoprometheus.NewHandler())
	s.e.GET("/swagger/*", echoSwagger.WrapHandler)

	if s.opts.MediaDir != "" && s.opts.MediaURL != "" {
		s.e.Static(s.opts.MediaURL, s.opts.MediaDir)
	}

	api := s.e.Group("/api/v1", s.auth)
	{
		auth := api.Group("/auth")
		{
			auth.POST("/token", s.routers.Login, s.loginLimiter())
			auth.POST("/refresh", s.routers.Refresh)
			auth.POST("/logout", s.routers.Logout)
			auth.GET("/me", s.routers.Me, appmw.RequireAuth)
		}

		users := api.Group("/users")
		{
			users.POST("", s.routers.CreateUser, appmw.RequireAdmin)
			users.GET("/:user_id", s.routers.GetUser, appmw.RequireAdmin)
			users.GET("/:user_id/is-admin", s.routers.IsAdmin, appmw.RequireAuth)
		}

		horses := api.Group("/horses")
		{
			horses.GET("", s.routers.ListHorses)
			horses.POST("", s.routers.CreateHorse, appmw.RequireModerator)
			horses.GET("/:id", s.routers.GetHorse)
			horses.PATCH("/:id", s.routers.UpdateHorse, appmw.RequireModerator)
			horses.DELETE("/:id", s.routers.DeleteHorse, appmw.RequireModerator)

			horses.GET("/:id/pedigree/:mode", s.routers.PedigreeCandidates, appmw.RequireModerator)
			horses.POST("/:id/pedigree/:mode", s.routers.AttachPedigree, appmw.RequireModerator)
			horses.DELETE("/:id/pedigree/:mode", s.routers.DetachPedigree, appmw.RequireModerator)
		}

		breeds := api.Group("/breeds")
		{
			breeds.GET("", s.routers.ListBreeds)
			breeds.POST("", s.routers.CreateBreed, appmw.RequireModerator)
			breeds.GET("/:id", s.routers.GetBreed)
			breeds.PATCH("/:id", s.routers.UpdateBreed, appmw.RequireModerator)
			breeds.DELETE("/:id", s.routers.DeleteBreed, appmw.RequireModerator)
		}

		owners := api.Group("/owners")
		{
			owners.GET("", s.routers.ListOwners)
			owners.POST("", s.routers.CreateOwner, appmw.RequireModerator)
			owners.GET("/:id", s.routers.GetOwner)
			owners.PATCH("/:id", s.routers.UpdateOwner, appmw.RequireModerator)
			owners.DELETE("/:id", s.routers.DeleteOwner, appmw.RequireModerator)
		}

		photos := api.Group("/photos")
		{
			photos.GET("", s.routers.ListPhotos)
			photos.POST("", s.routers.UploadPhoto, appmw.RequireModerator)
			photos.GET("/categories", s.routers.ListPhotoCategories)
			photos.POST("/categories", s.routers.CreatePhotoCategory, appmw.RequireModerator)
			photos.DELETE("/categories/:id", s.routers.DeletePhotoCategory, appmw.RequireModerator)
			photos.GET("/:id", s.routers.GetPhoto)
			photos.PATCH("/:id", s.routers.UpdatePhoto, appmw.RequireModerator)
			photos.DELETE("/:id", s.routers.DeletePhoto, appmw.RequireModerator)
		}

		info := api.Group("/info")
		{
			info.GET("", s.routers.ListInfo)
			info.POST("", s.routers.CreateInfo, appmw.RequireAdmin)
			info.GET("/:id", s.routers.GetInfo, appmw.RequireAdmin)
			info.PATCH("/:id", s.routers.UpdateInfo, appmw.RequireAdmin)
			info.DELETE("/:id", s.routers.DeleteInfo, appmw.RequireAdmin)
		}

		contacts := api.Group("/contacts")
		{
			contacts.GET("", s.routers.ListContacts)
			contacts.POST("", s.routers.CreateContact, appmw.RequireAdmin)

			contacts.GET("/groups", s.routers.ListContactGroups, appmw.RequireAdmin)
			contacts.POST("/groups", s.routers.CreateContactGroup, appmw.RequireAdmin)
			contacts.GET("/groups/:id", s.routers.GetContactGroup, appmw.RequireAdmin)
			contacts.PATCH("/groups/:id", s.routers.UpdateContactGroup, appmw.RequireAdmin)
			contacts.DELETE("/groups/:id", s.routers.DeleteContactGroup, appmw.RequireAdmin)

			contacts.GET("/:id", s.routers.GetContact, appmw.RequireAdmin)
			contacts.PATCH("/:id", s.routers.UpdateContact, appmw.RequireAdmin)
			contacts.DELETE("/:id", s.routers.DeleteContact, appmw.RequireAdmin)
		}
	}
}
