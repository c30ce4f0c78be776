package http

import (
	nethttp "net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "alpine/translate/docs"
	"alpine/translate/internal/handler"
)

// apiPrefixes are never answered by the static fallback.
var apiPrefixes = []string{"/translate", "/translations", "/ai", "/healthz", "/swagger"}

func NewRouter(
	translationHandler *handler.TranslationHandler,
	aiHandler *handler.AIHandler,
	errorHandler echo.HTTPErrorHandler,
	staticDir string,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	if errorHandler != nil {
		e.HTTPErrorHandler = errorHandler
	}
	e.Use(middleware.Recover())
	e.Use(RequestIDMiddleware())
	e.Use(RequestLoggerMiddleware())
	e.Use(CORSMiddleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(nethttp.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("")
	translationHandler.RegisterRoutes(api)
	if aiHandler != nil {
		aiHandler.RegisterRoutes(api)
	}

	registerStatic(e, staticDir)

	return e
}
