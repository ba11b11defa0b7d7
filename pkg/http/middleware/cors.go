package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	AllowOrigins []string
	AllowMethods []string
	AllowHeaders []string
	// PreflightStatus is written for OPTIONS requests. Defaults to 200.
	PreflightStatus int
}

// DefaultCORSConfig is the open policy used by the public API.
var DefaultCORSConfig = CORSConfig{
	AllowOrigins:    []string{"*"},
	AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	AllowHeaders:    []string{echo.HeaderContentType},
	PreflightStatus: http.StatusOK,
}

// CORS returns CORS middleware. Preflight requests are answered on every path
// and never reach the route handler.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	if cfg.PreflightStatus == 0 {
		cfg.PreflightStatus = http.StatusOK
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			origin := c.Request().Header.Get(echo.HeaderOrigin)

			if allowed := allowOrigin(cfg.AllowOrigins, origin); allowed != "" {
				h.Set(echo.HeaderAccessControlAllowOrigin, allowed)
			}
			if len(cfg.AllowMethods) > 0 {
				h.Set(echo.HeaderAccessControlAllowMethods, strings.Join(cfg.AllowMethods, ", "))
			}
			if len(cfg.AllowHeaders) > 0 {
				h.Set(echo.HeaderAccessControlAllowHeaders, strings.Join(cfg.AllowHeaders, ", "))
			}

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(cfg.PreflightStatus)
			}

			return next(c)
		}
	}
}

func allowOrigin(allowed []string, origin string) string {
	for _, o := range allowed {
		if o == "*" {
			return "*"
		}
		if origin != "" && o == origin {
			return origin
		}
	}
	return ""
}
