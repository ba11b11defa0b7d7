package api

import (
	"net/http"
	"strings"

	xhttp "AvkuWeb/pkg/http"

	"github.com/labstack/echo/v4"
)

const diagnosticText = "API is running. Use /api/send-telegram (POST) and /api/monobank-jar?sendId=... (GET)"

// DispatchHandler routes every request without an explicit route by method and shape:
// GET naming a jar goes to the API resolver, any POST is a contact submission.
type DispatchHandler struct {
	jar     *JarEchoHandler
	contact *ContactEchoHandler
	site    *SiteEchoHandler
}

// NewDispatchHandler creates the catch-all router. site may be nil.
func NewDispatchHandler(jar *JarEchoHandler, contact *ContactEchoHandler, site *SiteEchoHandler) *DispatchHandler {
	return &DispatchHandler{jar: jar, contact: contact, site: site}
}

func (h *DispatchHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api", h.Diagnostic)
	e.Any("/*", h.Dispatch)
}

// Diagnostic is a plain liveness text. A sendId query still resolves the jar,
// since serverless platforms mount the whole router at /api.
func (h *DispatchHandler) Diagnostic(c echo.Context) error {
	if c.QueryParams().Has("sendId") {
		return h.jar.APIJar(c)
	}
	return c.String(http.StatusOK, diagnosticText)
}

func (h *DispatchHandler) Dispatch(c echo.Context) error {
	req := c.Request()
	p := req.URL.Path

	switch req.Method {
	case http.MethodGet:
		if strings.HasSuffix(p, "/monobank-jar") || c.QueryParams().Has("sendId") {
			return h.jar.APIJar(c)
		}
		if p == "/" || p == "/index.html" {
			if h.site == nil {
				return h.Diagnostic(c)
			}
			return h.site.Page(c)
		}
		if h.site != nil {
			if served, err := h.site.Asset(c); served || err != nil {
				return err
			}
		}
	case http.MethodPost:
		return h.contact.Send(c)
	}

	return xhttp.ResultResponse(c, http.StatusMethodNotAllowed, xhttp.ResultBody{Error: msgMethodNotAllowed})
}
