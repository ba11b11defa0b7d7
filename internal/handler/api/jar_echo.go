package api

import (
	"net/http"

	"AvkuWeb/internal/domain/models"
	"AvkuWeb/internal/usecase"
	xhttp "AvkuWeb/pkg/http"
	xlogger "AvkuWeb/pkg/logger"

	"github.com/labstack/echo/v4"
)

// JarEchoHandler serves jar balances and their history.
type JarEchoHandler struct {
	logger   *xlogger.Logger
	lookup   *usecase.JarLookup
	recorder *usecase.SnapshotRecorder
}

func NewJarEchoHandler(logger *xlogger.Logger, lookup *usecase.JarLookup, recorder *usecase.SnapshotRecorder) *JarEchoHandler {
	return &JarEchoHandler{logger: logger, lookup: lookup, recorder: recorder}
}

func (h *JarEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/monobank-jar", h.APIJar)
	g.GET("/monobank-jar-public", h.PublicJar)
	g.GET("/monobank-jar/history", h.History)
}

// APIJar resolves a jar through the banking API.
func (h *JarEchoHandler) APIJar(c echo.Context) error {
	return h.resolve(c, usecase.SourceAPI)
}

// PublicJar resolves a jar by scraping its public page.
func (h *JarEchoHandler) PublicJar(c echo.Context) error {
	return h.resolve(c, usecase.SourceScrape)
}

func (h *JarEchoHandler) resolve(c echo.Context, source string) error {
	req := &models.JarRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(msgMissingSendID))
	}

	jar, err := h.lookup.Resolve(c.Request().Context(), source, req.SendID)
	if err != nil {
		return h.fail(c, err, source, req.SendID)
	}

	c.Response().Header().Set(echo.HeaderCacheControl, jarCacheControl)
	return xhttp.SuccessResponse(c, jar)
}

// History lists stored snapshots of a jar, newest first.
func (h *JarEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":  msgMissingSendID,
			"fields": verr,
		})
	}

	items, err := h.recorder.History(c.Request().Context(), req.SendID, req.Limit)
	if err != nil {
		return h.fail(c, err, "history", req.SendID)
	}
	if items == nil {
		items = []*models.JarSnapshot{}
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"sendId": req.SendID,
		"items":  items,
	})
}

func (h *JarEchoHandler) fail(c echo.Context, err error, source, sendID string) error {
	appErr := jarError(err)
	if isServerSide(appErr) {
		h.logger.Error("jar lookup failed",
			xlogger.String("source", source),
			xlogger.String("send_id", sendID),
			xlogger.Int("status", appErr.Status),
			xlogger.Error(err),
		)
	}
	return xhttp.AppErrorResponse(c, appErr)
}
