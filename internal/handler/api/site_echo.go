package api

import (
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"AvkuWeb/internal/service/i18n"
	"AvkuWeb/internal/usecase"
	xlogger "AvkuWeb/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	LangCookie    = "avku_lang"
	langCookieAge = 365 * 24 * time.Hour
)

// SiteEchoHandler serves the personalized page, dictionaries and static assets.
type SiteEchoHandler struct {
	logger       *xlogger.Logger
	personalizer *usecase.Personalizer
	site         fs.FS
}

func NewSiteEchoHandler(logger *xlogger.Logger, personalizer *usecase.Personalizer, site fs.FS) *SiteEchoHandler {
	return &SiteEchoHandler{logger: logger, personalizer: personalizer, site: site}
}

func (h *SiteEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/lang/:file", h.Dictionary)
}

// Page renders the site for the visitor's language and persists the choice in a cookie.
func (h *SiteEchoHandler) Page(c echo.Context) error {
	req := usecase.PersonalizeRequest{
		Lang:           c.QueryParam("lang"),
		AcceptLanguage: c.Request().Header.Get("Accept-Language"),
		NavOpen:        c.QueryParam("nav") == "open",
	}
	if ck, err := c.Cookie(LangCookie); err == nil {
		req.Cookie = ck.Value
	}

	res, err := h.personalizer.Render(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("page render failed", xlogger.Error(err))
		return c.String(http.StatusInternalServerError, "Server error")
	}
	if res.DictErr != nil {
		h.logger.Warn("page served untranslated",
			xlogger.String("lang", res.Lang),
			xlogger.Error(res.DictErr),
		)
	}

	c.SetCookie(&http.Cookie{
		Name:     LangCookie,
		Value:    res.Lang,
		Path:     "/",
		MaxAge:   int(langCookieAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	c.Response().Header().Add(echo.HeaderVary, "Accept-Language, Cookie")
	return c.HTMLBlob(http.StatusOK, res.HTML)
}

// Dictionary serves lang/<code>.json without caching.
func (h *SiteEchoHandler) Dictionary(c echo.Context) error {
	file := c.Param("file")
	code := strings.TrimSuffix(file, ".json")
	if code == file || !i18n.ValidCode(code) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}

	b, err := fs.ReadFile(h.site, i18n.DictionaryPath(code))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, b)
}

// Asset serves a static file from the site directory. It reports false when no such file exists.
func (h *SiteEchoHandler) Asset(c echo.Context) (bool, error) {
	name := strings.TrimPrefix(path.Clean("/"+c.Request().URL.Path), "/")
	if name == "" || !fs.ValidPath(name) {
		return false, nil
	}

	b, err := fs.ReadFile(h.site, name)
	if err != nil {
		// missing files and directories
		return false, nil
	}

	ct := mime.TypeByExtension(path.Ext(name))
	if ct == "" {
		ct = http.DetectContentType(b)
	}
	return true, c.Blob(http.StatusOK, ct, b)
}
