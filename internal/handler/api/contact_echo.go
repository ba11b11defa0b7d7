package api

import (
	"errors"
	"net/http"

	"AvkuWeb/internal/domain/models"
	"AvkuWeb/internal/service/telegram"
	"AvkuWeb/internal/usecase"
	xhttp "AvkuWeb/pkg/http"
	xlogger "AvkuWeb/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ContactEchoHandler forwards contact form submissions.
type ContactEchoHandler struct {
	logger  *xlogger.Logger
	contact *usecase.ContactForwarder
}

func NewContactEchoHandler(logger *xlogger.Logger, contact *usecase.ContactForwarder) *ContactEchoHandler {
	return &ContactEchoHandler{logger: logger, contact: contact}
}

func (h *ContactEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/send-telegram", h.Send)
}

// Send validates the form and forwards it to the bot.
func (h *ContactEchoHandler) Send(c echo.Context) error {
	req := &models.ContactRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ResultResponse(c, http.StatusBadRequest, xhttp.ResultBody{
			Error:  msgContactRequired,
			Fields: verr,
		})
	}

	err := h.contact.Send(c.Request().Context(), req.ToMessage())
	switch {
	case err == nil:
		return xhttp.ResultResponse(c, http.StatusOK, xhttp.ResultBody{Success: true, Message: msgContactSent})
	case errors.Is(err, models.ErrMissingFields):
		return xhttp.ResultResponse(c, http.StatusBadRequest, xhttp.ResultBody{Error: msgContactRequired})
	case telegram.IsAPIError(err), errors.Is(err, models.ErrNotConfigured):
		// An unconfigured bot is what the Bot API would reject anyway.
		h.logger.Error("telegram rejected message", xlogger.Error(err))
		return xhttp.ResultResponse(c, http.StatusInternalServerError, xhttp.ResultBody{Error: msgContactRejected})
	default:
		h.logger.Error("telegram send error", xlogger.Error(err))
		return xhttp.ResultResponse(c, http.StatusInternalServerError, xhttp.ResultBody{Error: msgContactInternal})
	}
}
