package api

import (
	"errors"
	"fmt"
	"net/http"

	"AvkuWeb/internal/domain/models"
	xhttp "AvkuWeb/pkg/http"
)

const (
	msgMissingSendID    = "Missing sendId"
	msgJarNotFound      = "Jar not found for sendId"
	msgScrapeFailed     = "Scrape failed"
	msgServerError      = "Server error"
	msgSourceDisabled   = "Jar source is not enabled"
	msgHistoryDisabled  = "History is not enabled"
	msgMethodNotAllowed = "Method Not Allowed"

	msgContactRequired = "Всі поля є обовʼязковими для заповнення"
	msgContactSent     = "Повідомлення успішно надіслано!"
	msgContactRejected = "Помилка при відправці в Telegram."
	msgContactInternal = "Внутрішня помилка сервера."

	jarCacheControl = "public, max-age=30, s-maxage=60"
)

// jarError maps lookup failures to the HTTP error contract of the jar endpoints.
func jarError(err error) *xhttp.AppError {
	var (
		cfgErr *models.ConfigError
		upErr  *models.UpstreamError
	)
	switch {
	case errors.Is(err, models.ErrMissingSendID):
		return xhttp.BadRequestError(msgMissingSendID)
	case errors.Is(err, models.ErrJarNotFound):
		return xhttp.NotFoundError(msgJarNotFound)
	case errors.Is(err, models.ErrUnknownSource):
		return xhttp.NotFoundError(msgSourceDisabled)
	case errors.Is(err, models.ErrHistoryDisabled):
		return xhttp.NotFoundError(msgHistoryDisabled)
	case errors.As(err, &cfgErr):
		return xhttp.InternalErrorf("Server is not configured (%s)", cfgErr.Setting)
	case errors.As(err, &upErr):
		switch {
		case upErr.Service == "scrape":
			return xhttp.BadGatewayError(msgScrapeFailed).WithError(upErr.Err)
		case upErr.Status != 0:
			return xhttp.BadGatewayError(fmt.Sprintf("Monobank error: %d", upErr.Status))
		default:
			return xhttp.InternalError(msgServerError).WithError(upErr.Err)
		}
	default:
		return xhttp.InternalError(msgServerError).WithError(err)
	}
}

func isServerSide(e *xhttp.AppError) bool {
	return e.Status >= http.StatusInternalServerError
}
