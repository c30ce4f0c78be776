package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"alpine/translate/internal/i18n"
	"alpine/translate/internal/logger"
	"alpine/translate/internal/service"
)

type messageResponse struct {
	Message string `json:"message"`
}

type dataResponse[T any] struct {
	Data T `json:"data"`
}

// writeServiceError maps a service error to a status and a localized message.
// Causes of 5xx responses are logged, never returned to the client.
func writeServiceError(c echo.Context, messages *i18n.Messages, op service.Op, err error) error {
	var opErr *service.OperationError
	if errors.As(err, &opErr) {
		op = opErr.Op
	}

	status := http.StatusInternalServerError
	kind := i18n.KindOther
	switch {
	case errors.Is(err, service.ErrInvalid):
		status = http.StatusBadRequest
		kind = i18n.KindInvalid
	case errors.Is(err, service.ErrUpstream):
		kind = i18n.KindUpstream
	case errors.Is(err, service.ErrPersistence):
		kind = i18n.KindPersistence
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "module", "handler", "action", string(op), "resource", "translation", "result", "failed", "kind", kind, "error", err)
	}
	return c.JSON(status, messageResponse{Message: messages.Operation(acceptLanguage(c), string(op), kind)})
}

// HTTPErrorHandler answers errors raised outside the handlers (unknown route,
// wrong method, recovered panic) with the same message envelope.
func HTTPErrorHandler(messages *i18n.Messages) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
		}

		var message string
		switch {
		case status == http.StatusNotFound:
			message = messages.T(acceptLanguage(c), i18n.MsgNotFound)
		case status >= http.StatusInternalServerError:
			logger.Error("request failed", "module", "handler", "action", "request", "resource", "http", "result", "failed", "path", c.Request().URL.Path, "error", err)
			message = messages.T(acceptLanguage(c), i18n.MsgInternal)
		default:
			message = http.StatusText(status)
			if text, ok := httpErr.Message.(string); ok && text != "" {
				message = text
			}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, messageResponse{Message: message})
		}
		if err != nil {
			logger.Warn("error response failed", "module", "handler", "action", "request", "resource", "http", "result", "failed", "error", err)
		}
	}
}

// invalidRequest answers 400 with the operation's validation message.
func invalidRequest(c echo.Context, messages *i18n.Messages, op service.Op) error {
	return c.JSON(http.StatusBadRequest, messageResponse{Message: messages.Operation(acceptLanguage(c), string(op), i18n.KindInvalid)})
}

func acceptLanguage(c echo.Context) string {
	return c.Request().Header.Get("Accept-Language")
}
