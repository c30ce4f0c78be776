package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"alpine/translate/internal/i18n"
	"alpine/translate/internal/logger"
	"alpine/translate/internal/service/ai"
)

type AIHandler struct {
	provider ai.Provider
	messages *i18n.Messages
}

type aiStatusResponse struct {
	Provider string `json:"provider"`
	Reply    string `json:"reply"`
}

func NewAIHandler(provider ai.Provider, messages *i18n.Messages) *AIHandler {
	return &AIHandler{provider: provider, messages: messages}
}

func (h *AIHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/ai/status", h.Status)
}

// Status sends a short request to the configured model.
// @Summary Check the model provider
// @Description Send a short test message with the configured credentials and model
// @Tags ai
// @Produce json
// @Success 200 {object} dataResponse[aiStatusResponse]
// @Failure 502 {object} messageResponse
// @Router /ai/status [get]
func (h *AIHandler) Status(c echo.Context) error {
	reply, err := h.provider.Test(c.Request().Context())
	if err != nil {
		logger.Warn("ai status failed", "module", "handler", "action", "test", "resource", "ai", "result", "failed", "provider", h.provider.Name(), "error", err)
		return c.JSON(http.StatusBadGateway, messageResponse{Message: h.messages.T(acceptLanguage(c), i18n.MsgInternal)})
	}
	return c.JSON(http.StatusOK, dataResponse[aiStatusResponse]{Data: aiStatusResponse{
		Provider: h.provider.Name(),
		Reply:    reply,
	}})
}
