package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"alpine/translate/internal/i18n"
	"alpine/translate/internal/model"
	"alpine/translate/internal/service"
)

type TranslationHandler struct {
	service  service.TranslationService
	messages *i18n.Messages
}

type translationRequest struct {
	SourceText string `json:"source_text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type translationResponse struct {
	ID             string `json:"id"`
	SourceText     string `json:"source_text"`
	TranslatedText string `json:"translated_text"`
	SourceLang     string `json:"source_lang"`
	TargetLang     string `json:"target_lang"`
	CreatedAt      string `json:"created_at,omitempty"`
}

func NewTranslationHandler(service service.TranslationService, messages *i18n.Messages) *TranslationHandler {
	return &TranslationHandler{service: service, messages: messages}
}

func (h *TranslationHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/translate", h.Create)
	g.GET("/translations", h.List)
	g.DELETE("/translations/:id", h.Delete)
	g.PATCH("/translations/:id", h.Update)
}

// Create translates text and stores the result.
// @Summary Translate text
// @Description Ask the model for a translation and persist the record
// @Tags translations
// @Accept json
// @Produce json
// @Param request body translationRequest true "Text and language pair"
// @Success 200 {object} dataResponse[translationResponse]
// @Failure 400 {object} messageResponse
// @Failure 500 {object} messageResponse
// @Router /translate [post]
func (h *TranslationHandler) Create(c echo.Context) error {
	var req translationRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, h.messages, service.OpCreate)
	}
	created, err := h.service.Create(c.Request().Context(), req.input())
	if err != nil {
		return writeServiceError(c, h.messages, service.OpCreate, err)
	}
	return c.JSON(http.StatusOK, dataResponse[translationResponse]{Data: toTranslationResponse(created)})
}

// List returns every stored translation.
// @Summary List translations
// @Tags translations
// @Produce json
// @Success 200 {object} dataResponse[[]translationResponse]
// @Failure 500 {object} messageResponse
// @Router /translations [get]
func (h *TranslationHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, h.messages, service.OpList, err)
	}
	response := make([]translationResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toTranslationResponse(item))
	}
	return c.JSON(http.StatusOK, dataResponse[[]translationResponse]{Data: response})
}

// Update recomputes a translation for new text.
// @Summary Edit a translation
// @Description Replace the source text and language pair; the translation is recomputed
// @Tags translations
// @Accept json
// @Produce json
// @Param id path string true "Translation ID"
// @Param request body translationRequest true "Text and language pair"
// @Success 200 {object} dataResponse[translationResponse]
// @Failure 400 {object} messageResponse
// @Failure 500 {object} messageResponse
// @Router /translations/{id} [patch]
func (h *TranslationHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidRequest(c, h.messages, service.OpUpdate)
	}
	var req translationRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, h.messages, service.OpUpdate)
	}
	updated, err := h.service.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return writeServiceError(c, h.messages, service.OpUpdate, err)
	}
	return c.JSON(http.StatusOK, dataResponse[translationResponse]{Data: toTranslationResponse(updated)})
}

// Delete removes a translation. Missing ids still succeed.
// @Summary Delete a translation
// @Tags translations
// @Param id path string true "Translation ID"
// @Success 204
// @Failure 400 {object} messageResponse
// @Failure 500 {object} messageResponse
// @Router /translations/{id} [delete]
func (h *TranslationHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidRequest(c, h.messages, service.OpDelete)
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, h.messages, service.OpDelete, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (r translationRequest) input() service.TranslationInput {
	return service.TranslationInput{
		SourceText: r.SourceText,
		SourceLang: r.SourceLang,
		TargetLang: r.TargetLang,
	}
}

func toTranslationResponse(t model.Translation) translationResponse {
	resp := translationResponse{
		ID:             strconv.FormatInt(t.ID, 10),
		SourceText:     t.SourceText,
		TranslatedText: t.TranslatedText,
		SourceLang:     t.SourceLang,
		TargetLang:     t.TargetLang,
	}
	if !t.CreatedAt.IsZero() {
		resp.CreatedAt = t.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
