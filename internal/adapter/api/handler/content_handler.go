package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/langsb16-collab/chinafood0205/internal/usecase"
	"github.com/langsb16-collab/chinafood0205/pkg/response"
)

type ContentHandler struct {
	contentUseCase *usecase.ContentUseCase
}

func NewContentHandler(contentUseCase *usecase.ContentUseCase) *ContentHandler {
	return &ContentHandler{
		contentUseCase: contentUseCase,
	}
}

func (h *ContentHandler) GetLabels(c echo.Context) error {
	lang := requestLanguage(c)

	labels, err := h.contentUseCase.Labels(c.Request().Context(), lang)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"lang":   lang,
		"labels": labels,
	})
}

func (h *ContentHandler) GetLabel(c echo.Context) error {
	key := c.Param("key")

	text, err := h.contentUseCase.Label(c.Request().Context(), key, requestLanguage(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"key":  key,
		"text": text,
	})
}

func (h *ContentHandler) GetFAQ(c echo.Context) error {
	faq, err := h.contentUseCase.FAQ(c.Request().Context(), requestLanguage(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, faq)
}

func (h *ContentHandler) GetNotices(c echo.Context) error {
	notices, err := h.contentUseCase.Notices(c.Request().Context(), requestLanguage(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, notices)
}
