package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/langsb16-collab/chinafood0205/internal/usecase"
	"github.com/langsb16-collab/chinafood0205/pkg/errors"
	"github.com/langsb16-collab/chinafood0205/pkg/response"
)

type AssistantHandler struct {
	assistantUseCase *usecase.AssistantUseCase
}

func NewAssistantHandler(assistantUseCase *usecase.AssistantUseCase) *AssistantHandler {
	return &AssistantHandler{
		assistantUseCase: assistantUseCase,
	}
}

type translateRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
}

func (h *AssistantHandler) Translate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	translation, err := h.assistantUseCase.Translate(c.Request().Context(), userID, req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, translation)
}

// ExtractText runs OCR on the multipart "image" upload.
func (h *AssistantHandler) ExtractText(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return response.Error(c, errors.Validation("image", "is required"))
	}
	if file.Size > usecase.MaxOCRImageBytes {
		return response.Error(c, errors.Validation("image", "must not exceed 5MB"))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to open uploaded image", err))
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, usecase.MaxOCRImageBytes+1))
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read uploaded image", err))
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}

	userID := c.Get("uid").(string)

	result, err := h.assistantUseCase.ExtractText(c.Request().Context(), userID, data, mimeType)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}
