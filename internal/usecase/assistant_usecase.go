package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/internal/infrastructure/ratelimit"
	"github.com/langsb16-collab/chinafood0205/pkg/errors"
	"github.com/langsb16-collab/chinafood0205/pkg/logger"
)

const MaxOCRImageBytes = 5 << 20

// AssistantUseCase exposes translation and OCR of the assistant outside of
// chat sessions.
type AssistantUseCase struct {
	assistant   Assistant
	rateLimiter RateLimiter
	timeout     time.Duration
}

func NewAssistantUseCase(assistant Assistant, rateLimiter RateLimiter, timeout time.Duration) *AssistantUseCase {
	if timeout <= 0 {
		timeout = DefaultAssistantTimeout
	}
	return &AssistantUseCase{
		assistant:   assistant,
		rateLimiter: rateLimiter,
		timeout:     timeout,
	}
}

// Translate renders Korean text in Chinese and English.
func (uc *AssistantUseCase) Translate(ctx context.Context, userID, text string) (entity.Translation, error) {
	if strings.TrimSpace(text) == "" {
		return entity.Translation{}, errors.Validation("text", "is required")
	}
	if err := uc.allow(userID); err != nil {
		return entity.Translation{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	return uc.assistant.Translate(ctx, text), nil
}

// ExtractText reads business text off an image and translates it.
func (uc *AssistantUseCase) ExtractText(ctx context.Context, userID string, image []byte, mimeType string) (entity.OCRResult, error) {
	if len(image) == 0 {
		return entity.OCRResult{}, errors.Validation("image", "is required")
	}
	if len(image) > MaxOCRImageBytes {
		return entity.OCRResult{}, errors.Validation("image", "must not exceed 5MB")
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return entity.OCRResult{}, errors.Validation("image", "must be an image")
	}
	if err := uc.allow(userID); err != nil {
		return entity.OCRResult{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	return uc.assistant.ExtractAndTranslate(ctx, image, mimeType), nil
}

func (uc *AssistantUseCase) allow(userID string) error {
	if uc.rateLimiter == nil {
		return nil
	}
	if ok, wait := uc.rateLimiter.Allow(userID, ratelimit.ActionAssistant); !ok {
		logger.Warn("Assistant Rate Limited: User %s", userID)
		return errors.TooManyRequests(fmt.Sprintf("Rate limit exceeded. Please wait %v", wait.Round(time.Second)))
	}
	return nil
}
