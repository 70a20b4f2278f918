package gemini

import (
	"context"
	"strings"
	"unicode"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/pkg/logger"
)

// FAQSource lists the canned question/answer pairs of a language.
type FAQSource interface {
	FAQ(ctx context.Context, lang entity.Language) ([]entity.FAQEntry, error)
}

// FAQAssistant is the offline assistant used when no model is configured.
// It answers questions that match a FAQ entry and cannot translate or read
// images.
type FAQAssistant struct {
	source FAQSource
}

func NewFAQAssistant(source FAQSource) *FAQAssistant {
	return &FAQAssistant{source: source}
}

func (a *FAQAssistant) GenerateReply(ctx context.Context, prompt string, lang entity.Language) string {
	entries, err := a.source.FAQ(ctx, lang)
	if err != nil {
		logger.Error("FAQ lookup failed: %v", err)
		return ReplyUnavailable
	}

	key := normalizeQuestion(prompt)
	for _, e := range entries {
		if normalizeQuestion(e.Question) == key {
			return e.Answer
		}
	}
	return ReplyEmpty
}

func (a *FAQAssistant) Translate(ctx context.Context, text string) entity.Translation {
	return entity.Translation{Zh: TranslateFailed, En: TranslateFailed}
}

func (a *FAQAssistant) ExtractAndTranslate(ctx context.Context, image []byte, mimeType string) entity.OCRResult {
	return entity.OCRResult{OriginalText: OCRFailed}
}

// normalizeQuestion lowercases s and drops whitespace and punctuation, so
// "What is this platform?" and "what is this platform" compare equal.
func normalizeQuestion(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsPunct(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}
