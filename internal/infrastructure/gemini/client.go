package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/genai"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/pkg/logger"
)

// Replies used when the model cannot be reached or says nothing.
const (
	ReplyUnavailable = "Error connecting to AI assistant."
	ReplyEmpty       = "Sorry, I couldn't process that."
	TranslateFailed  = "Error"
	OCRFailed        = "OCR Failed"
)

const (
	replyInstruction = `You are a helpful assistant for "C-Korea Connect", a platform helping people find Chinese-friendly businesses in South Korea.
Respond in the user's requested language: %s.
Available categories: 餐饮 (Food), 娱乐 (Entertainment), 购物 (Shopping), 便民 (Services).
Be polite, informative, and concise.`
	translateInstruction = "You are a professional translator. Always return JSON."
	translatePrompt      = `Translate the following Korean text into Chinese (Simplified) and English: "%s"`
	ocrInstruction       = "Extract text from image and provide translations in JSON format."
	ocrPrompt            = "Please perform OCR on this image, extract any business-related text (like menu items or store names), and translate them into Chinese (Simplified) and English."
)

// contentGenerator is the slice of *genai.Models the client needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client answers assistant requests with a hosted Gemini model. None of its
// methods fail: errors are logged and replaced by fixed fallback values.
type Client struct {
	models contentGenerator
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return newClient(client.Models, model), nil
}

func newClient(models contentGenerator, model string) *Client {
	return &Client{models: models, model: model}
}

func (c *Client) GenerateReply(ctx context.Context, prompt string, lang entity.Language) string {
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(fmt.Sprintf(replyInstruction, lang), genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
	})
	if err != nil {
		logger.Error("Gemini reply failed: %v", err)
		return ReplyUnavailable
	}

	text := strings.TrimSpace(collectPartsText(resp))
	if text == "" {
		return ReplyEmpty
	}
	return text
}

func (c *Client) Translate(ctx context.Context, text string) entity.Translation {
	fallback := entity.Translation{Zh: TranslateFailed, En: TranslateFailed}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(fmt.Sprintf(translatePrompt, text)), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(translateInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    objectSchema("zh", "en"),
	})
	if err != nil {
		logger.Error("Gemini translate failed: %v", err)
		return fallback
	}

	var out entity.Translation
	if err := decodeJSON(collectPartsText(resp), &out); err != nil {
		logger.Warn("Gemini translate returned unusable output: %v", err)
		return fallback
	}
	return out
}

func (c *Client) ExtractAndTranslate(ctx context.Context, image []byte, mimeType string) entity.OCRResult {
	fallback := entity.OCRResult{OriginalText: OCRFailed}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(ocrPrompt),
		}, genai.RoleUser),
	}
	resp, err := c.models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(ocrInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    objectSchema("originalText", "chineseText", "englishText"),
	})
	if err != nil {
		logger.Error("Gemini OCR failed: %v", err)
		return fallback
	}

	var out entity.OCRResult
	if err := decodeJSON(collectPartsText(resp), &out); err != nil {
		logger.Warn("Gemini OCR returned unusable output: %v", err)
		return fallback
	}
	return out
}

// objectSchema describes a flat object whose listed properties are all
// required strings.
func objectSchema(fields ...string) *genai.Schema {
	props := make(map[string]*genai.Schema, len(fields))
	for _, f := range fields {
		props[f] = &genai.Schema{Type: genai.TypeString}
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: props,
		Required:   fields,
	}
}

func collectPartsText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

var codeFence = regexp.MustCompile("```(?:json)?\\s*")

// extractJSON strips markdown fences and returns the outermost object.
func extractJSON(text string) string {
	text = codeFence.ReplaceAllString(text, "")
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return strings.TrimSpace(text[start : end+1])
	}
	return strings.TrimSpace(text)
}

func decodeJSON(text string, out interface{}) error {
	raw := extractJSON(text)
	if raw == "" {
		return fmt.Errorf("empty response")
	}
	return json.Unmarshal([]byte(raw), out)
}
