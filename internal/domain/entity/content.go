package entity

import "time"

// FAQEntry is one canned question/answer pair shown in the assistant panel.
type FAQEntry struct {
	Question string `json:"q" yaml:"q"`
	Answer   string `json:"a" yaml:"a"`
}

type Notice struct {
	ID        string        `json:"id" yaml:"id"`
	Title     LocalizedText `json:"title" yaml:"title"`
	Content   LocalizedText `json:"content" yaml:"content"`
	CreatedAt time.Time     `json:"created_at" yaml:"created_at"`
}

func (n *Notice) LocalizedFields() map[string]LocalizedText {
	return map[string]LocalizedText{
		"title":   n.Title,
		"content": n.Content,
	}
}

// Translation is the secondary/tertiary rendering of Korean source text.
type Translation struct {
	Zh string `json:"zh"`
	En string `json:"en"`
}

// OCRResult is text extracted from an image plus its translations.
type OCRResult struct {
	OriginalText string `json:"originalText"`
	ChineseText  string `json:"chineseText"`
	EnglishText  string `json:"englishText"`
}
