package entity

import "strings"

// Language is one of the three content languages the marketplace serves.
type Language string

const (
	LangKO Language = "ko"
	LangZH Language = "zh"
	LangEN Language = "en"
)

// DefaultLanguage is the primary language; every localized field carries it.
const DefaultLanguage = LangKO

var SupportedLanguages = []Language{LangKO, LangZH, LangEN}

// ParseLanguage accepts "ko", "ZH", "zh-CN", "en_US" and the like.
func ParseLanguage(s string) (Language, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i >= 0 {
		s = s[:i]
	}
	switch Language(s) {
	case LangKO, LangZH, LangEN:
		return Language(s), true
	}
	return "", false
}

// LocalizedText holds the same semantic content in each language. Ko is
// expected to be populated; Zh and En may be empty.
type LocalizedText struct {
	Ko string `json:"ko" firestore:"ko" yaml:"ko"`
	Zh string `json:"zh,omitempty" firestore:"zh,omitempty" yaml:"zh"`
	En string `json:"en,omitempty" firestore:"en,omitempty" yaml:"en"`
}

// Uniform copies one string into all three language slots.
func Uniform(text string) LocalizedText {
	return LocalizedText{Ko: text, Zh: text, En: text}
}

// Get returns the variant for lang, or the Korean variant when that one is
// empty. There is no further fallback: a missing Korean variant yields "".
func (t LocalizedText) Get(lang Language) string {
	var v string
	switch lang {
	case LangZH:
		v = t.Zh
	case LangEN:
		v = t.En
	case LangKO:
		v = t.Ko
	}
	if v != "" {
		return v
	}
	return t.Ko
}

// Localized is implemented by every entity exposing per-language fields,
// keyed by field base name ("title", "description", ...).
type Localized interface {
	LocalizedFields() map[string]LocalizedText
}

// Resolve returns the named field of e in lang with the Korean fallback.
// Unknown field names resolve to "".
func Resolve(e Localized, base string, lang Language) string {
	if e == nil {
		return ""
	}
	field, ok := e.LocalizedFields()[base]
	if !ok {
		return ""
	}
	return field.Get(lang)
}

// ResolveAll resolves every localized field of e in lang.
func ResolveAll(e Localized, lang Language) map[string]string {
	fields := e.LocalizedFields()
	out := make(map[string]string, len(fields))
	for base, field := range fields {
		out[base] = field.Get(lang)
	}
	return out
}
