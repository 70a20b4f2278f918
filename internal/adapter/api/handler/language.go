package handler

import (
	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
)

// Same order as entity.SupportedLanguages; the first tag is the default.
var languageMatcher = language.NewMatcher([]language.Tag{
	language.Korean,
	language.Chinese,
	language.English,
})

// requestLanguage picks the content language: ?lang= wins, then the
// Accept-Language header, then Korean.
func requestLanguage(c echo.Context) entity.Language {
	if lang, ok := entity.ParseLanguage(c.QueryParam("lang")); ok {
		return lang
	}

	header := c.Request().Header.Get("Accept-Language")
	if header == "" {
		return entity.DefaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return entity.DefaultLanguage
	}
	_, index, confidence := languageMatcher.Match(tags...)
	if confidence == language.No {
		return entity.DefaultLanguage
	}
	return entity.SupportedLanguages[index]
}
