package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
)

func TestRequestLanguage(t *testing.T) {
	tests := []struct {
		name   string
		target string
		accept string
		want   entity.Language
	}{
		{"default", "/", "", entity.LangKO},
		{"query wins", "/?lang=en", "zh-CN", entity.LangEN},
		{"query with region", "/?lang=zh-TW", "", entity.LangZH},
		{"accept language chinese", "/", "zh-CN,zh;q=0.9,en;q=0.8", entity.LangZH},
		{"accept language english", "/", "en-US,en;q=0.9", entity.LangEN},
		{"unsupported falls back to korean", "/", "ja-JP", entity.LangKO},
		{"bad query ignored", "/?lang=xx", "en", entity.LangEN},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			assert.Equal(t, tt.want, requestLanguage(c))
		})
	}
}
