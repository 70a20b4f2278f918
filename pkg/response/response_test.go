package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/langsb16-collab/chinafood0205/pkg/errors"
)

func render(t *testing.T, err error) (int, ErrorInfo) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, Error(c, err))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.False(t, body.Success)
	return rec.Code, *body.Error
}

func TestError_HTTPErrorCodeFollowsStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"body limit", echo.ErrStatusRequestEntityTooLarge, http.StatusRequestEntityTooLarge, "REQUEST_ENTITY_TOO_LARGE"},
		{"binder media type", echo.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE"},
		{"unknown route", echo.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"malformed body", echo.NewHTTPError(http.StatusBadRequest, "Syntax error: offset=3"), http.StatusBadRequest, "BAD_REQUEST"},
		{"server side", echo.NewHTTPError(http.StatusBadGateway), http.StatusBadGateway, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, info := render(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, info.Code)
		})
	}
}

func TestError_HTTPErrorKeepsMessage(t *testing.T) {
	_, info := render(t, echo.NewHTTPError(http.StatusBadRequest, "Syntax error: offset=3"))

	assert.Equal(t, "Syntax error: offset=3", info.Message)
}

func TestError_AppError(t *testing.T) {
	status, info := render(t, apperrors.NotFound("Chat session", nil))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", info.Code)
}
