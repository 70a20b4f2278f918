package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langsb16-collab/chinafood0205/internal/adapter/api"
	"github.com/langsb16-collab/chinafood0205/internal/adapter/api/handler"
	"github.com/langsb16-collab/chinafood0205/internal/adapter/api/middleware"
	"github.com/langsb16-collab/chinafood0205/internal/adapter/repository"
	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/internal/infrastructure/gemini"
	"github.com/langsb16-collab/chinafood0205/internal/infrastructure/websocket"
	"github.com/langsb16-collab/chinafood0205/internal/usecase"
)

const testMeID = "me-777"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type page struct {
	Items json.RawMessage `json:"items"`
	Total int64           `json:"total"`
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	contentRepo, err := repository.NewStaticContentRepository()
	require.NoError(t, err)

	userRepo := repository.NewMemoryUserRepository(
		entity.UserProfile{ID: testMeID, Name: "홍길동", PenaltyLevel: entity.PenaltyNone},
		entity.UserProfile{ID: "seller-42", Name: "왕씨", PenaltyLevel: entity.PenaltyNone},
		entity.UserProfile{ID: "bad-user", Name: "spam", PenaltyLevel: entity.PenaltyBlocked},
	)
	assistant := gemini.NewFAQAssistant(contentRepo)
	wsManager := websocket.NewManager()

	profileUseCase := usecase.NewProfileUseCase(userRepo, nil)
	handler.Setup(
		usecase.NewChatUseCase(repository.NewMemoryChatRepository(), profileUseCase, assistant, wsManager, nil, time.Second),
		usecase.NewListingUseCase(repository.NewMemoryListingRepository(), profileUseCase, nil),
		usecase.NewAssistantUseCase(assistant, nil, time.Second),
		usecase.NewContentUseCase(contentRepo),
		profileUseCase,
	)
	handler.SetupHealthHandler(nil)

	e := echo.New()
	e.Validator = api.NewValidator()
	Setup(e,
		middleware.NewDevAuthMiddleware(testMeID),
		middleware.NewPenaltyMiddleware(userRepo),
		handler.NewWebSocketHandler(wsManager, nil),
	)
	return e
}

func do(t *testing.T, e *echo.Echo, method, target string, body interface{}, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestHealthCheck(t *testing.T) {
	e := newTestServer(t)

	rec, _ := do(t, e, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Server is running")

	rec, _ = do(t, e, http.MethodGet, "/health/deps", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStartChat_CreatedThenReused(t *testing.T) {
	e := newTestServer(t)
	body := map[string]string{
		"counterparty_id":   "seller-42",
		"counterparty_name": "왕씨",
		"type":              "TRADE",
		"related_id":        "item-9",
	}

	rec, env := do(t, e, http.MethodPost, "/v1/chats", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var first entity.ChatSession
	require.NoError(t, json.Unmarshal(env.Data, &first))
	assert.Equal(t, []string{testMeID, "seller-42"}, first.Participants)

	rec, env = do(t, e, http.MethodPost, "/v1/chats", body)
	require.Equal(t, http.StatusOK, rec.Code)
	var again entity.ChatSession
	require.NoError(t, json.Unmarshal(env.Data, &again))
	assert.Equal(t, first.ID, again.ID)

	rec, env = do(t, e, http.MethodGet, "/v1/chats?type=TRADE", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list page
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, int64(1), list.Total)
}

func TestStartChat_Validation(t *testing.T) {
	e := newTestServer(t)

	rec, env := do(t, e, http.MethodPost, "/v1/chats", map[string]string{"type": "TRADE"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	rec, _ = do(t, e, http.MethodPost, "/v1/chats", map[string]string{"counterparty_id": "x", "type": "DATING"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAIChat_RepliesFromFAQ(t *testing.T) {
	e := newTestServer(t)

	rec, env := do(t, e, http.MethodPost, "/v1/chats?lang=en", map[string]string{"type": "AI"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var session entity.ChatSession
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, "AI Chatbot", session.TargetName)

	rec, env = do(t, e, http.MethodPost, "/v1/chats/"+session.ID+"/messages?lang=en", map[string]string{"text": "what is this platform"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var sent struct {
		Messages []entity.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sent))
	require.Len(t, sent.Messages, 2)
	assert.Equal(t, entity.BotID, sent.Messages[1].SenderID)
	assert.Contains(t, sent.Messages[1].Text, "multilingual super app")

	rec, env = do(t, e, http.MethodGet, "/v1/chats/"+session.ID+"/messages", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var transcript page
	require.NoError(t, json.Unmarshal(env.Data, &transcript))
	assert.Equal(t, int64(2), transcript.Total)
}

func TestChat_OtherUsersCannotRead(t *testing.T) {
	e := newTestServer(t)

	_, env := do(t, e, http.MethodPost, "/v1/chats", map[string]string{"counterparty_id": "seller-42", "type": "SUPPORT"})
	var session entity.ChatSession
	require.NoError(t, json.Unmarshal(env.Data, &session))

	rec, env := do(t, e, http.MethodGet, "/v1/chats/"+session.ID, nil, middleware.DevUserHeader, "intruder")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	rec, _ = do(t, e, http.MethodGet, "/v1/chats/"+session.ID, nil, middleware.DevUserHeader, "seller-42")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBlockedUserCannotWrite(t *testing.T) {
	e := newTestServer(t)

	rec, env := do(t, e, http.MethodPost, "/v1/chats", map[string]string{"counterparty_id": "seller-42", "type": "TRADE"}, middleware.DevUserHeader, "bad-user")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)
}

func TestBlockChat(t *testing.T) {
	e := newTestServer(t)

	_, env := do(t, e, http.MethodPost, "/v1/chats", map[string]string{"counterparty_id": "seller-42", "type": "JOB"})
	var session entity.ChatSession
	require.NoError(t, json.Unmarshal(env.Data, &session))

	rec, _ := do(t, e, http.MethodPost, "/v1/chats/"+session.ID+"/block", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, e, http.MethodPost, "/v1/chats/"+session.ID+"/messages", map[string]string{"text": "hi"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = do(t, e, http.MethodGet, "/v1/chats/"+session.ID+"/messages", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var transcript page
	require.NoError(t, json.Unmarshal(env.Data, &transcript))
	assert.Equal(t, int64(1), transcript.Total)
}

func TestChatList_CounterpartySeesOpenerName(t *testing.T) {
	e := newTestServer(t)

	rec, _ := do(t, e, http.MethodPost, "/v1/chats", map[string]string{
		"counterparty_id":   "seller-42",
		"counterparty_name": "왕씨",
		"type":              "TRADE",
		"related_id":        "item-9",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env := do(t, e, http.MethodGet, "/v1/chats", nil, middleware.DevUserHeader, "seller-42")
	require.Equal(t, http.StatusOK, rec.Code)
	var list page
	require.NoError(t, json.Unmarshal(env.Data, &list))
	var sessions []entity.ChatSession
	require.NoError(t, json.Unmarshal(list.Items, &sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, "홍길동", sessions[0].TargetName)
}

func TestListings_CreateAndBrowse(t *testing.T) {
	e := newTestServer(t)

	rec, env := do(t, e, http.MethodPost, "/v1/listings/trade", map[string]interface{}{
		"title":       "아이폰 13",
		"description": "깨끗합니다",
		"price":       950000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Item    entity.TradeItem  `json:"item"`
		Display map[string]string `json:"display"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, int64(950000), created.Item.Price)
	assert.Equal(t, "아이폰 13", created.Display["title"])

	form := url.Values{}
	form.Set("title", "자전거")
	form.Set("description", "거의 새것")
	form.Set("price", "120,000")
	req := httptest.NewRequest(http.MethodPost, "/v1/listings/trade", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	formRec := httptest.NewRecorder()
	e.ServeHTTP(formRec, req)
	require.Equal(t, http.StatusCreated, formRec.Code, formRec.Body.String())

	rec, env = do(t, e, http.MethodGet, "/v1/listings/trade?lang=zh", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list page
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, int64(2), list.Total)

	rec, env = do(t, e, http.MethodGet, "/v1/my/listings/trade", nil, middleware.DevUserHeader, "seller-42")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, int64(0), list.Total)

	rec, _ = do(t, e, http.MethodGet, "/v1/listings/trade/"+created.Item.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListings_Rejections(t *testing.T) {
	e := newTestServer(t)

	rec, env := do(t, e, http.MethodPost, "/v1/listings/trade", map[string]interface{}{
		"title": "t", "description": "d", "price": "a lot",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	rec, _ = do(t, e, http.MethodGet, "/v1/listings/cars", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDirections(t *testing.T) {
	e := newTestServer(t)

	_, env := do(t, e, http.MethodPost, "/v1/listings/shops", map[string]string{
		"title": "Malatang", "description": "spicy", "category": "FOOD",
	})
	var created struct {
		Item entity.Shop `json:"item"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, env := do(t, e, http.MethodGet, "/v1/shops/"+created.Item.ID+"/directions?mode=car", nil,
		"User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)")
	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "nmap://route/car?dlat=37.5&dlng=127&dname=Malatang", out["url"])
}

func TestContent_NegotiatesLanguage(t *testing.T) {
	e := newTestServer(t)

	rec, env := do(t, e, http.MethodGet, "/v1/content/labels/nav_trade", nil, "Accept-Language", "zh-CN,zh;q=0.9")
	require.Equal(t, http.StatusOK, rec.Code)
	var label map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &label))
	assert.Equal(t, "二手交易", label["text"])

	rec, env = do(t, e, http.MethodGet, "/v1/content/notices?lang=en", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var notices []usecase.NoticeView
	require.NoError(t, json.Unmarshal(env.Data, &notices))
	require.NotEmpty(t, notices)
	assert.Equal(t, "Launch", notices[0].Title)
}

func TestGetMe(t *testing.T) {
	e := newTestServer(t)

	rec, env := do(t, e, http.MethodGet, "/v1/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile entity.UserProfile
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "홍길동", profile.Name)
}

func TestAssistant_OCRWithoutModel(t *testing.T) {
	e := newTestServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", "sign.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n0000"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/assistant/ocr", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var result entity.OCRResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, gemini.OCRFailed, result.OriginalText)
}
