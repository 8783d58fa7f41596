package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"flow-ai/threadview/internal/api"
	app_errors "flow-ai/threadview/internal/errors"
	"flow-ai/threadview/internal/interfaces/mocks"
	"flow-ai/threadview/internal/model"
	"flow-ai/threadview/internal/render"
)

func TestRenderHandler_Render(t *testing.T) {
	body := `{"thread_id":"adhoc","dedup":false,"messages":[{"message_id":"U1","type":"user","content":"{\"role\":\"user\",\"content\":\"hi\"}"}]}`

	t.Run("Success - Dedup override", func(t *testing.T) {
		mockThreadSvc := mocks.NewMockThreadService(t)
		handler := api.NewRenderHandler(mockThreadSvc)
		mockThreadSvc.On("RenderMessages", "adhoc", mock.MatchedBy(func(msgs []model.Message) bool {
			return len(msgs) == 1 && msgs[0].Type == model.TypeUser
		}), &render.Options{Dedup: false}).Return(&render.View{ThreadID: "adhoc", MessageCount: 1}, nil).Once()

		rr := httptest.NewRecorder()
		handler.Render(rr, httptest.NewRequest(http.MethodPost, "/api/v1/render", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"thread_id":"adhoc"`)
	})

	t.Run("Failure - Missing messages", func(t *testing.T) {
		handler := api.NewRenderHandler(mocks.NewMockThreadService(t))

		rr := httptest.NewRecorder()
		handler.Render(rr, httptest.NewRequest(http.MethodPost, "/api/v1/render", strings.NewReader(`{"thread_id":"x"}`)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Field 'Messages' failed on the 'required' tag")
	})

	t.Run("Failure - Service rejects message", func(t *testing.T) {
		mockThreadSvc := mocks.NewMockThreadService(t)
		handler := api.NewRenderHandler(mockThreadSvc)
		mockThreadSvc.On("RenderMessages", "adhoc", mock.Anything, mock.Anything).Return(nil, app_errors.ErrValidation).Once()

		rr := httptest.NewRecorder()
		handler.Render(rr, httptest.NewRequest(http.MethodPost, "/api/v1/render", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRenderHandler_ListToolViews(t *testing.T) {
	mockThreadSvc := mocks.NewMockThreadService(t)
	handler := api.NewRenderHandler(mockThreadSvc)
	mockThreadSvc.On("ToolViews").Return([]string{"create-file", "web-search"}).Once()

	rr := httptest.NewRecorder()
	handler.ListToolViews(rr, httptest.NewRequest(http.MethodGet, "/api/v1/tool-views", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"views":["create-file","web-search"]}`, rr.Body.String())
}

func TestRouter_Healthz(t *testing.T) {
	threadHandler := api.NewThreadHandler(mocks.NewMockThreadService(t), mocks.NewMockSettingsService(t))
	router := api.NewRouter(threadHandler, api.NewRenderHandler(mocks.NewMockThreadService(t)))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}
