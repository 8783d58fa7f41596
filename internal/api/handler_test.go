package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flow-ai/threadview/internal/api"
	app_errors "flow-ai/threadview/internal/errors"
	"flow-ai/threadview/internal/interfaces/mocks"
	"flow-ai/threadview/internal/model"
	"flow-ai/threadview/internal/render"
	"flow-ai/threadview/internal/service"
)

func setupThreadHandler(t *testing.T) (*api.ThreadHandler, *mocks.MockThreadService, *mocks.MockSettingsService) {
	mockThreadSvc := mocks.NewMockThreadService(t)
	mockSettingsSvc := mocks.NewMockSettingsService(t)
	return api.NewThreadHandler(mockThreadSvc, mockSettingsSvc), mockThreadSvc, mockSettingsSvc
}

// addChiURLParams injects route params the way the chi router would.
func addChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for key, value := range params {
		chiCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

func TestThreadHandler_GetSettings(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, _, mockSettingsSvc := setupThreadHandler(t)
		mockSettingsSvc.On("Get", mock.Anything).Return(&service.Settings{StreamDedup: true}, nil).Once()

		rr := httptest.NewRecorder()
		handler.GetSettings(rr, httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"dedup_streaming":true,"tool_view_aliases":null}`, rr.Body.String())
	})

	t.Run("Failure", func(t *testing.T) {
		handler, _, mockSettingsSvc := setupThreadHandler(t)
		mockSettingsSvc.On("Get", mock.Anything).Return(nil, app_errors.ErrInternal).Once()

		rr := httptest.NewRecorder()
		handler.GetSettings(rr, httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestThreadHandler_UpdateSettings(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, _, mockSettingsSvc := setupThreadHandler(t)
		body := `{"dedup_streaming":false,"tool_view_aliases":{"deploy":"execute-command"}}`
		mockSettingsSvc.On("Save", mock.Anything, mock.MatchedBy(func(s *service.Settings) bool {
			return !s.StreamDedup && s.ToolViewAliases["deploy"] == "execute-command"
		})).Return(nil).Once()

		rr := httptest.NewRecorder()
		handler.UpdateSettings(rr, httptest.NewRequest(http.MethodPost, "/api/v1/settings", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Invalid JSON", func(t *testing.T) {
		handler, _, _ := setupThreadHandler(t)
		rr := httptest.NewRecorder()
		handler.UpdateSettings(rr, httptest.NewRequest(http.MethodPost, "/api/v1/settings", strings.NewReader(`{invalid`)))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Unknown alias target", func(t *testing.T) {
		handler, _, mockSettingsSvc := setupThreadHandler(t)
		mockSettingsSvc.On("Save", mock.Anything, mock.Anything).
			Return(errors.Join(app_errors.ErrValidation, errors.New("unknown view"))).Once()

		rr := httptest.NewRecorder()
		body := `{"tool_view_aliases":{"deploy":"nope"}}`
		handler.UpdateSettings(rr, httptest.NewRequest(http.MethodPost, "/api/v1/settings", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "unknown view")
	})
}

func TestThreadHandler_GetThreads(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockThreadSvc, _ := setupThreadHandler(t)
		expected := []*model.Thread{{ID: "t1", Title: "Test Thread"}}
		mockThreadSvc.On("ListThreads", mock.Anything).Return(expected, nil).Once()

		rr := httptest.NewRecorder()
		handler.GetThreads(rr, httptest.NewRequest(http.MethodGet, "/api/v1/threads", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var returned []*model.Thread
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returned))
		assert.Equal(t, expected, returned)
	})

	t.Run("Success - Empty list is an array", func(t *testing.T) {
		handler, mockThreadSvc, _ := setupThreadHandler(t)
		mockThreadSvc.On("ListThreads", mock.Anything).Return(nil, nil).Once()

		rr := httptest.NewRecorder()
		handler.GetThreads(rr, httptest.NewRequest(http.MethodGet, "/api/v1/threads", nil))

		assert.Equal(t, "[]", rr.Body.String())
	})

	t.Run("Failure - Service returns error", func(t *testing.T) {
		handler, mockThreadSvc, _ := setupThreadHandler(t)
		mockThreadSvc.On("ListThreads", mock.Anything).Return(nil, errors.New("internal error")).Once()

		rr := httptest.NewRecorder()
		handler.GetThreads(rr, httptest.NewRequest(http.MethodGet, "/api/v1/threads", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "internal server error")
	})
}

func TestThreadHandler_CreateThread(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockThreadSvc, _ := setupThreadHandler(t)
		mockThreadSvc.On("CreateThread", mock.Anything, &service.CreateThreadRequest{Title: "New"}).
			Return(&model.Thread{ID: "t1", Title: "New"}, nil).Once()

		rr := httptest.NewRecorder()
		handler.CreateThread(rr, httptest.NewRequest(http.MethodPost, "/api/v1/threads", strings.NewReader(`{"title":"New"}`)))

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"thread_id":"t1"`)
	})

	t.Run("Failure - Validation Error", func(t *testing.T) {
		handler, _, _ := setupThreadHandler(t)
		rr := httptest.NewRecorder()
		handler.CreateThread(rr, httptest.NewRequest(http.MethodPost, "/api/v1/threads", strings.NewReader(`{"title":""}`)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Field 'Title' failed on the 'required' tag")
	})
}

func TestThreadHandler_GetThread(t *testing.T) {
	threadID := "test-thread-id"

	t.Run("Success", func(t *testing.T) {
		handler, mockThreadSvc, _ := setupThreadHandler(t)
		mockThreadSvc.On("GetFullThread", mock.Anything, threadID).
			Return(&model.FullThread{Thread: model.Thread{ID: threadID}}, nil).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/threads/"+threadID, nil), map[string]string{"threadID": threadID})
		rr := httptest.NewRecorder()
		handler.GetThread(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		handler, mockThreadSvc, _ := setupThreadHandler(t)
		mockThreadSvc.On("GetFullThread", mock.Anything, threadID).Return(nil, app_errors.ErrNotFound).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/threads/"+threadID, nil), map[string]string{"threadID": threadID})
		rr := httptest.NewRecorder()
		handler.GetThread(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestThreadHandler_UpdateThreadTitle(t *testing.T) {
	threadID := "test-thread-id"

	t.Run("Success", func(t *testing.T) {
		handler, mockThreadSvc, _ := setupThreadHandler(t)
		mockThreadSvc.On("UpdateThreadTitle", mock.Anything, threadID, "A valid title").Return(nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/v1/threads/"+threadID+"/title", strings.NewReader(`{"title": "A valid title"}`))
		req = addChiURLParams(req, map[string]string{"threadID": threadID})
		rr := httptest.NewRecorder()
		handler.UpdateThreadTitle(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Validation Error (empty title)", func(t *testing.T) {
		handler, _, _ := setupThreadHandler(t)
		req := httptest.NewRequest(http.MethodPut, "/api/v1/threads/"+threadID+"/title", strings.NewReader(`{"title": ""}`))
		req = addChiURLParams(req, map[string]string{"threadID": threadID})
		rr := httptest.NewRecorder()
		handler.UpdateThreadTitle(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Field 'Title' failed on the 'required' tag")
	})

	t.Run("Failure - Bad JSON", func(t *testing.T) {
		handler, _, _ := setupThreadHandler(t)
		req := httptest.NewRequest(http.MethodPut, "/api/v1/threads/"+threadID+"/title", strings.NewReader(`{"title":`))
		req = addChiURLParams(req, map[string]string{"threadID": threadID})
		rr := httptest.NewRecorder()
		handler.UpdateThreadTitle(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestThreadHandler_DeleteThread(t *testing.T) {
	threadID := "test-thread-id"

	t.Run("Success", func(t *testing.T) {
		handler, mockThreadSvc, _ := setupThreadHandler(t)
		mockThreadSvc.On("DeleteThread", mock.Anything, threadID).Return(nil).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodDelete, "/api/v1/threads/"+threadID, nil), map[string]string{"threadID": threadID})
		rr := httptest.NewRecorder()
		handler.DeleteThread(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		handler, mockThreadSvc, _ := setupThreadHandler(t)
		mockThreadSvc.On("DeleteThread", mock.Anything, threadID).Return(app_errors.ErrNotFound).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodDelete, "/api/v1/threads/"+threadID, nil), map[string]string{"threadID": threadID})
		rr := httptest.NewRecorder()
		handler.DeleteThread(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestThreadHandler_AddMessage(t *testing.T) {
	threadID := "t1"

	t.Run("Success", func(t *testing.T) {
		handler, mockThreadSvc, _ := setupThreadHandler(t)
		mockThreadSvc.On("AddMessage", mock.Anything, threadID, mock.MatchedBy(func(r *service.CreateMessageRequest) bool {
			return r.Type == model.TypeTool && r.Metadata == `{"assistant_message_id":"A1"}`
		})).Return(&model.Message{MessageID: model.StringPtr("T1"), ThreadID: threadID, Type: model.TypeTool}, nil).Once()

		body := `{"type":"tool","content":"{}","metadata":"{\"assistant_message_id\":\"A1\"}"}`
		req := addChiURLParams(httptest.NewRequest(http.MethodPost, "/api/v1/threads/t1/messages", strings.NewReader(body)), map[string]string{"threadID": threadID})
		rr := httptest.NewRecorder()
		handler.AddMessage(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"message_id":"T1"`)
	})

	t.Run("Failure - Unknown type", func(t *testing.T) {
		handler, _, _ := setupThreadHandler(t)
		req := addChiURLParams(httptest.NewRequest(http.MethodPost, "/api/v1/threads/t1/messages", strings.NewReader(`{"type":"system"}`)), map[string]string{"threadID": threadID})
		rr := httptest.NewRecorder()
		handler.AddMessage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Field 'Type' failed on the 'oneof' tag")
	})
}

func TestThreadHandler_Streaming(t *testing.T) {
	threadID := "t1"

	t.Run("Set", func(t *testing.T) {
		handler, mockThreadSvc, _ := setupThreadHandler(t)
		mockThreadSvc.On("SetStreaming", mock.Anything, threadID, &service.StreamingRequest{Text: "Hel"}).Return(nil).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodPut, "/api/v1/threads/t1/streaming", strings.NewReader(`{"text":"Hel"}`)), map[string]string{"threadID": threadID})
		rr := httptest.NewRecorder()
		handler.SetStreaming(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Clear - Not Found", func(t *testing.T) {
		handler, mockThreadSvc, _ := setupThreadHandler(t)
		mockThreadSvc.On("ClearStreaming", mock.Anything, threadID).Return(app_errors.ErrNotFound).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodDelete, "/api/v1/threads/t1/streaming", nil), map[string]string{"threadID": threadID})
		rr := httptest.NewRecorder()
		handler.ClearStreaming(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestThreadHandler_GetView(t *testing.T) {
	handler, mockThreadSvc, _ := setupThreadHandler(t)
	mockThreadSvc.On("RenderThread", mock.Anything, "t1").Return(&render.View{ThreadID: "t1", MessageCount: 3}, nil).Once()

	req := addChiURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/threads/t1/view", nil), map[string]string{"threadID": "t1"})
	rr := httptest.NewRecorder()
	handler.GetView(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"message_count":3`)
}

func TestThreadHandler_StreamView(t *testing.T) {
	t.Run("Sends views until the thread is deleted", func(t *testing.T) {
		handler, mockThreadSvc, _ := setupThreadHandler(t)

		changes := make(chan struct{}, 1)
		changes <- struct{}{}
		cancelled := false
		mockThreadSvc.On("Subscribe", "t1").Return((<-chan struct{})(changes), func() { cancelled = true }).Once()
		mockThreadSvc.On("RenderThread", mock.Anything, "t1").Return(&render.View{ThreadID: "t1"}, nil).Once()
		mockThreadSvc.On("RenderThread", mock.Anything, "t1").Return(nil, app_errors.ErrNotFound).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/threads/t1/view/stream", nil), map[string]string{"threadID": "t1"})
		rr := httptest.NewRecorder()
		handler.StreamView(rr, req)

		assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
		frames := strings.Split(strings.TrimSpace(rr.Body.String()), "\n\n")
		require.Len(t, frames, 2)
		assert.Contains(t, frames[0], `"thread_id":"t1"`)
		assert.Equal(t, `data: {"done":true}`, frames[1])
		assert.True(t, cancelled)
	})

	t.Run("Unknown thread is a plain 404", func(t *testing.T) {
		handler, mockThreadSvc, _ := setupThreadHandler(t)
		mockThreadSvc.On("Subscribe", "nope").Return((<-chan struct{})(make(chan struct{})), func() {}).Once()
		mockThreadSvc.On("RenderThread", mock.Anything, "nope").Return(nil, app_errors.ErrNotFound).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/threads/nope/view/stream", nil), map[string]string{"threadID": "nope"})
		rr := httptest.NewRecorder()
		handler.StreamView(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Stops when the client goes away", func(t *testing.T) {
		handler, mockThreadSvc, _ := setupThreadHandler(t)
		mockThreadSvc.On("Subscribe", "t1").Return((<-chan struct{})(make(chan struct{})), func() {}).Once()
		mockThreadSvc.On("RenderThread", mock.Anything, "t1").Return(&render.View{ThreadID: "t1"}, nil).Once()

		ctx, cancel := context.WithCancel(context.Background())
		req := addChiURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/threads/t1/view/stream", nil).WithContext(ctx), map[string]string{"threadID": "t1"})
		rr := httptest.NewRecorder()

		done := make(chan struct{})
		go func() {
			defer close(done)
			handler.StreamView(rr, req)
		}()
		cancel()
		<-done
	})
}
