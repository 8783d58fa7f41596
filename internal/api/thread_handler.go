package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"flow-ai/threadview/internal/interfaces"
	"flow-ai/threadview/internal/model"
	"flow-ai/threadview/internal/service"
)

const defaultKeepAlive = 15 * time.Second

// ThreadHandler serves threads, their messages, streaming state and views.
type ThreadHandler struct {
	threadService   interfaces.ThreadService
	settingsService interfaces.SettingsService
	keepAlive       time.Duration
}

func NewThreadHandler(ts interfaces.ThreadService, ss interfaces.SettingsService) *ThreadHandler {
	return &ThreadHandler{threadService: ts, settingsService: ss, keepAlive: defaultKeepAlive}
}

// WithKeepAlive sets the interval between SSE keep-alive comments.
func (h *ThreadHandler) WithKeepAlive(d time.Duration) *ThreadHandler {
	h.keepAlive = d
	return h
}

// GetSettings godoc
// @Summary      Get render settings
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  service.Settings
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/settings [get]
func (h *ThreadHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary      Update render settings
// @Description  Saves streaming dedup and tool view aliases. Alias targets must be registered views.
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        settings  body      service.Settings  true  "New settings"
// @Success      200       {object}  StatusResponse
// @Failure      400       {object}  ErrorResponse
// @Router       /v1/settings [post]
func (h *ThreadHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings service.Settings
	if err := decodeJSON(r, &settings); err != nil {
		respondWithError(w, err)
		return
	}
	if err := validateRequest(&settings); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.settingsService.Save(r.Context(), &settings); err != nil {
		respondWithError(w, err)
		return
	}
	slog.Info("Settings updated")
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// GetThreads godoc
// @Summary      List threads
// @Tags         Threads
// @Produce      json
// @Success      200  {array}   model.Thread
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/threads [get]
func (h *ThreadHandler) GetThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.threadService.ListThreads(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	if threads == nil {
		threads = []*model.Thread{}
	}
	respondWithJSON(w, http.StatusOK, threads)
}

// CreateThread godoc
// @Summary      Create a thread
// @Tags         Threads
// @Accept       json
// @Produce      json
// @Param        thread  body      service.CreateThreadRequest  true  "Thread"
// @Success      201     {object}  model.Thread
// @Failure      400     {object}  ErrorResponse
// @Router       /v1/threads [post]
func (h *ThreadHandler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var req service.CreateThreadRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}
	thread, err := h.threadService.CreateThread(r.Context(), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, thread)
}

// GetThread godoc
// @Summary      Get a thread with its messages
// @Tags         Threads
// @Produce      json
// @Param        threadID  path      string  true  "Thread ID"
// @Success      200       {object}  model.FullThread
// @Failure      404       {object}  ErrorResponse
// @Router       /v1/threads/{threadID} [get]
func (h *ThreadHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	full, err := h.threadService.GetFullThread(r.Context(), chi.URLParam(r, "threadID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, full)
}

// UpdateThreadTitle godoc
// @Summary      Rename a thread
// @Tags         Threads
// @Accept       json
// @Produce      json
// @Param        threadID  path      string              true  "Thread ID"
// @Param        title     body      UpdateTitleRequest  true  "New title"
// @Success      200       {object}  StatusResponse
// @Failure      400       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /v1/threads/{threadID}/title [put]
func (h *ThreadHandler) UpdateThreadTitle(w http.ResponseWriter, r *http.Request) {
	var req UpdateTitleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.threadService.UpdateThreadTitle(r.Context(), chi.URLParam(r, "threadID"), req.Title); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// DeleteThread godoc
// @Summary      Delete a thread
// @Tags         Threads
// @Produce      json
// @Param        threadID  path      string  true  "Thread ID"
// @Success      200       {object}  StatusResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /v1/threads/{threadID} [delete]
func (h *ThreadHandler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	if err := h.threadService.DeleteThread(r.Context(), chi.URLParam(r, "threadID")); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// AddMessage godoc
// @Summary      Append a message
// @Description  Persists a user, assistant or tool message. Content and metadata are JSON documents encoded as strings.
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Param        threadID  path      string                        true  "Thread ID"
// @Param        message   body      service.CreateMessageRequest  true  "Message"
// @Success      201       {object}  model.Message
// @Failure      400       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /v1/threads/{threadID}/messages [post]
func (h *ThreadHandler) AddMessage(w http.ResponseWriter, r *http.Request) {
	var req service.CreateMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}
	msg, err := h.threadService.AddMessage(r.Context(), chi.URLParam(r, "threadID"), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, msg)
}

// GetView godoc
// @Summary      Render a thread
// @Description  Returns the grouped, tool-associated view of the thread including any in-flight streaming message.
// @Tags         Views
// @Produce      json
// @Param        threadID  path      string  true  "Thread ID"
// @Success      200       {object}  render.View
// @Failure      404       {object}  ErrorResponse
// @Router       /v1/threads/{threadID}/view [get]
func (h *ThreadHandler) GetView(w http.ResponseWriter, r *http.Request) {
	view, err := h.threadService.RenderThread(r.Context(), chi.URLParam(r, "threadID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// SetStreaming godoc
// @Summary      Replace the streaming message
// @Tags         Streaming
// @Accept       json
// @Produce      json
// @Param        threadID  path      string                    true  "Thread ID"
// @Param        stream    body      service.StreamingRequest  true  "Accumulated text"
// @Success      200       {object}  StatusResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /v1/threads/{threadID}/streaming [put]
func (h *ThreadHandler) SetStreaming(w http.ResponseWriter, r *http.Request) {
	var req service.StreamingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.threadService.SetStreaming(r.Context(), chi.URLParam(r, "threadID"), &req); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// ClearStreaming godoc
// @Summary      Drop the streaming message
// @Tags         Streaming
// @Produce      json
// @Param        threadID  path      string  true  "Thread ID"
// @Success      200       {object}  StatusResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /v1/threads/{threadID}/streaming [delete]
func (h *ThreadHandler) ClearStreaming(w http.ResponseWriter, r *http.Request) {
	if err := h.threadService.ClearStreaming(r.Context(), chi.URLParam(r, "threadID")); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// StreamView godoc
// @Summary      Follow a thread's view
// @Description  Server-sent events. Sends the current view, then a fresh view after every change. Ends with done=true when the thread is deleted.
// @Tags         Views
// @Produce      text/event-stream
// @Param        threadID  path  string  true  "Thread ID"
// @Success      200       {object}  model.StreamEvent
// @Router       /v1/threads/{threadID}/view/stream [get]
func (h *ThreadHandler) StreamView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	threadID := chi.URLParam(r, "threadID")

	// Subscribe before the first render so no change can slip in between.
	changes, cancel := h.threadService.Subscribe(threadID)
	defer cancel()

	view, err := h.threadService.RenderThread(ctx, threadID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	setStreamHeaders(w)
	if err := writeStreamEvent(w, model.StreamEvent{Data: view}); err != nil {
		slog.Info("View stream client disconnected", "thread_id", threadID)
		return
	}

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("View stream closed by client", "thread_id", threadID)
			return
		case <-ticker.C:
			if err := writeStreamComment(w, "keep-alive"); err != nil {
				return
			}
		case _, ok := <-changes:
			if !ok {
				return
			}
			view, err := h.threadService.RenderThread(ctx, threadID)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				if isNotFound(err) {
					_ = writeStreamEvent(w, model.StreamEvent{Done: true})
					return
				}
				slog.Error("Failed to render thread for stream", "thread_id", threadID, "error", err)
				sendStreamError(w, "Failed to render thread")
				return
			}
			if err := writeStreamEvent(w, model.StreamEvent{Data: view}); err != nil {
				slog.Info("View stream client disconnected", "thread_id", threadID)
				return
			}
		}
	}
}
