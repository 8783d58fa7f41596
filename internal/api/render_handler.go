package api

import (
	"net/http"

	"flow-ai/threadview/internal/interfaces"
	"flow-ai/threadview/internal/model"
	"flow-ai/threadview/internal/render"
)

// RenderRequest is a stateless render of a caller-supplied message array.
type RenderRequest struct {
	ThreadID string          `json:"thread_id" example:"adhoc"`
	Messages []model.Message `json:"messages" validate:"required"`
	// Dedup overrides the stored dedup_streaming setting when present.
	Dedup *bool `json:"dedup,omitempty"`
}

// RenderHandler exposes the renderer without storage.
type RenderHandler struct {
	threadService interfaces.ThreadService
}

func NewRenderHandler(ts interfaces.ThreadService) *RenderHandler {
	return &RenderHandler{threadService: ts}
}

// Render godoc
// @Summary      Render messages
// @Description  Renders a posted message array exactly as a stored thread would be rendered.
// @Tags         Views
// @Accept       json
// @Produce      json
// @Param        request  body      RenderRequest  true  "Messages"
// @Success      200      {object}  render.View
// @Failure      400      {object}  ErrorResponse
// @Router       /v1/render [post]
func (h *RenderHandler) Render(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	var opts *render.Options
	if req.Dedup != nil {
		opts = &render.Options{Dedup: *req.Dedup}
	}
	view, err := h.threadService.RenderMessages(req.ThreadID, req.Messages, opts)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// ListToolViews godoc
// @Summary      List tool views
// @Description  Tool names with a dedicated view. Any other name renders with the generic view.
// @Tags         Views
// @Produce      json
// @Success      200  {object}  ToolViewsResponse
// @Router       /v1/tool-views [get]
func (h *RenderHandler) ListToolViews(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, ToolViewsResponse{Views: h.threadService.ToolViews()})
}
