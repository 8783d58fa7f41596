package interfaces

import (
	"context"

	"flow-ai/threadview/internal/model"
	"flow-ai/threadview/internal/render"
	"flow-ai/threadview/internal/service"
)

// The API layer depends on these contracts rather than on the concrete
// services, so handlers can be tested against mocks.

// ThreadService defines the contract for thread storage, streaming and rendering.
type ThreadService interface {
	CreateThread(ctx context.Context, req *service.CreateThreadRequest) (*model.Thread, error)
	ListThreads(ctx context.Context) ([]*model.Thread, error)
	GetFullThread(ctx context.Context, threadID string) (*model.FullThread, error)
	UpdateThreadTitle(ctx context.Context, threadID, newTitle string) error
	DeleteThread(ctx context.Context, threadID string) error
	AddMessage(ctx context.Context, threadID string, req *service.CreateMessageRequest) (*model.Message, error)

	RenderThread(ctx context.Context, threadID string) (*render.View, error)
	RenderMessages(threadID string, msgs []model.Message, opts *render.Options) (*render.View, error)

	SetStreaming(ctx context.Context, threadID string, req *service.StreamingRequest) error
	ClearStreaming(ctx context.Context, threadID string) error
	Subscribe(threadID string) (<-chan struct{}, func())

	ToolViews() []string
}

// SettingsService defines the contract for managing render settings.
type SettingsService interface {
	Get(ctx context.Context) (*service.Settings, error)
	Save(ctx context.Context, settings *service.Settings) error
}
