package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"flow-ai/threadview/internal/cache"
	app_errors "flow-ai/threadview/internal/errors"
	"flow-ai/threadview/internal/grouping"
	"flow-ai/threadview/internal/model"
	"flow-ai/threadview/internal/render"
	"flow-ai/threadview/internal/repository"
)

// RenderSettings supplies the render options in force and a counter that
// changes whenever they do.
type RenderSettings interface {
	RenderOptions() render.Options
	Generation() uint64
}

// CreateThreadRequest is the payload for creating a thread.
type CreateThreadRequest struct {
	Title   string  `json:"title" validate:"required,min=1,max=100" example:"Build a landing page"`
	AgentID *string `json:"agent_id,omitempty" validate:"omitempty,max=100"`
}

// CreateMessageRequest is the payload for persisting a message. MessageID
// and CreatedAt are optional; the server fills them in when absent.
type CreateMessageRequest struct {
	MessageID *string           `json:"message_id,omitempty" validate:"omitempty,min=1,max=100"`
	Type      model.MessageType `json:"type" validate:"required,oneof=user assistant tool" example:"assistant"`
	Content   string            `json:"content" example:"{\"role\":\"assistant\",\"content\":\"Hello\"}"`
	Metadata  string            `json:"metadata,omitempty"`
	AgentID   *string           `json:"agent_id,omitempty" validate:"omitempty,max=100"`
	CreatedAt *time.Time        `json:"created_at,omitempty"`
}

// StreamingRequest carries the accumulated text of an in-flight assistant
// message.
type StreamingRequest struct {
	Text    string  `json:"text" example:"Let me look at the file"`
	AgentID *string `json:"agent_id,omitempty" validate:"omitempty,max=100"`
}

// ThreadService owns threads, their messages and the per-thread streaming
// placeholder, and renders threads into views.
type ThreadService struct {
	repo     repository.Repository
	renderer *render.Renderer
	cache    cache.ViewCache
	settings RenderSettings
	hub      *Hub

	mu      sync.Mutex
	streams map[string]*model.Message
}

func NewThreadService(repo repository.Repository, renderer *render.Renderer, viewCache cache.ViewCache, settings RenderSettings, hub *Hub) *ThreadService {
	if viewCache == nil {
		viewCache = cache.NopCache{}
	}
	return &ThreadService{
		repo:     repo,
		renderer: renderer,
		cache:    viewCache,
		settings: settings,
		hub:      hub,
		streams:  make(map[string]*model.Message),
	}
}

// CreateThread stores a new, empty thread.
func (s *ThreadService) CreateThread(ctx context.Context, req *CreateThreadRequest) (*model.Thread, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", app_errors.ErrValidation)
	}
	now := time.Now().UTC()
	thread := &model.Thread{
		ID:        uuid.NewString(),
		Title:     req.Title,
		AgentID:   req.AgentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateThread(ctx, thread); err != nil {
		return nil, fmt.Errorf("could not create thread: %w", err)
	}
	slog.Info("Thread created", "thread_id", thread.ID)
	return thread, nil
}

func (s *ThreadService) ListThreads(ctx context.Context) ([]*model.Thread, error) {
	return s.repo.GetThreads(ctx)
}

// GetFullThread returns a thread and its persisted messages.
func (s *ThreadService) GetFullThread(ctx context.Context, threadID string) (*model.FullThread, error) {
	thread, err := s.getThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	messages, err := s.repo.GetMessages(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("could not get messages: %w", err)
	}
	if messages == nil {
		messages = []model.Message{}
	}
	return &model.FullThread{Thread: *thread, Messages: messages}, nil
}

func (s *ThreadService) UpdateThreadTitle(ctx context.Context, threadID, newTitle string) error {
	if newTitle == "" {
		return fmt.Errorf("%w: title cannot be empty", app_errors.ErrValidation)
	}
	slog.Info("Updating thread title", "thread_id", threadID, "title", newTitle)
	return notFound(s.repo.UpdateThreadTitle(ctx, threadID, newTitle), threadID)
}

// DeleteThread removes a thread with its messages, placeholder and cached view.
func (s *ThreadService) DeleteThread(ctx context.Context, threadID string) error {
	if err := notFound(s.repo.DeleteThread(ctx, threadID), threadID); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.streams, threadID)
	s.mu.Unlock()

	s.cache.Invalidate(ctx, threadID)
	s.hub.Publish(threadID)
	slog.Info("Thread deleted", "thread_id", threadID)
	return nil
}

// AddMessage persists a message. A persisted assistant message that
// carries the streaming placeholder's text replaces that placeholder.
func (s *ThreadService) AddMessage(ctx context.Context, threadID string, req *CreateMessageRequest) (*model.Message, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown message type %q", app_errors.ErrValidation, req.Type)
	}
	if req.Metadata != "" && !json.Valid([]byte(req.Metadata)) {
		return nil, fmt.Errorf("%w: metadata must be a JSON document", app_errors.ErrValidation)
	}
	if _, err := s.getThread(ctx, threadID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	msg := &model.Message{
		MessageID: req.MessageID,
		ThreadID:  threadID,
		Type:      req.Type,
		Content:   req.Content,
		Metadata:  req.Metadata,
		AgentID:   req.AgentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if msg.MessageID == nil || *msg.MessageID == "" {
		msg.MessageID = model.StringPtr(uuid.NewString())
	}
	if req.CreatedAt != nil {
		msg.CreatedAt = req.CreatedAt.UTC()
	}

	if err := s.repo.AddMessage(ctx, msg); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: message %s already exists", app_errors.ErrConflict, msg.ID())
		}
		return nil, notFound(err, threadID)
	}

	if msg.Type == model.TypeAssistant {
		s.mu.Lock()
		if p := s.streams[threadID]; p != nil && grouping.Supersedes(msg, p) {
			delete(s.streams, threadID)
		}
		s.mu.Unlock()
	}

	s.cache.Invalidate(ctx, threadID)
	s.hub.Publish(threadID)
	return msg, nil
}

// RenderThread renders the persisted messages of a thread followed by its
// streaming placeholder, if any. Views without a placeholder are cached.
func (s *ThreadService) RenderThread(ctx context.Context, threadID string) (*render.View, error) {
	thread, err := s.getThread(ctx, threadID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	var placeholder *model.Message
	if p := s.streams[threadID]; p != nil {
		copied := *p
		placeholder = &copied
	}
	s.mu.Unlock()

	opts := s.settings.RenderOptions()
	version := fmt.Sprintf("%d-%d", thread.UpdatedAt.UnixNano(), s.settings.Generation())
	if placeholder == nil {
		if view, ok := s.cache.Get(ctx, threadID, version); ok {
			return view, nil
		}
	}

	msgs, err := s.repo.GetMessages(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("could not get messages: %w", err)
	}
	if placeholder != nil {
		msgs = append(msgs, *placeholder)
	}

	view := s.renderer.Render(threadID, msgs, opts)
	if placeholder == nil {
		s.cache.Set(ctx, threadID, version, view)
	}
	return view, nil
}

// RenderMessages renders an arbitrary message array without touching storage.
func (s *ThreadService) RenderMessages(threadID string, msgs []model.Message, opts *render.Options) (*render.View, error) {
	for i := range msgs {
		if !msgs[i].Type.Valid() {
			return nil, fmt.Errorf("%w: message %d has unknown type %q", app_errors.ErrValidation, i, msgs[i].Type)
		}
	}
	o := s.settings.RenderOptions()
	if opts != nil {
		o = *opts
	}
	return s.renderer.Render(threadID, msgs, o), nil
}

// SetStreaming replaces the thread's streaming placeholder.
func (s *ThreadService) SetStreaming(ctx context.Context, threadID string, req *StreamingRequest) error {
	if _, err := s.getThread(ctx, threadID); err != nil {
		return err
	}
	content, err := json.Marshal(map[string]string{"role": string(model.TypeAssistant), "content": req.Text})
	if err != nil {
		return fmt.Errorf("could not encode streaming content: %w", err)
	}

	now := time.Now().UTC()
	placeholder := &model.Message{
		ThreadID:  threadID,
		Type:      model.TypeAssistant,
		Content:   string(content),
		AgentID:   req.AgentID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	if prev := s.streams[threadID]; prev != nil {
		placeholder.CreatedAt = prev.CreatedAt
	}
	s.streams[threadID] = placeholder
	s.mu.Unlock()

	s.hub.Publish(threadID)
	return nil
}

// ClearStreaming drops the thread's streaming placeholder. Clearing a
// thread with no placeholder is not an error.
func (s *ThreadService) ClearStreaming(ctx context.Context, threadID string) error {
	if _, err := s.getThread(ctx, threadID); err != nil {
		return err
	}
	s.mu.Lock()
	_, had := s.streams[threadID]
	delete(s.streams, threadID)
	s.mu.Unlock()

	if had {
		s.hub.Publish(threadID)
	}
	return nil
}

// Subscribe returns a channel that receives a value whenever the thread's
// view may have changed.
func (s *ThreadService) Subscribe(threadID string) (<-chan struct{}, func()) {
	return s.hub.Subscribe(threadID)
}

// ToolViews lists the names registered in the view registry.
func (s *ThreadService) ToolViews() []string {
	return s.renderer.Registry().Names()
}

func (s *ThreadService) getThread(ctx context.Context, threadID string) (*model.Thread, error) {
	thread, err := s.repo.GetThread(ctx, threadID)
	if err != nil {
		return nil, notFound(err, threadID)
	}
	return thread, nil
}

// notFound translates repository.ErrNotFound into the application sentinel.
func notFound(err error, threadID string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: thread %s", app_errors.ErrNotFound, threadID)
	}
	return err
}
