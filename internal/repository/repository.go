package repository

import (
	"context"

	"flow-ai/threadview/internal/model"
)

// Repository defines the storage operations for threads and messages.
type Repository interface {
	CreateThread(ctx context.Context, thread *model.Thread) error
	GetThread(ctx context.Context, threadID string) (*model.Thread, error)
	GetThreads(ctx context.Context) ([]*model.Thread, error)
	UpdateThreadTitle(ctx context.Context, threadID, newTitle string) error
	DeleteThread(ctx context.Context, threadID string) error

	// AddMessage persists message and bumps the thread's updated_at, which
	// also versions any cached view of the thread.
	AddMessage(ctx context.Context, message *model.Message) error
	// GetMessages returns a thread's messages in insertion order.
	GetMessages(ctx context.Context, threadID string) ([]model.Message, error)
}
