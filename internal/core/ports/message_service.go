package ports

import (
	"context"

	"github.com/nexaboard/nexaboard/internal/core/domain"
)

// CreateMessageInput carries a new message. Sender fields come from the
// authenticated claims, not from the request body.
type CreateMessageInput struct {
	SenderID    string
	SenderName  string
	SenderRole  string
	Content     string
	Type        domain.MessageType
	ProjectID   string
	ProjectName string
}

// MessageService defines use-case operations for team communication.
type MessageService interface {
	CreateMessage(ctx context.Context, input CreateMessageInput) (*domain.Message, error)
	ListMessages(ctx context.Context) ([]*domain.Message, error)
	ListProjectMessages(ctx context.Context, projectID string) ([]*domain.Message, error)
}

// MessageRepository defines persistence operations for messages.
// Listings are ordered newest first.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) (*domain.Message, error)
	FindAll(ctx context.Context) ([]*domain.Message, error)
	FindByProject(ctx context.Context, projectID string) ([]*domain.Message, error)
	Count(ctx context.Context) (int64, error)
}
