package service

import (
	"context"
	"errors"
	"time"

	"github.com/nexaboard/nexaboard/internal/api/metrics"
	"github.com/nexaboard/nexaboard/internal/core/domain"
	"github.com/nexaboard/nexaboard/internal/core/ports"
)

type messageService struct {
	messages ports.MessageRepository
}

// NewMessageService returns a MessageService implementation.
func NewMessageService(messages ports.MessageRepository) ports.MessageService {
	return &messageService{messages: messages}
}

func (s *messageService) CreateMessage(ctx context.Context, input ports.CreateMessageInput) (*domain.Message, error) {
	if input.Content == "" {
		return nil, errors.New("message content is required")
	}

	msgType := input.Type
	if msgType == "" {
		msgType = domain.MessageChat
	}
	if !domain.ValidMessageType(msgType) {
		return nil, errors.New("invalid message type")
	}

	msg := &domain.Message{
		SenderID:    input.SenderID,
		SenderName:  input.SenderName,
		SenderRole:  input.SenderRole,
		Content:     input.Content,
		Type:        msgType,
		ProjectID:   input.ProjectID,
		ProjectName: input.ProjectName,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.messages.Create(ctx, msg)
	if err != nil {
		return nil, err
	}
	metrics.MessagesCreatedTotal.WithLabelValues(string(msgType)).Inc()
	return created, nil
}

func (s *messageService) ListMessages(ctx context.Context) ([]*domain.Message, error) {
	return s.messages.FindAll(ctx)
}

func (s *messageService) ListProjectMessages(ctx context.Context, projectID string) ([]*domain.Message, error) {
	return s.messages.FindByProject(ctx, projectID)
}
