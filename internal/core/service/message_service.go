package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pingado/messaging-system/internal/pkg/metrics"
	"github.com/pingado/messaging-system/internal/core/domain"
	"github.com/pingado/messaging-system/internal/core/ports"
)

const defaultPageSize = 10

// IdempotencyChecker abstracts the replay store (Redis) for message sends.
// Seen returns the id of the message previously created under the key.
type IdempotencyChecker interface {
	Seen(ctx context.Context, sub int64, key string) (int64, bool, error)
	Mark(ctx context.Context, sub int64, key string, messageID int64) error
}

type messageService struct {
	messages ports.MessageRepository
	users    ports.UserRepository
	dedup    IdempotencyChecker
	log      zerolog.Logger
}

// NewMessageService returns a MessageService implementation. dedup may be nil;
// sends are then never replay-checked.
func NewMessageService(
	messages ports.MessageRepository,
	users ports.UserRepository,
	dedup IdempotencyChecker,
	log zerolog.Logger,
) ports.MessageService {
	return &messageService{messages: messages, users: users, dedup: dedup, log: log}
}

func (s *messageService) FindAll(ctx context.Context, limit, offset int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.messages.FindAll(ctx, limit, offset)
}

func (s *messageService) GetMessage(ctx context.Context, id int64) (*domain.Message, error) {
	return s.messages.FindByID(ctx, id)
}

func (s *messageService) CreateMessage(ctx context.Context, in ports.CreateMessageInput, payload ports.TokenPayload) (*ports.MessageDetail, error) {
	// A repeated Idempotency-Key returns the original message.
	if in.IdempotencyKey != "" && s.dedup != nil {
		id, seen, err := s.dedup.Seen(ctx, payload.Sub, in.IdempotencyKey)
		if err != nil {
			s.log.Warn().Err(err).Msg("idempotency check failed, sending anyway")
		} else if seen {
			metrics.MessagesDedupTotal.WithLabelValues("hit").Inc()
			return s.detailByID(ctx, id, true)
		} else {
			metrics.MessagesDedupTotal.WithLabelValues("miss").Inc()
		}
	}

	from, err := s.users.FindByID(ctx, payload.Sub)
	if err != nil {
		return nil, err
	}
	to, err := s.users.FindByID(ctx, in.ToID)
	if err != nil {
		return nil, err
	}

	message, err := s.messages.Create(ctx, &domain.Message{
		Text:   in.Text,
		FromID: from.ID,
		ToID:   to.ID,
		Read:   false,
		Date:   time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create message")
		return nil, err
	}

	if in.IdempotencyKey != "" && s.dedup != nil {
		if err := s.dedup.Mark(ctx, payload.Sub, in.IdempotencyKey, message.ID); err != nil {
			s.log.Warn().Err(err).Int64("message_id", message.ID).Msg("idempotency mark failed")
		}
	}

	metrics.MessagesSentTotal.Inc()
	s.log.Info().Int64("message_id", message.ID).Int64("from", from.ID).Int64("to", to.ID).Msg("message sent")

	return &ports.MessageDetail{
		Message: *message,
		From:    ports.PartySummary{ID: from.ID, Name: from.Name},
		To:      ports.PartySummary{ID: to.ID, Name: to.Name},
	}, nil
}

func (s *messageService) UpdateMessage(ctx context.Context, id int64, in ports.UpdateMessageInput, payload ports.TokenPayload) (*domain.Message, error) {
	message, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if message.FromID != payload.Sub {
		return nil, domain.ErrForbidden
	}

	if in.Text != nil {
		message.Text = *in.Text
	}
	if in.Read != nil {
		message.Read = *in.Read
	}

	return s.messages.Update(ctx, message)
}

func (s *messageService) DeleteMessage(ctx context.Context, id int64, payload ports.TokenPayload) (*domain.Message, error) {
	message, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if message.FromID != payload.Sub {
		return nil, domain.ErrForbidden
	}

	if err := s.messages.Delete(ctx, id); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *messageService) detailByID(ctx context.Context, id int64, replay bool) (*ports.MessageDetail, error) {
	message, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from, err := s.users.FindByID(ctx, message.FromID)
	if err != nil {
		return nil, err
	}
	to, err := s.users.FindByID(ctx, message.ToID)
	if err != nil {
		return nil, err
	}
	return &ports.MessageDetail{
		Message:        *message,
		From:           ports.PartySummary{ID: from.ID, Name: from.Name},
		To:             ports.PartySummary{ID: to.ID, Name: to.Name},
		AlreadyExisted: replay,
	}, nil
}
