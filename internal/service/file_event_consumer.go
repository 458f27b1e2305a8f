package service

import (
	"context"
	"encoding/json"

	"mycloud-drive/internal/pkg/logger"
	"mycloud-drive/internal/repository/memory"
	"mycloud-drive/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// FilesChangedDelivery pushes a files-changed signal to a user's live sessions.
type FilesChangedDelivery interface {
	NotifyFilesChanged(userID uuid.UUID)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// fileEventConsumer reacts to files-changed events raised in this process.
type fileEventConsumer struct {
	subscriber message.Subscriber
	topic      string
	cache      *memory.CatalogCache
	delivery   FilesChangedDelivery
	logger     logger.ILogger
}

func NewFileEventConsumer(
	subscriber message.Subscriber,
	topic string,
	cache *memory.CatalogCache,
	delivery FilesChangedDelivery,
	log logger.ILogger,
) IConsumerService {
	return &fileEventConsumer{
		subscriber: subscriber,
		topic:      topic,
		cache:      cache,
		delivery:   delivery,
		logger:     log,
	}
}

// Consume subscribes and processes messages in the background until ctx ends.
func (c *fileEventConsumer) Consume(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			c.processMessage(msg)
		}
	}()
	return nil
}

func (c *fileEventConsumer) processMessage(msg *message.Message) {
	defer msg.Ack()

	var evt events.FilesChanged
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		c.logger.Warn("FileEventConsumer", "Dropping undecodable message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	c.cache.Invalidate(evt.UserID)
	if c.delivery != nil {
		c.delivery.NotifyFilesChanged(evt.UserID)
	}

	c.logger.Debug("FileEventConsumer", "Files changed delivered", map[string]interface{}{
		"user_id":  evt.UserID.String(),
		"filename": evt.Filename,
		"action":   evt.Action,
	})
}
