package service

import (
	"encoding/json"
	"fmt"

	"mycloud-drive/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// IPublisherService raises in-process domain events.
type IPublisherService interface {
	PublishFilesChanged(evt events.FilesChanged) error
}

type publisherService struct {
	topic     string
	publisher message.Publisher
}

func NewPublisherService(topic string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topic:     topic,
		publisher: publisher,
	}
}

func (s *publisherService) PublishFilesChanged(evt events.FilesChanged) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal files changed: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.publisher.Publish(s.topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", s.topic, err)
	}
	return nil
}
