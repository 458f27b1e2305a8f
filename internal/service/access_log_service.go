package service

import (
	"context"
	"fmt"
	"time"

	"mycloud-drive/internal/entity"
	"mycloud-drive/internal/pkg/logger"
	"mycloud-drive/internal/repository/specification"
	"mycloud-drive/internal/repository/unitofwork"
	"mycloud-drive/pkg/events"
	pktNats "mycloud-drive/pkg/nats"

	"github.com/google/uuid"
)

const (
	accessLogDurable = "access-log-writer"
	publishTimeout   = 3 * time.Second
)

// EventPublisher is the cross-process bus the audit trail goes through.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// EventSubscriber attaches a durable handler to a subject.
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject, durableName string, handler pktNats.EventHandler) (func(), error)
}

type IAccessLogService interface {
	// Record queues the entry on the bus, or writes it directly when the bus is unavailable.
	Record(ctx context.Context, evt events.FileAccessed)
	// Start runs the durable consumer that persists queued entries.
	Start(ctx context.Context) (stop func(), err error)
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.AccessLog, error)
}

type accessLogService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  EventPublisher
	subscriber EventSubscriber
	logger     logger.ILogger
}

// NewAccessLogService accepts nil publisher or subscriber when NATS is not configured.
func NewAccessLogService(uowFactory unitofwork.RepositoryFactory, publisher EventPublisher, subscriber EventSubscriber, log logger.ILogger) IAccessLogService {
	return &accessLogService{
		uowFactory: uowFactory,
		publisher:  publisher,
		subscriber: subscriber,
		logger:     log,
	}
}

func (s *accessLogService) Record(ctx context.Context, evt events.FileAccessed) {
	if s.publisher != nil {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		err := s.publisher.Publish(pubCtx, evt)
		cancel()
		if err == nil {
			return
		}
		s.logger.Warn("AccessLogService", "Publish failed, writing directly", map[string]interface{}{
			"error":    err.Error(),
			"filename": evt.Filename,
			"action":   evt.Action,
		})
	}

	if err := s.persist(context.WithoutCancel(ctx), evt); err != nil {
		s.logger.Error("AccessLogService", "Failed to write access log", map[string]interface{}{
			"error":    err.Error(),
			"user_id":  evt.UserID.String(),
			"filename": evt.Filename,
		})
	}
}

func (s *accessLogService) Start(ctx context.Context) (func(), error) {
	if s.subscriber == nil {
		return func() {}, nil
	}
	return s.subscriber.Subscribe(ctx, pktNats.Subject(events.TypeFileAccessed), accessLogDurable, s.handle)
}

func (s *accessLogService) handle(ctx context.Context, evt events.Event) error {
	accessed, err := events.FileAccessedFrom(evt)
	if err != nil {
		// Malformed events are dropped, not redelivered.
		s.logger.Warn("AccessLogService", "Discarding malformed event", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return s.persist(ctx, accessed)
}

func (s *accessLogService) persist(ctx context.Context, evt events.FileAccessed) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entry := &entity.AccessLog{
		Id:         uuid.New(),
		UserId:     evt.UserID,
		FileId:     evt.FileID,
		Filename:   evt.Filename,
		Action:     entity.AccessAction(evt.Action),
		OccurredAt: evt.OccurredAt,
	}
	if err := uow.AccessLogRepository().Create(ctx, entry); err != nil {
		return fmt.Errorf("create access log: %w", err)
	}
	return nil
}

func (s *accessLogService) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.AccessLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.AccessLogRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userID},
		specification.Pagination{Limit: limit},
	)
}
