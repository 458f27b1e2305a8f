package assistant

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"mycloud-drive/internal/pkg/logger"
)

const filesChangedTopic = "files.changed"

// ChangeNotifier delivers payload-less "files changed" signals raised by the
// upload/delete collaborators. Handlers run on a notifier goroutine.
type ChangeNotifier interface {
	Subscribe(handler func()) (unsubscribe func(), err error)
}

// BusNotifier is an in-process ChangeNotifier backed by a watermill go channel.
type BusNotifier struct {
	pubSub *gochannel.GoChannel
	logger logger.ILogger

	wg sync.WaitGroup
}

var _ ChangeNotifier = (*BusNotifier)(nil)

func NewBusNotifier(log logger.ILogger) *BusNotifier {
	return &BusNotifier{
		pubSub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 16},
			watermill.NopLogger{},
		),
		logger: log,
	}
}

// Publish raises a files-changed signal to every current subscriber.
func (n *BusNotifier) Publish() error {
	msg := message.NewMessage(watermill.NewUUID(), nil)
	return n.pubSub.Publish(filesChangedTopic, msg)
}

func (n *BusNotifier) Subscribe(handler func()) (func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	messages, err := n.pubSub.Subscribe(ctx, filesChangedTopic)
	if err != nil {
		cancel()
		return nil, err
	}

	done := make(chan struct{})
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer close(done)
		for msg := range messages {
			handler()
			msg.Ack()
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}, nil
}

// Close stops the bus after all subscriptions have drained.
func (n *BusNotifier) Close() error {
	err := n.pubSub.Close()
	n.wg.Wait()
	if err != nil {
		n.logger.Warn("BusNotifier", "Close failed", map[string]interface{}{"error": err.Error()})
	}
	return err
}
