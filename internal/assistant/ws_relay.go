package assistant

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fasthttp/websocket"

	"mycloud-drive/internal/pkg/logger"
)

const (
	relayReconnectWait = 2 * time.Second
	relayHandshakeWait = 10 * time.Second

	eventFilesChanged = "files_changed"
)

type relayFrame struct {
	Type string `json:"type"`
}

// WebsocketRelay forwards the backend's files_changed pushes into a BusNotifier.
type WebsocketRelay struct {
	url           string
	credentials   Credentials
	bus           *BusNotifier
	logger        logger.ILogger
	reconnectWait time.Duration
	dialer        *websocket.Dialer
}

// NewWebsocketRelay builds a relay for baseURL (http or https) and eventsPath.
func NewWebsocketRelay(baseURL, eventsPath string, creds Credentials, bus *BusNotifier, log logger.ILogger) (*WebsocketRelay, error) {
	wsURL, err := websocketURL(baseURL, eventsPath)
	if err != nil {
		return nil, err
	}
	return &WebsocketRelay{
		url:           wsURL,
		credentials:   creds,
		bus:           bus,
		logger:        log,
		reconnectWait: relayReconnectWait,
		dialer:        &websocket.Dialer{HandshakeTimeout: relayHandshakeWait},
	}, nil
}

func websocketURL(baseURL, eventsPath string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(eventsPath, "/")
	return u.String(), nil
}

// Run keeps a connection open until ctx is done, reconnecting after failures.
func (r *WebsocketRelay) Run(ctx context.Context) {
	for {
		err := r.session(ctx)
		if ctx.Err() != nil {
			return
		}
		r.logger.Warn("WebsocketRelay", "Connection lost, reconnecting", map[string]interface{}{
			"error": errString(err),
			"url":   r.url,
		})

		select {
		case <-ctx.Done():
			return
		case <-time.After(r.reconnectWait):
		}
	}
}

func (r *WebsocketRelay) session(ctx context.Context) error {
	header := http.Header{}
	if r.credentials.Username != "" {
		token := base64.StdEncoding.EncodeToString([]byte(r.credentials.Username + ":" + r.credentials.Password))
		header.Set("Authorization", "Basic "+token)
	}

	conn, _, err := r.dialer.DialContext(ctx, r.url, header)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}

	closed := make(chan struct{})
	defer close(closed)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-closed:
		}
	}()
	defer conn.Close()

	r.logger.Info("WebsocketRelay", "Subscribed to backend events", map[string]interface{}{"url": r.url})

	// A reconnect may have missed pushes; let subscribers resync.
	if err := r.bus.Publish(); err != nil {
		return fmt.Errorf("publish resync: %w", err)
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var frame relayFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			r.logger.Debug("WebsocketRelay", "Ignoring undecodable frame", map[string]interface{}{"error": err.Error()})
			continue
		}
		if frame.Type != eventFilesChanged {
			continue
		}
		if err := r.bus.Publish(); err != nil {
			return fmt.Errorf("publish: %w", err)
		}
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
