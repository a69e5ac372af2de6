package datasource

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/courtline/internal/models"
)

// InjuryHandler is called for each injury update received from the stream
type InjuryHandler func(injury models.InjuryStatus) error

// ReconnectConfig controls reconnection behavior for the injury stream
type ReconnectConfig struct {
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

// DefaultReconnectConfig returns default reconnection configuration
func DefaultReconnectConfig() ReconnectConfig {
	return ReconnectConfig{
		MaxRetries:        10,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 1.5,
	}
}

// injuryStreamMessage is the wire shape pushed by the injury feed stream
type injuryStreamMessage struct {
	Op           string  `json:"op"`
	PlayerName   string  `json:"playerName"`
	Team         string  `json:"team"`
	Status       string  `json:"status"`
	Significance float64 `json:"significance"`
	ReportedAt   string  `json:"reportedAt"`
}

// InjuryStreamClient maintains a WebSocket subscription to live injury updates
type InjuryStreamClient struct {
	conn            *websocket.Conn
	apiKey          string
	baseURL         string
	mu              sync.RWMutex
	isConnected     bool
	handlers        []InjuryHandler
	reconnectConfig ReconnectConfig
	lastMessageTime time.Time
	logger          *logrus.Logger
}

// NewInjuryStreamClient creates a new injury stream client
func NewInjuryStreamClient(baseURL, apiKey string, logger *logrus.Logger) *InjuryStreamClient {
	return &InjuryStreamClient{
		apiKey:          apiKey,
		baseURL:         baseURL,
		handlers:        make([]InjuryHandler, 0),
		reconnectConfig: DefaultReconnectConfig(),
		logger:          logger,
	}
}

// Connect establishes the WebSocket connection and starts the read loop
func (s *InjuryStreamClient) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isConnected {
		return fmt.Errorf("already connected")
	}

	wsURL := fmt.Sprintf("wss://%s/stream", s.baseURL)

	s.logger.WithField("url", wsURL).Info("Connecting to injury stream")

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to injury stream: %w", err)
	}

	s.conn = conn
	s.isConnected = true
	s.lastMessageTime = time.Now()

	go s.readMessages()

	return nil
}

// Subscribe requests injury updates for the given teams; an empty list
// subscribes to the whole league
func (s *InjuryStreamClient) Subscribe(ctx context.Context, teams []string) error {
	subMsg := map[string]interface{}{
		"op":      "subscribe",
		"authKey": s.apiKey,
		"teams":   teams,
	}

	s.logger.WithField("teams", len(teams)).Info("Subscribing to injury updates")
	return s.sendMessage(subMsg)
}

// AddHandler registers an injury update handler
func (s *InjuryStreamClient) AddHandler(handler InjuryHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// ConnectWithRetry keeps trying to connect with exponential backoff
func (s *InjuryStreamClient) ConnectWithRetry(ctx context.Context) error {
	backoff := s.reconnectConfig.InitialBackoff

	for attempt := 0; attempt < s.reconnectConfig.MaxRetries; attempt++ {
		err := s.Connect(ctx)
		if err == nil {
			return nil
		}

		s.logger.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"backoff": backoff.String(),
			"error":   err.Error(),
		}).Warn("Injury stream connection failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = time.Duration(float64(backoff) * s.reconnectConfig.BackoffMultiplier)
		if backoff > s.reconnectConfig.MaxBackoff {
			backoff = s.reconnectConfig.MaxBackoff
		}
	}

	return fmt.Errorf("injury stream connection failed after %d attempts", s.reconnectConfig.MaxRetries)
}

// readMessages reads messages from the WebSocket connection
func (s *InjuryStreamClient) readMessages() {
	defer s.Close()

	for {
		var msg injuryStreamMessage
		err := s.conn.ReadJSON(&msg)
		if err != nil {
			s.logger.WithField("error", err.Error()).Warn("Injury stream read failed")
			s.mu.Lock()
			s.isConnected = false
			s.mu.Unlock()
			return
		}

		s.mu.Lock()
		s.lastMessageTime = time.Now()
		s.mu.Unlock()

		if msg.Op == "heartbeat" {
			continue
		}

		reportedAt, err := time.Parse(time.RFC3339, msg.ReportedAt)
		if err != nil {
			reportedAt = time.Now().UTC()
		}
		injury := models.InjuryStatus{
			PlayerName:   msg.PlayerName,
			Team:         msg.Team,
			Status:       msg.Status,
			Significance: msg.Significance,
			ReportedAt:   reportedAt,
		}

		s.mu.RLock()
		handlers := s.handlers
		s.mu.RUnlock()

		for _, handler := range handlers {
			if err := handler(injury); err != nil {
				s.logger.WithField("error", err.Error()).Warn("Injury handler error")
			}
		}
	}
}

// sendMessage sends a JSON message over the stream
func (s *InjuryStreamClient) sendMessage(msg interface{}) error {
	s.mu.RLock()
	if !s.isConnected || s.conn == nil {
		s.mu.RUnlock()
		return fmt.Errorf("not connected")
	}
	conn := s.conn
	s.mu.RUnlock()

	return conn.WriteJSON(msg)
}

// IsConnected returns whether the stream is connected
func (s *InjuryStreamClient) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isConnected
}

// LastMessageTime returns the time of the last received message
func (s *InjuryStreamClient) LastMessageTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastMessageTime
}

// Close closes the WebSocket connection
func (s *InjuryStreamClient) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		err := s.conn.Close()
		s.conn = nil
		s.isConnected = false
		return err
	}
	return nil
}
