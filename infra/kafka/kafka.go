package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventType, parti olay akışındaki mesaj tipleridir. Akışı canlı yayın ekranı
// (live-TV display) tüketir.
const (
	EventLobbyCreated   = "lobby_created"
	EventGameStarted    = "game_started"
	EventGameFinished   = "game_finished"
	EventLobbyDisbanded = "lobby_disbanded"
)

type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	LobbyID   uuid.UUID   `json:"lobby_id"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type Config struct {
	Brokers []string
	Topic   string
}

// KafkaClient, lobi yaşam döngüsü olaylarını tek bir topic'e yayınlar.
// Broker yapılandırılmamışsa nil client döner ve yayın sessizce atlanır.
type KafkaClient struct {
	writer *kafka.Writer
}

func NewKafkaClient(cfg Config) (*KafkaClient, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("no kafka brokers configured")
	}
	if cfg.Topic == "" {
		cfg.Topic = "party-events"
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}

	return &KafkaClient{writer: writer}, nil
}

func (c *KafkaClient) Close() error {
	if c == nil || c.writer == nil {
		return nil
	}
	return c.writer.Close()
}

// PublishEvent, olayı lobi id'si ile anahtarlayarak yayınlar; aynı lobinin
// olayları aynı partition'da sıralı kalır.
func (c *KafkaClient) PublishEvent(ctx context.Context, eventType string, lobbyID uuid.UUID, data interface{}) error {
	if c == nil || c.writer == nil {
		return nil
	}

	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		LobbyID:   lobbyID,
		Data:      data,
		Timestamp: time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	err = c.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(lobbyID.String()),
		Value: payload,
	})
	if err != nil {
		zap.L().Warn("failed to publish party event",
			zap.String("type", eventType), zap.Error(err))
		return err
	}

	return nil
}
