package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kdrnck/msgsudot-nye/domain"
)

// İstemcilere giden ve Redis kanalından gelen mesaj tipleri.
const (
	MsgTypeStateUpdated   = "state_updated"
	MsgTypePlayerJoined   = "player_joined"
	MsgTypePlayerLeft     = "player_left"
	MsgTypeLobbyDisbanded = "lobby_disbanded"
	MsgTypeTimeWarning    = "time_warning"
)

// lobbyEnvelope, lobi kanalından geçen ham zarftır. Data alanı tipine
// göre açılacağı için RawMessage olarak tutulur.
type lobbyEnvelope struct {
	LobbyID   uuid.UUID       `json:"lobby_id"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// lobbyHub, lobi başına Redis pub/sub aboneliklerini yönetir. Kanaldan
// gelen state dokümanları versiyon tekilleştirmesinden geçip istemcilere
// ve zamanlayıcı koordinatörüne dağıtılır.
type lobbyHub struct {
	redisClient *redis.Client
	hub         *Hub
	subscribers map[uuid.UUID]*redis.PubSub
	mutex       sync.Mutex
}

func newLobbyHub(redisClient *redis.Client, hub *Hub) *lobbyHub {
	return &lobbyHub{
		redisClient: redisClient,
		hub:         hub,
		subscribers: make(map[uuid.UUID]*redis.PubSub),
	}
}

// StartSubscriber, lobinin kanalına aboneliği başlatır.
func (lh *lobbyHub) StartSubscriber(lobbyID uuid.UUID) {
	lh.mutex.Lock()
	defer lh.mutex.Unlock()

	if _, ok := lh.subscribers[lobbyID]; ok {
		return
	}

	channel := fmt.Sprintf("lobby:%s", lobbyID.String())
	pubsub := lh.redisClient.Subscribe(context.Background(), channel)
	lh.subscribers[lobbyID] = pubsub

	go func() {
		defer pubsub.Close()
		zap.L().Info("subscribed to lobby channel", zap.String("channel", channel))

		for msg := range pubsub.Channel() {
			var envelope lobbyEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
				zap.L().Warn("unreadable lobby channel message",
					zap.String("lobbyID", lobbyID.String()), zap.Error(err))
				continue
			}
			lh.handleMessage(lobbyID, envelope)
		}
		zap.L().Info("unsubscribed from lobby channel", zap.String("channel", channel))
	}()
}

// StopSubscriber, lobinin kanal aboneliğini sonlandırır. Close hem
// aboneliği bırakır hem de Channel()'ı kapatarak dinleyici goroutine'in
// range döngüsünden çıkmasını sağlar; salt Unsubscribe bunu yapmaz ve
// goroutine ile bağlantı sızardı.
func (lh *lobbyHub) StopSubscriber(lobbyID uuid.UUID) {
	lh.mutex.Lock()
	defer lh.mutex.Unlock()

	if pubsub, ok := lh.subscribers[lobbyID]; ok {
		if err := pubsub.Close(); err != nil {
			zap.L().Warn("lobby subscriber close failed",
				zap.String("lobbyID", lobbyID.String()), zap.Error(err))
		}
		delete(lh.subscribers, lobbyID)
	}
}

func (lh *lobbyHub) handleMessage(lobbyID uuid.UUID, envelope lobbyEnvelope) {
	switch envelope.Type {
	case MsgTypeStateUpdated:
		lh.handleStateUpdated(lobbyID, envelope)
	case MsgTypeLobbyDisbanded:
		lh.handleDisbanded(lobbyID, envelope)
	case MsgTypePlayerJoined, MsgTypePlayerLeft, MsgTypeTimeWarning:
		lh.relay(lobbyID, envelope)
	default:
		zap.L().Debug("unknown lobby channel message type", zap.String("type", envelope.Type))
	}
}

// handleStateUpdated, push yolu üzerinden gelen state dokümanını işler.
// Poll döngüsünün daha önce yayınladığı versiyonlar sessizce düşer.
func (lh *lobbyHub) handleStateUpdated(lobbyID uuid.UUID, envelope lobbyEnvelope) {
	var state domain.GameState
	if err := json.Unmarshal(envelope.Data, &state); err != nil {
		zap.L().Warn("unreadable state document",
			zap.String("lobbyID", lobbyID.String()), zap.Error(err))
		return
	}

	if !lh.hub.applyState(lobbyID, &state) {
		return
	}

	lh.hub.BroadcastMessage(lobbyID, &Message{Type: MsgTypeStateUpdated, Content: &state})
}

// handleDisbanded, dağıtılan lobinin istemcilerini bilgilendirir ve
// koordinatör takibini durdurur.
func (lh *lobbyHub) handleDisbanded(lobbyID uuid.UUID, envelope lobbyEnvelope) {
	lh.relay(lobbyID, envelope)
	lh.hub.sink.Stop(lobbyID)
}

// relay, zarfın içeriğini olduğu gibi istemcilere aktarır.
func (lh *lobbyHub) relay(lobbyID uuid.UUID, envelope lobbyEnvelope) {
	var content interface{}
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &content); err != nil {
			zap.L().Warn("unreadable event payload",
				zap.String("lobbyID", lobbyID.String()), zap.Error(err))
			return
		}
	}
	lh.hub.BroadcastMessage(lobbyID, &Message{Type: envelope.Type, Content: content})
}
