package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kdrnck/msgsudot-nye/domain"
)

// RedisManager, lobi başına pub/sub kanalı üzerinden değişiklik akışını yayınlar.
// Her state geçişi tam doküman olarak yayınlanır; istemciler tick değil doküman alır.
type RedisManager struct {
	client *redis.Client
}

// LobbyMessage, lobi kanalından geçen mesaj zarfıdır.
type LobbyMessage struct {
	LobbyID   uuid.UUID   `json:"lobby_id"`
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewRedisManager(redisAddr string, password string, db int) *RedisManager {
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	})

	// Bağlantıyı test et
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Redis bağlantısı kurulamadı: %v", err)
	}

	return &RedisManager{client: rdb}
}

func (rm *RedisManager) Close() error {
	return rm.client.Close()
}

func (rm *RedisManager) GetRedisClient() *redis.Client {
	return rm.client
}

// ChannelFor, bir lobinin pub/sub kanal adını verir.
func ChannelFor(lobbyID uuid.UUID) string {
	return fmt.Sprintf("lobby:%s", lobbyID.String())
}

// PublishState, yeni state dokümanını lobinin kanalına yayınlar.
func (rm *RedisManager) PublishState(ctx context.Context, lobbyID uuid.UUID, state *domain.GameState) {
	rm.publish(ctx, lobbyID, LobbyMessage{
		LobbyID:   lobbyID,
		Type:      MsgStateUpdated,
		Data:      state,
		Timestamp: time.Now(),
	})
}

// PublishEvent, state dışı lobi olaylarını (katılma, ayrılma, dağıtma, uyarı) yayınlar.
func (rm *RedisManager) PublishEvent(ctx context.Context, lobbyID uuid.UUID, msgType string, data interface{}) {
	rm.publish(ctx, lobbyID, LobbyMessage{
		LobbyID:   lobbyID,
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func (rm *RedisManager) publish(ctx context.Context, lobbyID uuid.UUID, msg LobbyMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal Redis message: %v", err)
		return
	}

	channel := ChannelFor(lobbyID)
	if err := rm.client.Publish(ctx, channel, payload).Err(); err != nil {
		log.Printf("Failed to publish message to Redis channel %s: %v", channel, err)
	}
}

// Mesaj tipleri
const (
	MsgStateUpdated   = "state_updated"
	MsgPlayerJoined   = "player_joined"
	MsgPlayerLeft     = "player_left"
	MsgLobbyDisbanded = "lobby_disbanded"
	MsgTimeWarning    = "time_warning"
)
