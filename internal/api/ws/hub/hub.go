package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kdrnck/msgsudot-nye/domain"
)

// Message, istemcilere giden ws zarfıdır.
type Message struct {
	Type    string      `json:"type"`
	Content interface{} `json:"content"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Repository, hub'ın fallback poll için ihtiyaç duyduğu okuma yüzeyidir.
type Repository interface {
	GetLobbyByID(ctx context.Context, lobbyID uuid.UUID) (domain.Lobby, error)
}

// StateSink, güncel state dokümanlarını zamanlayıcı koordinatörüne besler.
type StateSink interface {
	Apply(lobbyID uuid.UUID, state *domain.GameState)
	Stop(lobbyID uuid.UUID)
}

// Hub, lobi başına ws istemcilerini ve state dağıtımını yönetir.
// State güncellemeleri iki kaynaktan gelir: Redis pub/sub (push) ve
// periyodik Postgres poll (fallback). İkisi de applyState üzerinden
// versiyon bazlı tekilleştirilir.
type Hub struct {
	// lobbiesClients, lobideki istemcileri oyuncu ID bazında izler.
	lobbiesClients map[uuid.UUID]map[uuid.UUID]*domain.Client

	redisClient *redis.Client
	register    chan *domain.Client
	unregister  chan *domain.Client

	mutex sync.RWMutex

	// lastVersion, lobi başına yayınlanmış son state versiyonudur.
	lastVersion map[uuid.UUID]int64
	versionMu   sync.Mutex

	repo     Repository
	sink     StateSink
	lobbyHub *lobbyHub
	poller   *poller
}

func NewHub(redisClient *redis.Client, repo Repository, sink StateSink, pollInterval, watchdogInterval time.Duration) *Hub {
	hub := &Hub{
		lobbiesClients: make(map[uuid.UUID]map[uuid.UUID]*domain.Client),
		redisClient:    redisClient,
		register:       make(chan *domain.Client),
		unregister:     make(chan *domain.Client),
		lastVersion:    make(map[uuid.UUID]int64),
		repo:           repo,
		sink:           sink,
	}
	hub.lobbyHub = newLobbyHub(redisClient, hub)
	hub.poller = newPoller(hub, repo, pollInterval, watchdogInterval)
	return hub
}

// Run, kayıt/kayıt silme olaylarını dinleyen ana döngüyü başlatır.
func (h *Hub) Run(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-h.register:
				h.registerClient(client)
				go h.readPump(client)
				go h.writePump(client)
			case client := <-h.unregister:
				h.unregisterClient(client)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (h *Hub) RegisterClient(client *domain.Client) {
	h.register <- client
}

func (h *Hub) UnregisterClient(client *domain.Client) {
	h.unregister <- client
}

// registerClient sadece Run döngüsü içinden çağrılır.
func (h *Hub) registerClient(client *domain.Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	lobbyClients, ok := h.lobbiesClients[client.LobbyID]
	if !ok {
		lobbyClients = make(map[uuid.UUID]*domain.Client)
		h.lobbiesClients[client.LobbyID] = lobbyClients
	}

	// Aynı oyuncunun önceki bağlantısı varsa kapat (yeniden bağlantı).
	if existing, ok := lobbyClients[client.ID]; ok {
		zap.L().Info("closing stale connection on reconnect",
			zap.String("playerID", client.ID.String()),
			zap.String("lobbyID", client.LobbyID.String()))
		h.closeSendChannel(existing)
		closeDone(existing)
		delete(lobbyClients, client.ID)
	}

	wasEmpty := len(lobbyClients) == 0

	lobbyClients[client.ID] = client

	// Lobiye bağlanan ilk istemci pub/sub aboneliğini ve poll döngüsünü açar.
	if wasEmpty {
		h.lobbyHub.StartSubscriber(client.LobbyID)
		h.poller.Start(client.LobbyID)
	}
}

func (h *Hub) unregisterClient(client *domain.Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	lobbyClients, ok := h.lobbiesClients[client.LobbyID]
	if !ok {
		return
	}
	// Yeniden bağlantıda eski client'ın geç gelen unregister'ı yenisini
	// silmemeli, o yüzden pointer karşılaştırması yapılır.
	if current, exists := lobbyClients[client.ID]; !exists || current != client {
		return
	}

	delete(lobbyClients, client.ID)
	zap.L().Debug("client unregistered",
		zap.String("playerID", client.ID.String()),
		zap.String("lobbyID", client.LobbyID.String()),
		zap.Int("remaining", len(lobbyClients)))

	if len(lobbyClients) == 0 {
		h.lobbyHub.StopSubscriber(client.LobbyID)
		h.poller.Stop(client.LobbyID)
		delete(h.lobbiesClients, client.LobbyID)
		h.versionMu.Lock()
		delete(h.lastVersion, client.LobbyID)
		h.versionMu.Unlock()
	}

	h.closeSendChannel(client)
	closeDone(client)
}

func (h *Hub) closeSendChannel(client *domain.Client) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Warn("send channel already closed", zap.String("playerID", client.ID.String()))
		}
	}()
	close(client.Send)
}

// closeDone, bağlantıyı taşıyan handler goroutine'ini serbest bırakır.
func closeDone(client *domain.Client) {
	defer func() {
		recover()
	}()
	close(client.Done)
}

// applyState, state'i versiyon bazında tekilleştirir. Daha önce görülmüş
// (veya daha eski) bir versiyon ise false döner ve yayın yapılmaz. Yeni
// versiyonlar koordinatöre de beslenir.
func (h *Hub) applyState(lobbyID uuid.UUID, state *domain.GameState) bool {
	if state == nil {
		return false
	}

	h.versionMu.Lock()
	last, ok := h.lastVersion[lobbyID]
	if ok && state.Version <= last {
		h.versionMu.Unlock()
		return false
	}
	h.lastVersion[lobbyID] = state.Version
	h.versionMu.Unlock()

	h.sink.Apply(lobbyID, state)
	return true
}

// readPump, istemciden gelen mesajları okur. Oyun aksiyonları HTTP
// üzerinden gittiği için ws girişi sadece state tazeleme isteğidir.
func (h *Hub) readPump(client *domain.Client) {
	defer func() {
		h.unregister <- client
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				zap.L().Debug("client closed connection", zap.String("playerID", client.ID.String()))
			} else {
				zap.L().Debug("client read error", zap.Error(err))
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(payload, &msg); err != nil {
			zap.L().Debug("unreadable client message", zap.Error(err))
			continue
		}

		switch msg.Type {
		case "get_state":
			h.sendSnapshot(client)
		}
	}
}

// sendSnapshot, istemciye güncel lobi durumunu doğrudan gönderir.
func (h *Hub) sendSnapshot(client *domain.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	lobby, err := h.repo.GetLobbyByID(ctx, client.LobbyID)
	if err != nil {
		h.sendErrorToClient(client, "lobby not found")
		return
	}

	if err := h.SendMessageToClient(client, &Message{Type: MsgTypeStateUpdated, Content: lobby.CurrentGameState}); err != nil {
		zap.L().Debug("snapshot send failed", zap.String("playerID", client.ID.String()), zap.Error(err))
	}
}

func (h *Hub) SendMessageToClient(client *domain.Client, msg *Message) error {
	messageBytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case client.Send <- messageBytes:
		return nil
	default:
		zap.L().Warn("send channel full, dropping message", zap.String("playerID", client.ID.String()))
		return domain.ErrConflict
	}
}

func (h *Hub) sendErrorToClient(client *domain.Client, errorMessage string) {
	if err := h.SendMessageToClient(client, &Message{Type: "error", Content: errorMessage}); err != nil {
		zap.L().Debug("error message send failed", zap.String("playerID", client.ID.String()))
	}
}

// writePump, Send kanalındaki mesajları bağlantıya yazar ve ping atar.
func (h *Hub) writePump(client *domain.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			client.WriteLock.Lock()
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := client.Conn.WriteMessage(websocket.TextMessage, msg)
			client.WriteLock.Unlock()
			if err != nil {
				zap.L().Debug("websocket write error", zap.Error(err))
				return
			}

		case <-ticker.C:
			client.WriteLock.Lock()
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := client.Conn.WriteMessage(websocket.PingMessage, nil)
			client.WriteLock.Unlock()
			if err != nil {
				return
			}

		case <-client.Done:
			return
		}
	}
}

// BroadcastMessage, lobideki tüm istemcilere mesaj gönderir.
func (h *Hub) BroadcastMessage(lobbyID uuid.UUID, msg *Message) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	lobbyClients, ok := h.lobbiesClients[lobbyID]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(msg)
	if err != nil {
		zap.L().Error("broadcast marshal failed", zap.Error(err))
		return
	}

	for _, client := range lobbyClients {
		select {
		case client.Send <- messageBytes:
		default:
			zap.L().Warn("send channel full, dropping broadcast", zap.String("playerID", client.ID.String()))
		}
	}
}

func (h *Hub) GetLobbyClientCount(lobbyID uuid.UUID) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if clients, ok := h.lobbiesClients[lobbyID]; ok {
		return len(clients)
	}
	return 0
}

func (h *Hub) IsClientConnected(lobbyID, playerID uuid.UUID) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	lobbyClients, ok := h.lobbiesClients[lobbyID]
	if !ok {
		return false
	}
	_, exists := lobbyClients[playerID]
	return exists
}
