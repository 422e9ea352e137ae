package wsUsecase

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kdrnck/msgsudot-nye/domain"
)

type lobbyConnectUseCase struct {
	hub        Hub
	repository PostgresRepository
}

func NewLobbyConnectUseCase(hub Hub, repository PostgresRepository) LobbyConnectUseCase {
	return &lobbyConnectUseCase{
		hub:        hub,
		repository: repository,
	}
}

// Execute, üyelik kontrolünden geçen bağlantıyı hub'a kaydeder ve
// bağlantı kopana kadar bloklar. İlk state dokümanı pompa başlamadan
// önce doğrudan yazılır ki istemci ilk yayını beklemeden güncel olsun.
func (u *lobbyConnectUseCase) Execute(c *websocket.Conn, ctx context.Context, lobbyID, playerID uuid.UUID) {
	sendError := func(msg string) {
		errorMessage := domain.WebSocketErrorMessage{
			Type:    "error",
			Message: msg,
		}
		if err := c.WriteJSON(errorMessage); err != nil {
			zap.L().Debug("failed to send ws error", zap.Error(err))
		}
	}

	isMember, err := u.repository.IsMemberLobby(ctx, lobbyID, playerID)
	if err != nil || !isMember {
		sendError("you are not a member of this lobby")
		c.Close()
		return
	}

	lobby, err := u.repository.GetLobbyByID(ctx, lobbyID)
	if err != nil {
		sendError("lobby not found")
		c.Close()
		return
	}

	initial := map[string]interface{}{
		"type":    "state_updated",
		"content": lobby.CurrentGameState,
	}
	if err := c.WriteJSON(initial); err != nil {
		zap.L().Debug("failed to send initial state", zap.Error(err))
		c.Close()
		return
	}

	client := &domain.Client{
		ID:      playerID,
		LobbyID: lobbyID,
		Conn:    c,
		Send:    make(chan []byte, 256),
		Done:    make(chan struct{}),
	}

	u.hub.RegisterClient(client)

	// Handler goroutine'i bağlantının sahibidir; hub Done'u kapatana
	// kadar burada bekler.
	select {
	case <-client.Done:
	case <-ctx.Done():
		u.hub.UnregisterClient(client)
	}
}
