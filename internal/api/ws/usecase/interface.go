package wsUsecase

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/domain"
)

type LobbyConnectUseCase interface {
	Execute(c *websocket.Conn, ctx context.Context, lobbyID, playerID uuid.UUID)
}

type PostgresRepository interface {
	IsMemberLobby(ctx context.Context, lobbyID, playerID uuid.UUID) (bool, error)
	GetLobbyByID(ctx context.Context, lobbyID uuid.UUID) (domain.Lobby, error)
}

type Hub interface {
	Run(ctx context.Context)
	RegisterClient(client *domain.Client)
	UnregisterClient(client *domain.Client)
}
