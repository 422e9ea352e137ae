package bootstrap

import (
	"context"

	"github.com/kdrnck/msgsudot-nye/config"
	"github.com/kdrnck/msgsudot-nye/domain"
	lobbyHub "github.com/kdrnck/msgsudot-nye/internal/api/ws/hub"
	"github.com/kdrnck/msgsudot-nye/internal/coordinator"
	"github.com/kdrnck/msgsudot-nye/internal/initializer"
)

type Hub interface {
	Run(ctx context.Context)
	RegisterClient(client *domain.Client)
	UnregisterClient(client *domain.Client)
}

func InitWebsocket(ctx context.Context, config config.Config, lobbyRedis LobbyRedisManager, postgresRepo PostgresRepository, manager *coordinator.Manager) Hub {
	return initializer.InitWebsocket(ctx, lobbyRedis.GetRedisClient(), postgresRepo, manager, config)
}

var _ lobbyHub.StateSink = (*coordinator.Manager)(nil)
