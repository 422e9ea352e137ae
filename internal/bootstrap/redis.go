package bootstrap

import (
	"github.com/redis/go-redis/v9"

	"github.com/kdrnck/msgsudot-nye/config"
	httpUsecase "github.com/kdrnck/msgsudot-nye/internal/api/http/usecase"
	"github.com/kdrnck/msgsudot-nye/internal/initializer"
)

type LobbyRedisManager interface {
	httpUsecase.LobbyRedisRepository
	GetRedisClient() *redis.Client
	Close() error
}

func InitLobbyRedis(config config.Config) LobbyRedisManager {
	return initializer.InitLobbyRedis(config)
}
