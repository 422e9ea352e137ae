package initializer

import (
	"fmt"

	"github.com/kdrnck/msgsudot-nye/config"
	"github.com/kdrnck/msgsudot-nye/infra/redis"
)

func InitLobbyRedis(appConfig config.Config) *redis.RedisManager {
	address := fmt.Sprintf("%s:%s", appConfig.Redis.Host, appConfig.Redis.Port)

	return redis.NewRedisManager(address, appConfig.Redis.Password, appConfig.Redis.DB)
}
