package initializer

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kdrnck/msgsudot-nye/config"
	lobbyHub "github.com/kdrnck/msgsudot-nye/internal/api/ws/hub"
)

func InitWebsocket(ctx context.Context, client *redis.Client, repo lobbyHub.Repository, sink lobbyHub.StateSink, appConfig config.Config) *lobbyHub.Hub {
	pollInterval := time.Duration(appConfig.Game.PollIntervalSec) * time.Second
	watchdogInterval := time.Duration(appConfig.Game.WatchdogIntervalSec) * time.Second

	hub := lobbyHub.NewHub(client, repo, sink, pollInterval, watchdogInterval)
	hub.Run(ctx)
	return hub
}
