package bootstrap

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/kdrnck/msgsudot-nye/config"
	"github.com/kdrnck/msgsudot-nye/internal/coordinator"
	"github.com/kdrnck/msgsudot-nye/pkg/graceful"
)

type App struct {
	config         config.Config
	postgresRepo   PostgresRepository
	sessionManager SessionManager
	lobbyRedis     LobbyRedisManager
	kafka          Messaging
	manager        *coordinator.Manager
	wsHub          Hub
	fiberApp       *fiber.App
	httpHandlers   map[string]interface{}
	wsHandlers     map[string]interface{}
	cancel         context.CancelFunc
}

func NewApp(config config.Config) *App {
	app := &App{
		config: config,
	}
	app.initDependencies()
	return app
}

func (a *App) initDependencies() {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	a.postgresRepo = InitDatabase(a.config)
	a.sessionManager = InitSessionRedis(a.config)
	a.lobbyRedis = InitLobbyRedis(a.config)
	a.kafka = SetupMessaging(a.config)
	a.manager = SetupCoordinator(ctx, a.postgresRepo, a.lobbyRedis, a.kafka)
	a.wsHub = InitWebsocket(ctx, a.config, a.lobbyRedis, a.postgresRepo, a.manager)
	a.httpHandlers = SetupHTTPHandlers(a.postgresRepo, a.sessionManager, a.lobbyRedis, a.kafka, a.manager)
	a.wsHandlers = SetupWSHandlers(a.postgresRepo, a.sessionManager, a.wsHub)
	a.fiberApp = SetupServer(a.config, a.httpHandlers, a.wsHandlers)
}

func (a *App) Start() {
	go func() {
		port := a.config.Server.Port
		if err := a.fiberApp.Listen(":" + port); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", a.config.Server.Port))

	defer func() {
		a.cancel()
		if err := a.kafka.Close(); err != nil {
			zap.L().Error("Failed to close kafka writer", zap.Error(err))
		}
		if err := a.lobbyRedis.Close(); err != nil {
			zap.L().Error("Failed to close redis", zap.Error(err))
		}
		if err := a.postgresRepo.Close(); err != nil {
			zap.L().Error("Failed to close database", zap.Error(err))
		}
	}()

	graceful.WaitForShutdown(a.fiberApp, 5*time.Second, context.Background())
}
