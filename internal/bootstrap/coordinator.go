package bootstrap

import (
	"context"

	httpUsecase "github.com/kdrnck/msgsudot-nye/internal/api/http/usecase"
	"github.com/kdrnck/msgsudot-nye/internal/coordinator"
)

// SetupCoordinator, süre dolumu ve reveal kapanışlarını sunucu tarafında
// tetikleyen zamanlayıcı koordinatörünü kurar. Koordinatör aksiyonları
// usecase'ler üzerinden uygular, usecase'ler de her geçişte koordinatörü
// besler; bu döngü driver'ın iki aşamalı bağlanmasıyla kurulur.
func SetupCoordinator(ctx context.Context, postgresRepo PostgresRepository, lobbyRedis LobbyRedisManager, kafka Messaging) *coordinator.Manager {
	driver := httpUsecase.NewCoordinatorDriver(lobbyRedis)
	manager := coordinator.NewManager(ctx, driver)

	timeUp := httpUsecase.NewTimeUpUseCase(postgresRepo, lobbyRedis, kafka, manager)
	advance := httpUsecase.NewAdvanceTurnUseCase(postgresRepo, lobbyRedis, kafka, manager)
	driver.Bind(timeUp, advance)

	return manager
}
