package httpUsecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/domain"
	"github.com/kdrnck/msgsudot-nye/internal/game"
)

type TimeUpUseCase interface {
	Execute(ctx context.Context, lobbyID, playerID uuid.UUID) (*domain.GameState, int, error)
}

type timeUpUseCase struct {
	runner transitionRunner
}

func NewTimeUpUseCase(repository PostgresRepository, lobbyRedis LobbyRedisRepository, events EventPublisher, sink StateSink) TimeUpUseCase {
	return &timeUpUseCase{
		runner: transitionRunner{repository: repository, lobbyRedis: lobbyRedis, events: events, sink: sink},
	}
}

func (u *timeUpUseCase) Execute(ctx context.Context, lobbyID, playerID uuid.UUID) (*domain.GameState, int, error) {
	return u.runner.run(ctx, lobbyID, playerID, game.TimeUp, nil)
}
