package httpUsecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/domain"
	"github.com/kdrnck/msgsudot-nye/internal/game"
)

type StartTurnUseCase interface {
	Execute(ctx context.Context, lobbyID, playerID uuid.UUID) (*domain.GameState, int, error)
}

type startTurnUseCase struct {
	runner transitionRunner
}

func NewStartTurnUseCase(repository PostgresRepository, lobbyRedis LobbyRedisRepository, events EventPublisher, sink StateSink) StartTurnUseCase {
	return &startTurnUseCase{
		runner: transitionRunner{repository: repository, lobbyRedis: lobbyRedis, events: events, sink: sink},
	}
}

func (u *startTurnUseCase) Execute(ctx context.Context, lobbyID, playerID uuid.UUID) (*domain.GameState, int, error) {
	return u.runner.run(ctx, lobbyID, playerID, game.StartTurn, nil)
}
