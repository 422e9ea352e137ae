package httpUsecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/domain"
	"github.com/kdrnck/msgsudot-nye/internal/game"
)

type SkipTurnUseCase interface {
	Execute(ctx context.Context, lobbyID, playerID uuid.UUID) (*domain.GameState, int, error)
}

type skipTurnUseCase struct {
	runner transitionRunner
}

func NewSkipTurnUseCase(repository PostgresRepository, lobbyRedis LobbyRedisRepository, events EventPublisher, sink StateSink) SkipTurnUseCase {
	return &skipTurnUseCase{
		runner: transitionRunner{repository: repository, lobbyRedis: lobbyRedis, events: events, sink: sink},
	}
}

func (u *skipTurnUseCase) Execute(ctx context.Context, lobbyID, playerID uuid.UUID) (*domain.GameState, int, error) {
	return u.runner.run(ctx, lobbyID, playerID, game.Skip, nil)
}
