package httpUsecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/domain"
	"github.com/kdrnck/msgsudot-nye/internal/game"
)

type AdvanceTurnUseCase interface {
	Execute(ctx context.Context, lobbyID, playerID uuid.UUID) (*domain.GameState, int, error)
}

type advanceTurnUseCase struct {
	runner transitionRunner
}

func NewAdvanceTurnUseCase(repository PostgresRepository, lobbyRedis LobbyRedisRepository, events EventPublisher, sink StateSink) AdvanceTurnUseCase {
	return &advanceTurnUseCase{
		runner: transitionRunner{repository: repository, lobbyRedis: lobbyRedis, events: events, sink: sink},
	}
}

func (u *advanceTurnUseCase) Execute(ctx context.Context, lobbyID, playerID uuid.UUID) (*domain.GameState, int, error) {
	return u.runner.run(ctx, lobbyID, playerID, game.Advance, nil)
}
