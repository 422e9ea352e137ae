package bootstrap

import (
	"context"

	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/config"
	httpUsecase "github.com/kdrnck/msgsudot-nye/internal/api/http/usecase"
	"github.com/kdrnck/msgsudot-nye/internal/initializer"
)

type PostgresRepository interface {
	httpUsecase.PostgresRepository
	IsMemberLobby(ctx context.Context, lobbyID, playerID uuid.UUID) (bool, error)
	Close() error
}

func InitDatabase(config config.Config) PostgresRepository {
	return initializer.InitDatabase(config)
}
