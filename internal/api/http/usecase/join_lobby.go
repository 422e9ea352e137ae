package httpUsecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/domain"
	"github.com/kdrnck/msgsudot-nye/infra/redis"
)

type JoinLobbyUseCase interface {
	Execute(ctx context.Context, code string, playerID uuid.UUID) (domain.Lobby, int, error)
}

type joinLobbyUseCase struct {
	repository PostgresRepository
	lobbyRedis LobbyRedisRepository
}

func NewJoinLobbyUseCase(repository PostgresRepository, lobbyRedis LobbyRedisRepository) JoinLobbyUseCase {
	return &joinLobbyUseCase{
		repository: repository,
		lobbyRedis: lobbyRedis,
	}
}

func (u *joinLobbyUseCase) Execute(ctx context.Context, code string, playerID uuid.UUID) (domain.Lobby, int, error) {
	lobby, err := u.repository.GetLobbyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Lobby{}, http.StatusNotFound, err
		}
		return domain.Lobby{}, http.StatusInternalServerError, err
	}

	if err := u.repository.JoinLobby(ctx, lobby.ID, playerID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return domain.Lobby{}, http.StatusNotFound, err
		case errors.Is(err, domain.ErrConflict):
			return domain.Lobby{}, http.StatusConflict, err
		default:
			return domain.Lobby{}, http.StatusInternalServerError, err
		}
	}

	u.lobbyRedis.PublishEvent(ctx, lobby.ID, redis.MsgPlayerJoined, map[string]string{"player_id": playerID.String()})

	return lobby, http.StatusCreated, nil
}
