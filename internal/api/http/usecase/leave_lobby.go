package httpUsecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/domain"
	"github.com/kdrnck/msgsudot-nye/infra/redis"
)

type LeaveLobbyUseCase interface {
	Execute(ctx context.Context, lobbyID, playerID uuid.UUID) (int, error)
}

type leaveLobbyUseCase struct {
	repository PostgresRepository
	lobbyRedis LobbyRedisRepository
	disband    DisbandLobbyUseCase
}

func NewLeaveLobbyUseCase(repository PostgresRepository, lobbyRedis LobbyRedisRepository, disband DisbandLobbyUseCase) LeaveLobbyUseCase {
	return &leaveLobbyUseCase{
		repository: repository,
		lobbyRedis: lobbyRedis,
		disband:    disband,
	}
}

func (u *leaveLobbyUseCase) Execute(ctx context.Context, lobbyID, playerID uuid.UUID) (int, error) {
	lobby, err := u.repository.GetLobbyByID(ctx, lobbyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return http.StatusNotFound, domain.ErrLobbyDisbanded
		}
		return http.StatusInternalServerError, err
	}

	// Host ayrılırsa lobi dağılır
	if lobby.HostID == playerID {
		return u.disband.Execute(ctx, lobbyID, playerID)
	}

	if err := u.repository.LeaveLobby(ctx, lobbyID, playerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return http.StatusNotFound, err
		}
		return http.StatusInternalServerError, err
	}

	u.lobbyRedis.PublishEvent(ctx, lobbyID, redis.MsgPlayerLeft, map[string]string{"player_id": playerID.String()})

	return http.StatusOK, nil
}
