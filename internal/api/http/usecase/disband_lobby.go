package httpUsecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kdrnck/msgsudot-nye/domain"
	"github.com/kdrnck/msgsudot-nye/infra/kafka"
	"github.com/kdrnck/msgsudot-nye/infra/redis"
	"github.com/kdrnck/msgsudot-nye/internal/game"
)

type DisbandLobbyUseCase interface {
	Execute(ctx context.Context, lobbyID, playerID uuid.UUID) (int, error)
}

type disbandLobbyUseCase struct {
	repository PostgresRepository
	lobbyRedis LobbyRedisRepository
	events     EventPublisher
	sink       StateSink
}

func NewDisbandLobbyUseCase(repository PostgresRepository, lobbyRedis LobbyRedisRepository, events EventPublisher, sink StateSink) DisbandLobbyUseCase {
	return &disbandLobbyUseCase{
		repository: repository,
		lobbyRedis: lobbyRedis,
		events:     events,
		sink:       sink,
	}
}

func (u *disbandLobbyUseCase) Execute(ctx context.Context, lobbyID, playerID uuid.UUID) (int, error) {
	lobby, err := u.repository.GetLobbyByID(ctx, lobbyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return http.StatusNotFound, domain.ErrLobbyDisbanded
		}
		return http.StatusInternalServerError, err
	}

	if lobby.HostID != playerID {
		return http.StatusForbidden, domain.ErrForbidden
	}

	// Satır silinmeden ÖNCE state canceled olarak işaretlenip yayınlanır;
	// böylece hâlâ bağlı istemciler not-found yerine iptali görür.
	if lobby.CurrentGameState != nil && !lobby.CurrentGameState.Phase.Terminal() {
		canceled, err := game.Cancel(lobby.CurrentGameState, lobby.HostID, playerID, time.Now())
		if err == nil {
			if err := u.repository.UpdateGameState(ctx, lobbyID, canceled, lobby.CurrentGameState.Version); err != nil {
				zap.L().Warn("could not persist canceled state before disband", zap.Error(err))
			}
			u.lobbyRedis.PublishState(ctx, lobbyID, canceled)
		}
	}

	u.sink.Stop(lobbyID)

	if err := u.repository.DeleteLobby(ctx, lobbyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return http.StatusNotFound, domain.ErrLobbyDisbanded
		}
		return http.StatusInternalServerError, err
	}

	u.lobbyRedis.PublishEvent(ctx, lobbyID, redis.MsgLobbyDisbanded, nil)

	if err := u.events.PublishEvent(ctx, kafka.EventLobbyDisbanded, lobbyID, nil); err != nil {
		zap.L().Warn("lobby disbanded event not published", zap.Error(err))
	}

	return http.StatusOK, nil
}
