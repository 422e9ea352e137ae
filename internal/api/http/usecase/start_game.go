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
	"github.com/kdrnck/msgsudot-nye/internal/game"
)

const minPlayers = 2

type StartGameUseCase interface {
	Execute(ctx context.Context, lobbyID, playerID uuid.UUID) (*domain.GameState, int, error)
}

type startGameUseCase struct {
	repository PostgresRepository
	lobbyRedis LobbyRedisRepository
	events     EventPublisher
	sink       StateSink
}

func NewStartGameUseCase(repository PostgresRepository, lobbyRedis LobbyRedisRepository, events EventPublisher, sink StateSink) StartGameUseCase {
	return &startGameUseCase{
		repository: repository,
		lobbyRedis: lobbyRedis,
		events:     events,
		sink:       sink,
	}
}

func (u *startGameUseCase) Execute(ctx context.Context, lobbyID, playerID uuid.UUID) (*domain.GameState, int, error) {
	lobby, err := u.repository.GetLobbyByID(ctx, lobbyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, http.StatusNotFound, domain.ErrLobbyDisbanded
		}
		return nil, http.StatusInternalServerError, err
	}

	if lobby.HostID != playerID {
		return nil, http.StatusForbidden, domain.ErrForbidden
	}
	if lobby.Status != domain.LobbyWaiting {
		return nil, http.StatusConflict, domain.ErrConflict
	}

	members, err := u.repository.ListLobbyPlayers(ctx, lobbyID)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	if len(members) < minPlayers {
		return nil, http.StatusBadRequest, errors.New("at least two players are required")
	}

	playerIDs := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		playerIDs = append(playerIDs, m.PlayerID)
	}

	needed := len(playerIDs) * lobby.TasksPerPlayer
	pool, err := u.repository.GetTasksByCategories(ctx, lobby.SelectedCategories, needed)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}

	order := game.NewLobbyOrder(playerIDs)
	queue, err := game.BuildTaskQueue(order, pool, lobby.TasksPerPlayer)
	if err != nil {
		// yetersiz havuz: oyun oluşturulmadan host'a bildirilir
		if errors.Is(err, domain.ErrNotEnoughTasks) {
			return nil, http.StatusUnprocessableEntity, err
		}
		return nil, http.StatusBadRequest, err
	}

	state, err := game.NewInitialState(order, queue, lobby.TasksPerPlayer, lobby.RoundTimeSeconds, lobby.HostID, time.Now())
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	if err := u.repository.UpdateGameState(ctx, lobbyID, state, 0); err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			return nil, http.StatusConflict, errors.New("game already started")
		}
		return nil, http.StatusInternalServerError, err
	}

	if err := u.repository.SetLobbyStatus(ctx, lobbyID, domain.LobbyPlaying); err != nil {
		return nil, http.StatusInternalServerError, err
	}

	u.lobbyRedis.PublishState(ctx, lobbyID, state)
	u.sink.Apply(lobbyID, state)

	if err := u.events.PublishEvent(ctx, kafka.EventGameStarted, lobbyID, map[string]int{"players": len(playerIDs), "turns": len(queue)}); err != nil {
		zap.L().Warn("game started event not published", zap.Error(err))
	}

	return state, http.StatusCreated, nil
}
