package httpUsecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kdrnck/msgsudot-nye/domain"
	"github.com/kdrnck/msgsudot-nye/infra/kafka"
)

const codeAttempts = 5

type CreateLobbyUseCase interface {
	Execute(ctx context.Context, hostID uuid.UUID, roundSeconds, tasksPerPlayer int, categories []string) (domain.Lobby, int, error)
}

type createLobbyUseCase struct {
	repository PostgresRepository
	events     EventPublisher
}

func NewCreateLobbyUseCase(repository PostgresRepository, events EventPublisher) CreateLobbyUseCase {
	return &createLobbyUseCase{
		repository: repository,
		events:     events,
	}
}

func (u *createLobbyUseCase) Execute(ctx context.Context, hostID uuid.UUID, roundSeconds, tasksPerPlayer int, categories []string) (domain.Lobby, int, error) {
	var lobbyID uuid.UUID
	var err error

	// 6 haneli kod yaşayan lobiler arasında benzersiz olmalı; çakışmada yeniden dene
	for attempt := 0; attempt < codeAttempts; attempt++ {
		code := newJoinCode()
		lobbyID, err = u.repository.CreateLobby(ctx, code, hostID, roundSeconds, tasksPerPlayer, categories)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrConflict) {
			break
		}
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return domain.Lobby{}, http.StatusBadRequest, err
		case errors.Is(err, domain.ErrConflict):
			return domain.Lobby{}, http.StatusConflict, err
		default:
			return domain.Lobby{}, http.StatusInternalServerError, err
		}
	}

	lobby, err := u.repository.GetLobbyByID(ctx, lobbyID)
	if err != nil {
		return domain.Lobby{}, http.StatusInternalServerError, err
	}

	if err := u.events.PublishEvent(ctx, kafka.EventLobbyCreated, lobbyID, map[string]string{"code": lobby.Code}); err != nil {
		zap.L().Warn("lobby created event not published", zap.Error(err))
	}

	return lobby, http.StatusCreated, nil
}

func newJoinCode() string {
	return fmt.Sprintf("%06d", rand.IntN(1000000))
}
