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
)

type transitionFunc func(s *domain.GameState, caller uuid.UUID, now time.Time) (*domain.GameState, error)

// transitionRunner, tüm engine aksiyonlarının ortak akışıdır: güncel dokümanı
// oku, saf geçişi uygula, CAS ile yaz, yayınla. Version çakışması hata değildir;
// başka bir yazar (ör. koordinatör ile anlatıcının yarışı) önce davranmıştır,
// güncel doküman okunup aynen döndürülür.
type transitionRunner struct {
	repository PostgresRepository
	lobbyRedis LobbyRedisRepository
	events     EventPublisher
	sink       StateSink
}

func (r *transitionRunner) run(ctx context.Context, lobbyID, callerID uuid.UUID, fn transitionFunc, afterPersist func(ctx context.Context, next *domain.GameState) error) (*domain.GameState, int, error) {
	lobby, err := r.repository.GetLobbyByID(ctx, lobbyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, http.StatusNotFound, domain.ErrLobbyDisbanded
		}
		return nil, http.StatusInternalServerError, err
	}

	current := lobby.CurrentGameState
	if current == nil || lobby.Status != domain.LobbyPlaying {
		return nil, http.StatusConflict, domain.ErrGameNotActive
	}

	next, err := fn(current, callerID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return nil, http.StatusForbidden, err
		case errors.Is(err, domain.ErrConflict):
			return nil, http.StatusConflict, err
		case errors.Is(err, domain.ErrInvalidInput):
			return nil, http.StatusBadRequest, err
		default:
			return nil, http.StatusInternalServerError, err
		}
	}

	if err := r.repository.UpdateGameState(ctx, lobbyID, next, current.Version); err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			refreshed, refErr := r.repository.GetLobbyByID(ctx, lobbyID)
			if refErr != nil || refreshed.CurrentGameState == nil {
				return nil, http.StatusConflict, err
			}
			return refreshed.CurrentGameState, http.StatusOK, nil
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, http.StatusNotFound, domain.ErrLobbyDisbanded
		}
		return nil, http.StatusInternalServerError, err
	}

	if afterPersist != nil {
		if err := afterPersist(ctx, next); err != nil {
			zap.L().Error("post-transition side effect failed",
				zap.String("lobby_id", lobbyID.String()), zap.Error(err))
		}
	}

	r.lobbyRedis.PublishState(ctx, lobbyID, next)
	r.sink.Apply(lobbyID, next)

	if next.Phase == domain.PhaseFinished {
		if err := r.repository.SetLobbyStatus(ctx, lobbyID, domain.LobbyFinished); err != nil {
			zap.L().Error("could not mark lobby finished", zap.Error(err))
		}
		if err := r.events.PublishEvent(ctx, kafka.EventGameFinished, lobbyID, nil); err != nil {
			zap.L().Warn("game finished event not published", zap.Error(err))
		}
	}

	return next, http.StatusOK, nil
}
