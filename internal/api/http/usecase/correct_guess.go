package httpUsecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/domain"
	"github.com/kdrnck/msgsudot-nye/internal/game"
)

type CorrectGuessUseCase interface {
	Execute(ctx context.Context, lobbyID, playerID, guesserID uuid.UUID) (*domain.GameState, int, error)
}

type correctGuessUseCase struct {
	repository PostgresRepository
	runner     transitionRunner
}

func NewCorrectGuessUseCase(repository PostgresRepository, lobbyRedis LobbyRedisRepository, events EventPublisher, sink StateSink) CorrectGuessUseCase {
	return &correctGuessUseCase{
		repository: repository,
		runner:     transitionRunner{repository: repository, lobbyRedis: lobbyRedis, events: events, sink: sink},
	}
}

func (u *correctGuessUseCase) Execute(ctx context.Context, lobbyID, playerID, guesserID uuid.UUID) (*domain.GameState, int, error) {
	guesser, err := u.repository.GetPlayer(ctx, guesserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, http.StatusBadRequest, err
		}
		return nil, http.StatusInternalServerError, err
	}

	fn := func(s *domain.GameState, caller uuid.UUID, now time.Time) (*domain.GameState, error) {
		return game.CorrectGuess(s, caller, guesserID, guesser.Nickname, now)
	}

	// Skor artışı, state CAS ile yazıldıktan sonra yapılır; yarışan iki tahmin
	// girişiminden sadece CAS'i kazanan skor yazar.
	incrementScore := func(ctx context.Context, _ *domain.GameState) error {
		return u.repository.IncrementScore(ctx, lobbyID, guesserID)
	}

	return u.runner.run(ctx, lobbyID, playerID, fn, incrementScore)
}
