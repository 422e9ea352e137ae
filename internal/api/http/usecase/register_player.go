package httpUsecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/kdrnck/msgsudot-nye/domain"
)

type RegisterPlayerUseCase interface {
	Execute(ctx context.Context, nickname string) (domain.Player, string, int, error)
}

type registerPlayerUseCase struct {
	repository PostgresRepository
	sessions   SessionRepository
}

func NewRegisterPlayerUseCase(repository PostgresRepository, sessions SessionRepository) RegisterPlayerUseCase {
	return &registerPlayerUseCase{
		repository: repository,
		sessions:   sessions,
	}
}

func (u *registerPlayerUseCase) Execute(ctx context.Context, nickname string) (domain.Player, string, int, error) {
	player, err := u.repository.CreatePlayer(ctx, nickname)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return domain.Player{}, "", http.StatusBadRequest, err
		}
		return domain.Player{}, "", http.StatusInternalServerError, err
	}

	token, err := u.sessions.CreateSession(ctx, player.ID)
	if err != nil {
		return domain.Player{}, "", http.StatusInternalServerError, err
	}

	return player, token, http.StatusCreated, nil
}
