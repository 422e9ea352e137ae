package httpUsecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/domain"
)

// LobbySnapshot, sunum katmanının tükettiği okuma modelidir: lobi, üyeler ve
// gömülü state'in değişmez bir görüntüsü.
type LobbySnapshot struct {
	Lobby   domain.Lobby         `json:"lobby"`
	Players []domain.LobbyPlayer `json:"players"`
}

type GetLobbyUseCase interface {
	Execute(ctx context.Context, lobbyID, playerID uuid.UUID) (LobbySnapshot, int, error)
}

type getLobbyUseCase struct {
	repository PostgresRepository
}

func NewGetLobbyUseCase(repository PostgresRepository) GetLobbyUseCase {
	return &getLobbyUseCase{repository: repository}
}

func (u *getLobbyUseCase) Execute(ctx context.Context, lobbyID, playerID uuid.UUID) (LobbySnapshot, int, error) {
	lobby, err := u.repository.GetLobbyByID(ctx, lobbyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// watchdog bu durumu "lobi dağıtıldı" olarak yorumlar
			return LobbySnapshot{}, http.StatusNotFound, domain.ErrLobbyDisbanded
		}
		return LobbySnapshot{}, http.StatusInternalServerError, err
	}

	players, err := u.repository.ListLobbyPlayers(ctx, lobbyID)
	if err != nil {
		return LobbySnapshot{}, http.StatusInternalServerError, err
	}

	isMember := false
	for _, p := range players {
		if p.PlayerID == playerID {
			isMember = true
			break
		}
	}
	if !isMember {
		return LobbySnapshot{}, http.StatusForbidden, domain.ErrForbidden
	}

	return LobbySnapshot{Lobby: lobby, Players: players}, http.StatusOK, nil
}
