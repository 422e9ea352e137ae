package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/domain"
	httpUsecase "github.com/kdrnck/msgsudot-nye/internal/api/http/usecase"
)

type StartGameRequest struct {
	LobbyID uuid.UUID `params:"lobby_id"`
}

type StartGameResponse struct {
	State *domain.GameState `json:"state"`
}

type StartGameHandler struct {
	usecase  httpUsecase.StartGameUseCase
	sessions SessionResolver
}

func NewStartGameHandler(usecase httpUsecase.StartGameUseCase, sessions SessionResolver) *StartGameHandler {
	return &StartGameHandler{usecase: usecase, sessions: sessions}
}

func (h *StartGameHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *StartGameRequest) (*StartGameResponse, int, error) {
	playerID, err := resolvePlayer(fbrCtx, ctx, h.sessions)
	if err != nil {
		return nil, fiber.StatusUnauthorized, err
	}

	state, status, err := h.usecase.Execute(ctx, req.LobbyID, playerID)
	if err != nil {
		return nil, status, err
	}

	return &StartGameResponse{State: state}, status, nil
}
