package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/domain"
	httpUsecase "github.com/kdrnck/msgsudot-nye/internal/api/http/usecase"
)

type CorrectGuessRequest struct {
	LobbyID         uuid.UUID `params:"lobby_id"`
	CorrectPlayerID uuid.UUID `json:"correct_player_id" validate:"required"`
}

type CorrectGuessResponse struct {
	State *domain.GameState `json:"state"`
}

type CorrectGuessHandler struct {
	usecase  httpUsecase.CorrectGuessUseCase
	sessions SessionResolver
}

func NewCorrectGuessHandler(usecase httpUsecase.CorrectGuessUseCase, sessions SessionResolver) *CorrectGuessHandler {
	return &CorrectGuessHandler{usecase: usecase, sessions: sessions}
}

func (h *CorrectGuessHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *CorrectGuessRequest) (*CorrectGuessResponse, int, error) {
	playerID, err := resolvePlayer(fbrCtx, ctx, h.sessions)
	if err != nil {
		return nil, fiber.StatusUnauthorized, err
	}

	state, status, err := h.usecase.Execute(ctx, req.LobbyID, playerID, req.CorrectPlayerID)
	if err != nil {
		return nil, status, err
	}

	return &CorrectGuessResponse{State: state}, status, nil
}
