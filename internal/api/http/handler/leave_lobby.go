package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	httpUsecase "github.com/kdrnck/msgsudot-nye/internal/api/http/usecase"
)

type LeaveLobbyRequest struct {
	LobbyID uuid.UUID `params:"lobby_id"`
}

type LeaveLobbyResponse struct {
	Message string `json:"message"`
}

type LeaveLobbyHandler struct {
	usecase  httpUsecase.LeaveLobbyUseCase
	sessions SessionResolver
}

func NewLeaveLobbyHandler(usecase httpUsecase.LeaveLobbyUseCase, sessions SessionResolver) *LeaveLobbyHandler {
	return &LeaveLobbyHandler{usecase: usecase, sessions: sessions}
}

func (h *LeaveLobbyHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *LeaveLobbyRequest) (*LeaveLobbyResponse, int, error) {
	playerID, err := resolvePlayer(fbrCtx, ctx, h.sessions)
	if err != nil {
		return nil, fiber.StatusUnauthorized, err
	}

	status, err := h.usecase.Execute(ctx, req.LobbyID, playerID)
	if err != nil {
		return nil, status, err
	}

	return &LeaveLobbyResponse{Message: "left lobby"}, status, nil
}
