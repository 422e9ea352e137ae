package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	httpUsecase "github.com/kdrnck/msgsudot-nye/internal/api/http/usecase"
)

type GetLobbyRequest struct {
	LobbyID uuid.UUID `params:"lobby_id"`
}

type GetLobbyResponse struct {
	httpUsecase.LobbySnapshot
}

type GetLobbyHandler struct {
	usecase  httpUsecase.GetLobbyUseCase
	sessions SessionResolver
}

func NewGetLobbyHandler(usecase httpUsecase.GetLobbyUseCase, sessions SessionResolver) *GetLobbyHandler {
	return &GetLobbyHandler{usecase: usecase, sessions: sessions}
}

func (h *GetLobbyHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *GetLobbyRequest) (*GetLobbyResponse, int, error) {
	playerID, err := resolvePlayer(fbrCtx, ctx, h.sessions)
	if err != nil {
		return nil, fiber.StatusUnauthorized, err
	}

	snapshot, status, err := h.usecase.Execute(ctx, req.LobbyID, playerID)
	if err != nil {
		return nil, status, err
	}

	return &GetLobbyResponse{LobbySnapshot: snapshot}, status, nil
}
