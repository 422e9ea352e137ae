package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	httpUsecase "github.com/kdrnck/msgsudot-nye/internal/api/http/usecase"
)

type DisbandLobbyRequest struct {
	LobbyID uuid.UUID `params:"lobby_id"`
}

type DisbandLobbyResponse struct {
	Message string `json:"message"`
}

type DisbandLobbyHandler struct {
	usecase  httpUsecase.DisbandLobbyUseCase
	sessions SessionResolver
}

func NewDisbandLobbyHandler(usecase httpUsecase.DisbandLobbyUseCase, sessions SessionResolver) *DisbandLobbyHandler {
	return &DisbandLobbyHandler{usecase: usecase, sessions: sessions}
}

func (h *DisbandLobbyHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *DisbandLobbyRequest) (*DisbandLobbyResponse, int, error) {
	playerID, err := resolvePlayer(fbrCtx, ctx, h.sessions)
	if err != nil {
		return nil, fiber.StatusUnauthorized, err
	}

	status, err := h.usecase.Execute(ctx, req.LobbyID, playerID)
	if err != nil {
		return nil, status, err
	}

	return &DisbandLobbyResponse{Message: "lobby disbanded"}, status, nil
}
