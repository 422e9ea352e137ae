package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/kdrnck/msgsudot-nye/domain"
	httpUsecase "github.com/kdrnck/msgsudot-nye/internal/api/http/usecase"
)

type JoinLobbyRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type JoinLobbyResponse struct {
	Lobby domain.Lobby `json:"lobby"`
}

type JoinLobbyHandler struct {
	usecase  httpUsecase.JoinLobbyUseCase
	sessions SessionResolver
}

func NewJoinLobbyHandler(usecase httpUsecase.JoinLobbyUseCase, sessions SessionResolver) *JoinLobbyHandler {
	return &JoinLobbyHandler{usecase: usecase, sessions: sessions}
}

func (h *JoinLobbyHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *JoinLobbyRequest) (*JoinLobbyResponse, int, error) {
	playerID, err := resolvePlayer(fbrCtx, ctx, h.sessions)
	if err != nil {
		return nil, fiber.StatusUnauthorized, err
	}

	lobby, status, err := h.usecase.Execute(ctx, req.Code, playerID)
	if err != nil {
		return nil, status, err
	}

	return &JoinLobbyResponse{Lobby: lobby}, status, nil
}
