package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/kdrnck/msgsudot-nye/domain"
	httpUsecase "github.com/kdrnck/msgsudot-nye/internal/api/http/usecase"
)

type RegisterPlayerRequest struct {
	Nickname string `json:"nickname" validate:"required,min=2,max=32"`
}

type RegisterPlayerResponse struct {
	Player       domain.Player `json:"player"`
	SessionToken string        `json:"session_token"`
}

type RegisterPlayerHandler struct {
	usecase httpUsecase.RegisterPlayerUseCase
}

func NewRegisterPlayerHandler(usecase httpUsecase.RegisterPlayerUseCase) *RegisterPlayerHandler {
	return &RegisterPlayerHandler{usecase: usecase}
}

func (h *RegisterPlayerHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *RegisterPlayerRequest) (*RegisterPlayerResponse, int, error) {
	player, token, status, err := h.usecase.Execute(ctx, req.Nickname)
	if err != nil {
		return nil, status, err
	}

	return &RegisterPlayerResponse{Player: player, SessionToken: token}, status, nil
}
