package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/kdrnck/msgsudot-nye/domain"
	httpUsecase "github.com/kdrnck/msgsudot-nye/internal/api/http/usecase"
)

type CreateLobbyRequest struct {
	RoundTimeSeconds   int      `json:"round_time_seconds" validate:"required,min=10,max=600"`
	TasksPerPlayer     int      `json:"tasks_per_player" validate:"required,min=1,max=10"`
	SelectedCategories []string `json:"selected_categories"`
}

type CreateLobbyResponse struct {
	Lobby domain.Lobby `json:"lobby"`
}

type CreateLobbyHandler struct {
	usecase  httpUsecase.CreateLobbyUseCase
	sessions SessionResolver
}

func NewCreateLobbyHandler(usecase httpUsecase.CreateLobbyUseCase, sessions SessionResolver) *CreateLobbyHandler {
	return &CreateLobbyHandler{usecase: usecase, sessions: sessions}
}

func (h *CreateLobbyHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *CreateLobbyRequest) (*CreateLobbyResponse, int, error) {
	playerID, err := resolvePlayer(fbrCtx, ctx, h.sessions)
	if err != nil {
		return nil, fiber.StatusUnauthorized, err
	}

	lobby, status, err := h.usecase.Execute(ctx, playerID, req.RoundTimeSeconds, req.TasksPerPlayer, req.SelectedCategories)
	if err != nil {
		return nil, status, err
	}

	return &CreateLobbyResponse{Lobby: lobby}, status, nil
}
