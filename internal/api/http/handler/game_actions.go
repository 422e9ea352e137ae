package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/domain"
	httpUsecase "github.com/kdrnck/msgsudot-nye/internal/api/http/usecase"
)

// Anlatıcı aksiyonları aynı şekle sahiptir: lobi id'si alır, geçiş sonrası
// state dokümanını döndürür. Hepsi tek handler tipi üzerinden, usecase'in
// Execute imzası ortak olduğu için tek sarmalayıcıyla bağlanır.

type GameActionRequest struct {
	LobbyID uuid.UUID `params:"lobby_id"`
}

type GameActionResponse struct {
	State *domain.GameState `json:"state"`
}

type gameActionExecutor interface {
	Execute(ctx context.Context, lobbyID, playerID uuid.UUID) (*domain.GameState, int, error)
}

type GameActionHandler struct {
	usecase  gameActionExecutor
	sessions SessionResolver
}

func NewStartTurnHandler(usecase httpUsecase.StartTurnUseCase, sessions SessionResolver) *GameActionHandler {
	return &GameActionHandler{usecase: usecase, sessions: sessions}
}

func NewSkipTurnHandler(usecase httpUsecase.SkipTurnUseCase, sessions SessionResolver) *GameActionHandler {
	return &GameActionHandler{usecase: usecase, sessions: sessions}
}

func NewTimeUpHandler(usecase httpUsecase.TimeUpUseCase, sessions SessionResolver) *GameActionHandler {
	return &GameActionHandler{usecase: usecase, sessions: sessions}
}

func NewAdvanceTurnHandler(usecase httpUsecase.AdvanceTurnUseCase, sessions SessionResolver) *GameActionHandler {
	return &GameActionHandler{usecase: usecase, sessions: sessions}
}

func (h *GameActionHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *GameActionRequest) (*GameActionResponse, int, error) {
	playerID, err := resolvePlayer(fbrCtx, ctx, h.sessions)
	if err != nil {
		return nil, fiber.StatusUnauthorized, err
	}

	state, status, err := h.usecase.Execute(ctx, req.LobbyID, playerID)
	if err != nil {
		return nil, status, err
	}

	return &GameActionResponse{State: state}, status, nil
}
