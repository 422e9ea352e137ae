package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/kdrnck/msgsudot-nye/domain"
	httpUsecase "github.com/kdrnck/msgsudot-nye/internal/api/http/usecase"
)

type ListCategoriesRequest struct {
}

type ListCategoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}

type ListCategoriesHandler struct {
	usecase httpUsecase.ListCategoriesUseCase
}

func NewListCategoriesHandler(usecase httpUsecase.ListCategoriesUseCase) *ListCategoriesHandler {
	return &ListCategoriesHandler{usecase: usecase}
}

func (h *ListCategoriesHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *ListCategoriesRequest) (*ListCategoriesResponse, int, error) {
	categories, status, err := h.usecase.Execute(ctx)
	if err != nil {
		return nil, status, err
	}
	return &ListCategoriesResponse{Categories: categories}, status, nil
}
