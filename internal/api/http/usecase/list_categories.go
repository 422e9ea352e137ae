package httpUsecase

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/kdrnck/msgsudot-nye/domain"
)

type ListCategoriesUseCase interface {
	Execute(ctx context.Context) ([]domain.Category, int, error)
}

type listCategoriesUseCase struct {
	repository PostgresRepository
}

func NewListCategoriesUseCase(repository PostgresRepository) ListCategoriesUseCase {
	return &listCategoriesUseCase{repository: repository}
}

func (u *listCategoriesUseCase) Execute(ctx context.Context) ([]domain.Category, int, error) {
	categories, err := u.repository.ListCategories(ctx)
	if err != nil {
		return nil, fiber.StatusInternalServerError, err
	}
	return categories, fiber.StatusOK, nil
}
