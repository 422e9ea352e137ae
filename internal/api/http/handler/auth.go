package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/domain"
)

type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (uuid.UUID, error)
}

// resolvePlayer, X-Session-Token başlığından oyuncu kimliğini çözer. Kimlik
// ambient bir yerden okunmaz; her handler çözülen değeri usecase'e açıkça taşır.
func resolvePlayer(fbrCtx *fiber.Ctx, ctx context.Context, sessions SessionResolver) (uuid.UUID, error) {
	token := fbrCtx.Get("X-Session-Token")
	if token == "" {
		return uuid.Nil, domain.ErrUnauthorized
	}

	playerID, err := sessions.ResolveSession(ctx, token)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}

	return playerID, nil
}
