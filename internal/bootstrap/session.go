package bootstrap

import (
	"context"

	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/config"
	"github.com/kdrnck/msgsudot-nye/internal/initializer"
)

type SessionManager interface {
	CreateSession(ctx context.Context, playerID uuid.UUID) (string, error)
	ResolveSession(ctx context.Context, token string) (uuid.UUID, error)
	DeleteSession(ctx context.Context, token string) error
}

func InitSessionRedis(config config.Config) SessionManager {
	return initializer.InitSessionRedis(config)
}
