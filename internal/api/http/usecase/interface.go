package httpUsecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/domain"
)

type PostgresRepository interface {
	CreatePlayer(ctx context.Context, nickname string) (domain.Player, error)
	GetPlayer(ctx context.Context, playerID uuid.UUID) (domain.Player, error)
	CreateLobby(ctx context.Context, code string, hostID uuid.UUID, roundSeconds, tasksPerPlayer int, categories []string) (uuid.UUID, error)
	GetLobbyByID(ctx context.Context, lobbyID uuid.UUID) (domain.Lobby, error)
	GetLobbyByCode(ctx context.Context, code string) (domain.Lobby, error)
	JoinLobby(ctx context.Context, lobbyID, playerID uuid.UUID) error
	LeaveLobby(ctx context.Context, lobbyID, playerID uuid.UUID) error
	DeleteLobby(ctx context.Context, lobbyID uuid.UUID) error
	ListLobbyPlayers(ctx context.Context, lobbyID uuid.UUID) ([]domain.LobbyPlayer, error)
	IncrementScore(ctx context.Context, lobbyID, playerID uuid.UUID) error
	GetTasksByCategories(ctx context.Context, categories []string, limit int) ([]domain.Task, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateGameState(ctx context.Context, lobbyID uuid.UUID, state *domain.GameState, expectedVersion int64) error
	SetLobbyStatus(ctx context.Context, lobbyID uuid.UUID, status domain.LobbyStatus) error
}

// LobbyRedisRepository, değişiklik akışının yazma ucudur: her başarılı geçiş
// tam state dokümanı olarak lobinin kanalına yayınlanır.
type LobbyRedisRepository interface {
	PublishState(ctx context.Context, lobbyID uuid.UUID, state *domain.GameState)
	PublishEvent(ctx context.Context, lobbyID uuid.UUID, msgType string, data interface{})
}

type SessionRepository interface {
	CreateSession(ctx context.Context, playerID uuid.UUID) (string, error)
	ResolveSession(ctx context.Context, token string) (uuid.UUID, error)
}

// EventPublisher, lobi yaşam döngüsü olaylarını parti olay akışına (Kafka) yazar.
type EventPublisher interface {
	PublishEvent(ctx context.Context, eventType string, lobbyID uuid.UUID, data interface{}) error
}

// StateSink, koordinatörü en güncel state ile besler (apply-latest sink).
type StateSink interface {
	Apply(lobbyID uuid.UUID, state *domain.GameState)
	Stop(lobbyID uuid.UUID)
}
