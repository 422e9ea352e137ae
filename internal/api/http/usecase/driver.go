package httpUsecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kdrnck/msgsudot-nye/infra/redis"
)

// CoordinatorDriver, koordinatörün deadline tetiklemelerini aksiyon
// usecase'lerine bağlar. Koordinatör, o anki anlatıcının kimliğiyle hareket
// eder; yetki kontrolü ve CAS yine saf geçiş + store katmanında uygulanır.
// Usecase'ler koordinatöre, koordinatör de bu adaptör üzerinden usecase'lere
// bağlandığı için bağlama bootstrap'te iki aşamada yapılır.
type CoordinatorDriver struct {
	timeUp     TimeUpUseCase
	advance    AdvanceTurnUseCase
	lobbyRedis LobbyRedisRepository
}

func NewCoordinatorDriver(lobbyRedis LobbyRedisRepository) *CoordinatorDriver {
	return &CoordinatorDriver{lobbyRedis: lobbyRedis}
}

func (d *CoordinatorDriver) Bind(timeUp TimeUpUseCase, advance AdvanceTurnUseCase) {
	d.timeUp = timeUp
	d.advance = advance
}

func (d *CoordinatorDriver) SubmitTimeUp(ctx context.Context, lobbyID, narratorID uuid.UUID) error {
	if d.timeUp == nil {
		return nil
	}
	_, _, err := d.timeUp.Execute(ctx, lobbyID, narratorID)
	return err
}

func (d *CoordinatorDriver) SubmitAdvance(ctx context.Context, lobbyID, narratorID uuid.UUID) error {
	if d.advance == nil {
		return nil
	}
	_, _, err := d.advance.Execute(ctx, lobbyID, narratorID)
	return err
}

func (d *CoordinatorDriver) AnnounceWarning(ctx context.Context, lobbyID uuid.UUID, globalTurnIndex, remainingSec int) {
	zap.L().Debug("time warning",
		zap.String("lobby_id", lobbyID.String()), zap.Int("turn", globalTurnIndex))

	d.lobbyRedis.PublishEvent(ctx, lobbyID, redis.MsgTimeWarning, map[string]int{
		"global_turn_index": globalTurnIndex,
		"remaining_sec":     remainingSec,
	})
}
