package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/domain"
)

// UpdateGameState, lobinin state dokümanını tam doküman olarak değiştirir.
// Yazma, sadece saklı dokümanın version'ı expectedVersion ile eşleşiyorsa
// uygulanır (optimistic CAS); eşleşmiyorsa başka bir yazar önce davranmıştır
// ve domain.ErrVersionConflict döner. expectedVersion 0, henüz state olmayan
// lobi (oyun başlangıcı) anlamına gelir.
func (r *Repository) UpdateGameState(ctx context.Context, lobbyID uuid.UUID, state *domain.GameState, expectedVersion int64) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode game state: %w", err)
	}

	var query string
	var args []interface{}
	if expectedVersion == 0 {
		query = `
			UPDATE lobbies
			SET current_game_state = $1
			WHERE id = $2 AND current_game_state IS NULL
		`
		args = []interface{}{payload, lobbyID}
	} else {
		query = `
			UPDATE lobbies
			SET current_game_state = $1
			WHERE id = $2 AND (current_game_state->>'version')::bigint = $3
		`
		args = []interface{}{payload, lobbyID, expectedVersion}
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update game state: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		// ya lobi silindi ya da version eşleşmedi; ayrımı çağıran yapar
		exists, existsErr := r.lobbyExists(ctx, lobbyID)
		if existsErr != nil {
			return existsErr
		}
		if !exists {
			return fmt.Errorf("%w: lobby", domain.ErrNotFound)
		}
		return fmt.Errorf("%w: expected version %d", domain.ErrVersionConflict, expectedVersion)
	}

	return nil
}

func (r *Repository) SetLobbyStatus(ctx context.Context, lobbyID uuid.UUID, status domain.LobbyStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE lobbies SET status = $1 WHERE id = $2`, status, lobbyID)
	if err != nil {
		return fmt.Errorf("failed to set lobby status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check status update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: lobby", domain.ErrNotFound)
	}

	return nil
}

func (r *Repository) lobbyExists(ctx context.Context, lobbyID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM lobbies WHERE id = $1)`, lobbyID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check lobby existence: %w", err)
	}
	return exists, nil
}
