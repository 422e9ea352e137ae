package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/kdrnck/msgsudot-nye/domain"
)

func (r *Repository) GetLobbyByID(ctx context.Context, lobbyID uuid.UUID) (domain.Lobby, error) {
	query := `
		SELECT id, code, host_id, status, round_time_seconds, tasks_per_player,
		       selected_categories, current_game_state, created_at
		FROM lobbies
		WHERE id = $1
	`
	return r.scanLobby(r.db.QueryRowContext(ctx, query, lobbyID))
}

// GetLobbyByCode, katılma kodunu sadece bitmemiş lobiler arasında arar.
func (r *Repository) GetLobbyByCode(ctx context.Context, code string) (domain.Lobby, error) {
	query := `
		SELECT id, code, host_id, status, round_time_seconds, tasks_per_player,
		       selected_categories, current_game_state, created_at
		FROM lobbies
		WHERE code = $1 AND status != 'finished'
	`
	return r.scanLobby(r.db.QueryRowContext(ctx, query, code))
}

func (r *Repository) scanLobby(row *sql.Row) (domain.Lobby, error) {
	var lobby domain.Lobby
	var stateRaw []byte

	err := row.Scan(
		&lobby.ID,
		&lobby.Code,
		&lobby.HostID,
		&lobby.Status,
		&lobby.RoundTimeSeconds,
		&lobby.TasksPerPlayer,
		pq.Array(&lobby.SelectedCategories),
		&stateRaw,
		&lobby.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Lobby{}, fmt.Errorf("%w: lobby", domain.ErrNotFound)
		}
		return domain.Lobby{}, fmt.Errorf("failed to get lobby: %w", err)
	}

	if len(stateRaw) > 0 {
		var state domain.GameState
		if err := json.Unmarshal(stateRaw, &state); err != nil {
			return domain.Lobby{}, fmt.Errorf("failed to decode game state: %w", err)
		}
		lobby.CurrentGameState = &state
	}

	return lobby, nil
}
