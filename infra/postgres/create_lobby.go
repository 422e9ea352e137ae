package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/kdrnck/msgsudot-nye/domain"
)

func (r *Repository) CreateLobby(ctx context.Context, code string, hostID uuid.UUID, roundSeconds, tasksPerPlayer int, categories []string) (uuid.UUID, error) {
	if roundSeconds < 10 || roundSeconds > 600 {
		return uuid.Nil, fmt.Errorf("%w: invalid round duration", domain.ErrInvalidInput)
	}
	if tasksPerPlayer < 1 || tasksPerPlayer > 10 {
		return uuid.Nil, fmt.Errorf("%w: invalid tasks per player", domain.ErrInvalidInput)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	lobbyQuery := `
		INSERT INTO lobbies (code, host_id, status, round_time_seconds, tasks_per_player, selected_categories)
		VALUES ($1, $2, 'waiting', $3, $4, $5)
		RETURNING id
	`
	var lobbyID uuid.UUID
	err = tx.QueryRowContext(ctx, lobbyQuery, code, hostID, roundSeconds, tasksPerPlayer, pq.Array(categories)).Scan(&lobbyID)
	if err != nil {
		// kısmi unique index: aynı kod yaşayan başka bir lobide kullanılıyor
		if strings.Contains(err.Error(), "idx_lobbies_code_live") {
			return uuid.Nil, fmt.Errorf("%w: lobby code %s already in use", domain.ErrConflict, code)
		}
		return uuid.Nil, fmt.Errorf("failed to create lobby: %w", err)
	}

	memberQuery := `
		INSERT INTO lobby_players (lobby_id, player_id)
		VALUES ($1, $2)
	`
	if _, err = tx.ExecContext(ctx, memberQuery, lobbyID, hostID); err != nil {
		return uuid.Nil, fmt.Errorf("failed to add host to lobby: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return lobbyID, nil
}
