package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/domain"
)

func (r *Repository) JoinLobby(ctx context.Context, lobbyID, playerID uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx, `SELECT status FROM lobbies WHERE id = $1 FOR UPDATE`, lobbyID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: lobby", domain.ErrNotFound)
		}
		return fmt.Errorf("failed to lock lobby: %w", err)
	}

	if status != string(domain.LobbyWaiting) {
		return fmt.Errorf("%w: lobby is not accepting players", domain.ErrConflict)
	}

	query := `
		INSERT INTO lobby_players (lobby_id, player_id)
		VALUES ($1, $2)
	`
	if _, err = tx.ExecContext(ctx, query, lobbyID, playerID); err != nil {
		if strings.Contains(err.Error(), "unique constraint") {
			return fmt.Errorf("%w: player already in lobby", domain.ErrConflict)
		}
		return fmt.Errorf("failed to join lobby: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *Repository) LeaveLobby(ctx context.Context, lobbyID, playerID uuid.UUID) error {
	query := `DELETE FROM lobby_players WHERE lobby_id = $1 AND player_id = $2`

	result, err := r.db.ExecContext(ctx, query, lobbyID, playerID)
	if err != nil {
		return fmt.Errorf("failed to leave lobby: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check leave result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: player is not in this lobby", domain.ErrNotFound)
	}

	return nil
}

// IsMemberLobby, websocket bağlantısı açılmadan önce üyelik kontrolü için kullanılır.
func (r *Repository) IsMemberLobby(ctx context.Context, lobbyID, playerID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM lobby_players WHERE lobby_id = $1 AND player_id = $2)`

	var isMember bool
	if err := r.db.QueryRowContext(ctx, query, lobbyID, playerID).Scan(&isMember); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}

	return isMember, nil
}
