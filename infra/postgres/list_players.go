package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/domain"
)

func (r *Repository) ListLobbyPlayers(ctx context.Context, lobbyID uuid.UUID) ([]domain.LobbyPlayer, error) {
	query := `
		SELECT lp.id, lp.lobby_id, lp.player_id, p.nickname, lp.score, lp.is_active, lp.joined_at
		FROM lobby_players lp
		JOIN players p ON p.id = lp.player_id
		WHERE lp.lobby_id = $1
		ORDER BY lp.joined_at
	`
	rows, err := r.db.QueryContext(ctx, query, lobbyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lobby players: %w", err)
	}
	defer rows.Close()

	var players []domain.LobbyPlayer
	for rows.Next() {
		var lp domain.LobbyPlayer
		if err := rows.Scan(&lp.ID, &lp.LobbyID, &lp.PlayerID, &lp.Nickname, &lp.Score, &lp.IsActive, &lp.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lobby player: %w", err)
		}
		players = append(players, lp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lobby players: %w", err)
	}

	return players, nil
}

// IncrementScore, doğru tahmin eden oyuncunun skorunu 1 artırır.
func (r *Repository) IncrementScore(ctx context.Context, lobbyID, playerID uuid.UUID) error {
	query := `
		UPDATE lobby_players
		SET score = score + 1
		WHERE lobby_id = $1 AND player_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, lobbyID, playerID)
	if err != nil {
		return fmt.Errorf("failed to increment score: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check score update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: player is not in this lobby", domain.ErrNotFound)
	}

	return nil
}
