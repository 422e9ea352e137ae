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

func (r *Repository) CreatePlayer(ctx context.Context, nickname string) (domain.Player, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return domain.Player{}, fmt.Errorf("%w: empty nickname", domain.ErrInvalidInput)
	}

	query := `
		INSERT INTO players (nickname)
		VALUES ($1)
		RETURNING id, nickname, created_at
	`
	var player domain.Player
	err := r.db.QueryRowContext(ctx, query, nickname).Scan(&player.ID, &player.Nickname, &player.CreatedAt)
	if err != nil {
		return domain.Player{}, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (r *Repository) GetPlayer(ctx context.Context, playerID uuid.UUID) (domain.Player, error) {
	query := `SELECT id, nickname, created_at FROM players WHERE id = $1`

	var player domain.Player
	err := r.db.QueryRowContext(ctx, query, playerID).Scan(&player.ID, &player.Nickname, &player.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Player{}, fmt.Errorf("%w: player %s", domain.ErrNotFound, playerID)
		}
		return domain.Player{}, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}
