package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/domain"
)

// DeleteLobby, lobi satırını ve (cascade ile) üyelikleri siler. Çağıran,
// silmeden önce state'i canceled olarak işaretleyip yayınlamış olmalıdır ki
// diğer istemciler not-found yerine iptali görsün.
func (r *Repository) DeleteLobby(ctx context.Context, lobbyID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lobbies WHERE id = $1`, lobbyID)
	if err != nil {
		return fmt.Errorf("failed to delete lobby: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: lobby", domain.ErrNotFound)
	}

	return nil
}
