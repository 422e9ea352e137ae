package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/domain"
)

// NewLobbyOrder, oyuncu rotasyonunu oyun başında bir kez karıştırır.
// Girdi dilimine dokunmaz.
func NewLobbyOrder(playerIDs []uuid.UUID) []uuid.UUID {
	order := make([]uuid.UUID, len(playerIDs))
	copy(order, playerIDs)
	rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

// BuildTaskQueue, her oyuncuya perPlayer adet ardışık görev düşecek şekilde
// havuzdan tekrarsız ve düzgün karıştırılmış bir kuyruk üretir. Havuz
// yetersizse oyun başlatılmadan domain.ErrNotEnoughTasks döner; kuyruk asla
// sessizce kısaltılmaz.
func BuildTaskQueue(order []uuid.UUID, pool []domain.Task, perPlayer int) ([]domain.QueuedTurn, error) {
	if len(order) == 0 || perPlayer <= 0 {
		return nil, fmt.Errorf("%w: empty player order or non-positive tasks per player", domain.ErrInvalidInput)
	}

	needed := len(order) * perPlayer
	if len(pool) < needed {
		return nil, fmt.Errorf("%w: need %d tasks for %d players, pool has %d",
			domain.ErrNotEnoughTasks, needed, len(order), len(pool))
	}

	shuffled := make([]domain.Task, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	queue := make([]domain.QueuedTurn, 0, needed)
	taskIndex := 0
	for _, playerID := range order {
		for i := 0; i < perPlayer; i++ {
			task := shuffled[taskIndex]
			queue = append(queue, domain.QueuedTurn{
				NarratorID:  playerID,
				TaskID:      task.ID,
				TaskContent: task.Content,
			})
			taskIndex++
		}
	}

	return queue, nil
}
