package game

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdrnck/msgsudot-nye/domain"
)

func makePool(n int) []domain.Task {
	pool := make([]domain.Task, n)
	for i := range pool {
		pool[i] = domain.Task{ID: uuid.New(), Content: fmt.Sprintf("task-%d", i)}
	}
	return pool
}

func TestBuildTaskQueue(t *testing.T) {
	playerA := uuid.New()
	playerB := uuid.New()
	playerC := uuid.New()
	order := []uuid.UUID{playerA, playerB, playerC}

	t.Run("three players two tasks each from pool of eight", func(t *testing.T) {
		queue, err := BuildTaskQueue(order, makePool(8), 2)
		require.NoError(t, err)
		require.Len(t, queue, 6)

		wantNarrators := []uuid.UUID{playerA, playerA, playerB, playerB, playerC, playerC}
		for i, entry := range queue {
			assert.Equal(t, wantNarrators[i], entry.NarratorID, "narrator at position %d", i)
		}
	})

	t.Run("grouped into contiguous blocks in player order", func(t *testing.T) {
		perPlayer := 3
		queue, err := BuildTaskQueue(order, makePool(20), perPlayer)
		require.NoError(t, err)
		require.Len(t, queue, len(order)*perPlayer)

		for i, entry := range queue {
			assert.Equal(t, order[i/perPlayer], entry.NarratorID)
		}
	})

	t.Run("draws only from the pool without repeats", func(t *testing.T) {
		pool := makePool(10)
		poolIDs := make(map[uuid.UUID]string, len(pool))
		for _, task := range pool {
			poolIDs[task.ID] = task.Content
		}

		queue, err := BuildTaskQueue(order, pool, 3)
		require.NoError(t, err)

		seen := make(map[uuid.UUID]bool)
		for _, entry := range queue {
			content, ok := poolIDs[entry.TaskID]
			require.True(t, ok, "task %s not from pool", entry.TaskID)
			assert.Equal(t, content, entry.TaskContent)
			assert.False(t, seen[entry.TaskID], "task %s assigned twice", entry.TaskID)
			seen[entry.TaskID] = true
		}
	})

	t.Run("fails when pool is too small", func(t *testing.T) {
		queue, err := BuildTaskQueue(order, makePool(5), 2)
		assert.Nil(t, queue)
		assert.True(t, errors.Is(err, domain.ErrNotEnoughTasks))
	})

	t.Run("rejects empty order", func(t *testing.T) {
		_, err := BuildTaskQueue(nil, makePool(5), 2)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})
}

func TestNewLobbyOrder(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}

	order := NewLobbyOrder(ids)
	require.Len(t, order, len(ids))

	// aynı kümenin bir permütasyonu olmalı
	assert.ElementsMatch(t, ids, order)
}
