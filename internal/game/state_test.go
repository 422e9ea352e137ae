package game

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdrnck/msgsudot-nye/domain"
)

var (
	playerA = uuid.New()
	playerB = uuid.New()
	playerC = uuid.New()
	t0      = time.Date(2025, 12, 31, 21, 0, 0, 0, time.UTC)
)

func newTestState(t *testing.T, perPlayer int) *domain.GameState {
	t.Helper()
	order := []uuid.UUID{playerA, playerB, playerC}
	queue, err := BuildTaskQueue(order, makePool(len(order)*perPlayer), perPlayer)
	require.NoError(t, err)

	state, err := NewInitialState(order, queue, perPlayer, 60, playerA, t0)
	require.NoError(t, err)
	return state
}

// runToPlaying, state'i ilk turun playing fazına getirir.
func runToPlaying(t *testing.T, perPlayer int) *domain.GameState {
	t.Helper()
	state := newTestState(t, perPlayer)
	state, err := StartTurn(state, state.Turn.NarratorID, t0)
	require.NoError(t, err)
	return state
}

func assertTurnInvariant(t *testing.T, s *domain.GameState) {
	t.Helper()
	require.Less(t, s.Turn.GlobalTurnIndex, len(s.TaskQueue))
	assert.Equal(t, s.TaskQueue[s.Turn.GlobalTurnIndex].NarratorID, s.Turn.NarratorID)
}

func TestNewInitialState(t *testing.T) {
	state := newTestState(t, 2)

	assert.Equal(t, domain.PhaseWaitingForStart, state.Phase)
	assert.Equal(t, 0, state.Turn.GlobalTurnIndex)
	assert.Equal(t, 0, state.Turn.NarratorIndex)
	assert.Equal(t, 0, state.Turn.WordIndexInBlock)
	assert.Nil(t, state.Timer.StartedAtMs)
	assert.Equal(t, 60, state.Timer.DurationSec)
	assert.EqualValues(t, 1, state.Version)
	assert.Equal(t, playerA, state.LastActionBy)
	assertTurnInvariant(t, state)
}

func TestNextTurnInfo(t *testing.T) {
	t.Run("increments global index by exactly one", func(t *testing.T) {
		state := newTestState(t, 2)
		gameOver, next := NextTurnInfo(state)
		require.False(t, gameOver)
		assert.Equal(t, state.Turn.GlobalTurnIndex+1, next.GlobalTurnIndex)
	})

	t.Run("word index increments within a block and resets across narrators", func(t *testing.T) {
		state := runToPlaying(t, 2)

		// A'nın bloğu içinde: 0 -> 1
		next, err := Skip(state, playerA, t0.Add(time.Second))
		require.NoError(t, err)
		assert.Equal(t, playerA, next.Turn.NarratorID)
		assert.Equal(t, 1, next.Turn.WordIndexInBlock)
		assertTurnInvariant(t, next)

		// blok bitti, anlatıcı B'ye geçti: sıfırlanır
		next, err = Skip(next, playerA, t0.Add(2*time.Second))
		require.NoError(t, err)
		assert.Equal(t, playerB, next.Turn.NarratorID)
		assert.Equal(t, 1, next.Turn.NarratorIndex)
		assert.Equal(t, 0, next.Turn.WordIndexInBlock)
		assertTurnInvariant(t, next)
	})

	t.Run("reports game over on the last entry", func(t *testing.T) {
		state := newTestState(t, 1)
		state.Turn.GlobalTurnIndex = len(state.TaskQueue) - 1
		gameOver, next := NextTurnInfo(state)
		assert.True(t, gameOver)
		assert.Nil(t, next)
	})
}

func TestStartTurn(t *testing.T) {
	state := newTestState(t, 2)

	t.Run("non-narrator cannot start", func(t *testing.T) {
		_, err := StartTurn(state, playerB, t0)
		assert.True(t, errors.Is(err, domain.ErrForbidden))
	})

	t.Run("narrator starts the timer epoch", func(t *testing.T) {
		next, err := StartTurn(state, playerA, t0)
		require.NoError(t, err)
		assert.Equal(t, domain.PhasePlaying, next.Phase)
		require.NotNil(t, next.Timer.StartedAtMs)
		assert.Equal(t, t0.UnixMilli(), *next.Timer.StartedAtMs)
		assert.EqualValues(t, state.Version+1, next.Version)

		// girdi state'i değişmemiş olmalı
		assert.Equal(t, domain.PhaseWaitingForStart, state.Phase)
		assert.Nil(t, state.Timer.StartedAtMs)
	})
}

func TestTimeUp(t *testing.T) {
	state := runToPlaying(t, 2)

	now := t0.Add(60 * time.Second)
	next, err := TimeUp(state, playerA, now)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseTimeUp, next.Phase)
	require.NotNil(t, next.Timer.PausedAtMs)
	assert.Equal(t, now.UnixMilli(), *next.Timer.PausedAtMs)
	assert.Nil(t, next.Reveal)

	t.Run("second expiry on time_up state is rejected", func(t *testing.T) {
		_, err := TimeUp(next, playerA, now.Add(time.Second))
		assert.True(t, errors.Is(err, domain.ErrConflict))
	})

	t.Run("only narrator may submit", func(t *testing.T) {
		_, err := TimeUp(state, playerC, now)
		assert.True(t, errors.Is(err, domain.ErrForbidden))
	})
}

func TestCorrectGuess(t *testing.T) {
	state := runToPlaying(t, 2)
	now := t0.Add(10 * time.Second)

	t.Run("moves to reveal with guesser and deadline", func(t *testing.T) {
		next, err := CorrectGuess(state, playerA, playerB, "Bahar", now)
		require.NoError(t, err)
		assert.Equal(t, domain.PhaseReveal, next.Phase)
		require.NotNil(t, next.Reveal)
		assert.Equal(t, playerB, next.Reveal.CorrectPlayerID)
		assert.Equal(t, "Bahar", next.Reveal.CorrectPlayerName)
		assert.Equal(t, state.Turn.TaskContent, next.Reveal.TaskContent)
		assert.Equal(t, now.Add(RevealWindow).UnixMilli(), next.Reveal.EndsAtMs)
	})

	t.Run("narrator cannot be the guesser", func(t *testing.T) {
		_, err := CorrectGuess(state, playerA, playerA, "Anlatıcı", now)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("guesser must be a member of the rotation", func(t *testing.T) {
		_, err := CorrectGuess(state, playerA, uuid.New(), "Yabancı", now)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("rejected outside playing", func(t *testing.T) {
		timeUp, err := TimeUp(state, playerA, now)
		require.NoError(t, err)
		_, err = CorrectGuess(timeUp, playerA, playerB, "Bahar", now)
		assert.True(t, errors.Is(err, domain.ErrConflict))
	})
}

func TestAdvance(t *testing.T) {
	t.Run("after reveal starts the next turn with a fresh epoch", func(t *testing.T) {
		state := runToPlaying(t, 2)
		reveal, err := CorrectGuess(state, playerA, playerB, "Bahar", t0.Add(10*time.Second))
		require.NoError(t, err)

		now := t0.Add(14 * time.Second)
		next, err := Advance(reveal, playerA, now)
		require.NoError(t, err)
		assert.Equal(t, domain.PhasePlaying, next.Phase)
		assert.Nil(t, next.Reveal)
		require.NotNil(t, next.Timer.StartedAtMs)
		assert.Equal(t, now.UnixMilli(), *next.Timer.StartedAtMs)
		assert.Equal(t, state.Turn.GlobalTurnIndex+1, next.Turn.GlobalTurnIndex)
		assertTurnInvariant(t, next)
	})

	t.Run("finishes the game on the last entry", func(t *testing.T) {
		state := runToPlaying(t, 1)
		state.Turn = lastTurn(state)

		timeUp, err := TimeUp(state, state.Turn.NarratorID, t0.Add(time.Minute))
		require.NoError(t, err)
		next, err := Advance(timeUp, timeUp.Turn.NarratorID, t0.Add(61*time.Second))
		require.NoError(t, err)
		assert.Equal(t, domain.PhaseFinished, next.Phase)
		assert.Nil(t, next.Timer.StartedAtMs)
		assert.Nil(t, next.Reveal)
	})

	t.Run("rejected from playing", func(t *testing.T) {
		state := runToPlaying(t, 2)
		_, err := Advance(state, playerA, t0)
		assert.True(t, errors.Is(err, domain.ErrConflict))
	})
}

func TestSkip(t *testing.T) {
	t.Run("skip on the last entry finishes the game", func(t *testing.T) {
		state := runToPlaying(t, 1)
		state.Turn = lastTurn(state)

		next, err := Skip(state, state.Turn.NarratorID, t0.Add(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, domain.PhaseFinished, next.Phase)
		assert.Nil(t, next.Timer.StartedAtMs)
	})

	t.Run("skip carries no score side effects and keeps the invariant", func(t *testing.T) {
		state := runToPlaying(t, 2)
		next, err := Skip(state, playerA, t0.Add(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, domain.PhasePlaying, next.Phase)
		assertTurnInvariant(t, next)
	})
}

func TestCancel(t *testing.T) {
	state := runToPlaying(t, 2)

	t.Run("host cancels from any non-terminal phase", func(t *testing.T) {
		next, err := Cancel(state, playerA, playerA, t0.Add(time.Second))
		require.NoError(t, err)
		assert.Equal(t, domain.PhaseCanceled, next.Phase)
		assert.Nil(t, next.Timer.StartedAtMs)
	})

	t.Run("non-host cannot cancel", func(t *testing.T) {
		_, err := Cancel(state, playerA, playerB, t0)
		assert.True(t, errors.Is(err, domain.ErrForbidden))
	})

	t.Run("terminal state cannot be canceled again", func(t *testing.T) {
		canceled, err := Cancel(state, playerA, playerA, t0)
		require.NoError(t, err)
		_, err = Cancel(canceled, playerA, playerA, t0)
		assert.True(t, errors.Is(err, domain.ErrConflict))
	})
}

func TestRemaining(t *testing.T) {
	t.Run("full duration before the timer starts", func(t *testing.T) {
		state := newTestState(t, 2)
		assert.Equal(t, 60, Remaining(state, t0))
	})

	t.Run("derived from the shared epoch", func(t *testing.T) {
		state := runToPlaying(t, 2)
		assert.Equal(t, 45, Remaining(state, t0.Add(15*time.Second)))
	})

	t.Run("frozen while paused", func(t *testing.T) {
		state := runToPlaying(t, 2)
		paused, err := TimeUp(state, playerA, t0.Add(20*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 40, Remaining(paused, t0.Add(5*time.Minute)))
	})

	t.Run("never negative", func(t *testing.T) {
		state := runToPlaying(t, 2)
		assert.Equal(t, 0, Remaining(state, t0.Add(10*time.Minute)))
	})
}

// lastTurn, state'in turn imlecini kuyruğun son girdisine taşır.
func lastTurn(s *domain.GameState) domain.Turn {
	last := len(s.TaskQueue) - 1
	entry := s.TaskQueue[last]
	narratorIndex := 0
	for i, id := range s.PlayerOrder {
		if id == entry.NarratorID {
			narratorIndex = i
		}
	}
	return domain.Turn{
		NarratorID:       entry.NarratorID,
		NarratorIndex:    narratorIndex,
		WordIndexInBlock: s.TasksPerPlayer - 1,
		GlobalTurnIndex:  last,
		TaskID:           entry.TaskID,
		TaskContent:      entry.TaskContent,
	}
}
