package coordinator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdrnck/msgsudot-nye/domain"
	"github.com/kdrnck/msgsudot-nye/internal/game"
)

type fakeDriver struct {
	mutex    sync.Mutex
	timeUps  []uuid.UUID
	advances []uuid.UUID
	warnings []int
}

func (d *fakeDriver) SubmitTimeUp(_ context.Context, _, narratorID uuid.UUID) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.timeUps = append(d.timeUps, narratorID)
	return nil
}

func (d *fakeDriver) SubmitAdvance(_ context.Context, _, narratorID uuid.UUID) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.advances = append(d.advances, narratorID)
	return nil
}

func (d *fakeDriver) AnnounceWarning(_ context.Context, _ uuid.UUID, turnIndex, _ int) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.warnings = append(d.warnings, turnIndex)
}

func (d *fakeDriver) counts() (timeUps, advances, warnings int) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return len(d.timeUps), len(d.advances), len(d.warnings)
}

func playingState(narrator uuid.UUID, startedAt time.Time, durationSec int, version int64) *domain.GameState {
	started := startedAt.UnixMilli()
	return &domain.GameState{
		Phase:            domain.PhasePlaying,
		PlayerOrder:      []uuid.UUID{narrator},
		RoundDurationSec: durationSec,
		Turn:             domain.Turn{NarratorID: narrator, GlobalTurnIndex: 0},
		TaskQueue:        []domain.QueuedTurn{{NarratorID: narrator}},
		Timer:            domain.TimerState{StartedAtMs: &started, DurationSec: durationSec},
		Version:          version,
	}
}

func TestNextEvent(t *testing.T) {
	narrator := uuid.New()
	now := time.Now()

	t.Run("playing schedules the warning before the deadline", func(t *testing.T) {
		s := playingState(narrator, now, 60, 2)
		ev := nextEvent(s, now, -1)
		assert.Equal(t, eventWarning, ev.kind)
		wantAt := now.Add(time.Duration(60-game.WarningThresholdSec) * time.Second)
		assert.WithinDuration(t, wantAt, ev.at, 10*time.Millisecond)
		assert.Equal(t, s.Version, ev.version)
	})

	t.Run("warning is edge triggered per turn", func(t *testing.T) {
		s := playingState(narrator, now, 60, 2)
		ev := nextEvent(s, now, 0) // bu tur için uyarı zaten verildi
		assert.Equal(t, eventTimeUp, ev.kind)
		assert.WithinDuration(t, now.Add(60*time.Second), ev.at, 10*time.Millisecond)
	})

	t.Run("inside the warning window only time up remains", func(t *testing.T) {
		s := playingState(narrator, now.Add(-57*time.Second), 60, 2)
		ev := nextEvent(s, now, -1)
		assert.Equal(t, eventTimeUp, ev.kind)
	})

	t.Run("playing without an epoch schedules nothing", func(t *testing.T) {
		s := playingState(narrator, now, 60, 2)
		s.Timer.StartedAtMs = nil
		assert.Equal(t, eventNone, nextEvent(s, now, -1).kind)
	})

	t.Run("reveal schedules the advance at its deadline", func(t *testing.T) {
		s := playingState(narrator, now, 60, 3)
		s.Phase = domain.PhaseReveal
		s.Reveal = &domain.RevealState{EndsAtMs: now.Add(4 * time.Second).UnixMilli()}
		ev := nextEvent(s, now, -1)
		assert.Equal(t, eventRevealEnd, ev.kind)
		assert.WithinDuration(t, now.Add(4*time.Second), ev.at, 10*time.Millisecond)
	})

	t.Run("narrator-gated and terminal phases schedule nothing", func(t *testing.T) {
		for _, phase := range []domain.GamePhase{
			domain.PhaseWaitingForStart,
			domain.PhaseTimeUp,
			domain.PhaseFinished,
			domain.PhaseCanceled,
		} {
			s := playingState(narrator, now, 60, 2)
			s.Phase = phase
			assert.Equal(t, eventNone, nextEvent(s, now, -1).kind, "phase %s", phase)
		}
	})
}

func TestWatcherRevealAutoAdvance(t *testing.T) {
	narrator := uuid.New()
	driver := &fakeDriver{}
	manager := NewManager(context.Background(), driver)
	lobbyID := uuid.New()

	s := playingState(narrator, time.Now(), 60, 2)
	s.Phase = domain.PhaseReveal
	s.Reveal = &domain.RevealState{EndsAtMs: time.Now().Add(50 * time.Millisecond).UnixMilli()}

	manager.Apply(lobbyID, s)
	defer manager.Stop(lobbyID)

	require.Eventually(t, func() bool {
		_, advances, _ := driver.counts()
		return advances == 1
	}, time.Second, 10*time.Millisecond)

	driver.mutex.Lock()
	assert.Equal(t, narrator, driver.advances[0])
	driver.mutex.Unlock()

	// aynı state yeniden uygulandığında (poll tekrarı) ikinci tetikleme olmaz
	manager.Apply(lobbyID, s)
	time.Sleep(100 * time.Millisecond)
	_, advances, _ := driver.counts()
	assert.Equal(t, 1, advances)
}

// erroringDriver, store erişilemezken submit'lerin nasıl tekrarlandığını
// gözlemlemek için her çağrıda aynı hatayı döndürür.
type erroringDriver struct {
	mutex    sync.Mutex
	err      error
	attempts int
}

func (d *erroringDriver) SubmitTimeUp(_ context.Context, _, _ uuid.UUID) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.attempts++
	return d.err
}

func (d *erroringDriver) SubmitAdvance(_ context.Context, _, _ uuid.UUID) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.attempts++
	return d.err
}

func (d *erroringDriver) AnnounceWarning(_ context.Context, _ uuid.UUID, _, _ int) {}

func (d *erroringDriver) count() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.attempts
}

func TestWatcherPacesRetriesAfterSubmitFailure(t *testing.T) {
	narrator := uuid.New()
	driver := &erroringDriver{err: errors.New("store unavailable")}

	w := newWatcher(uuid.New(), driver)
	w.retryDelay = 40 * time.Millisecond
	go w.run(context.Background())
	defer w.stop()

	// deadline çoktan geçmiş bir tur: ilk tetikleme hemen gelir, sonrası
	// yeni bir doküman gelene kadar deneme aralığıyla sınırlı kalmalı
	w.apply(playingState(narrator, time.Now().Add(-2*time.Minute), 60, 2))

	time.Sleep(300 * time.Millisecond)
	got := driver.count()
	require.GreaterOrEqual(t, got, 2, "submit hatası sonrası tekrar denenmeli")
	assert.LessOrEqual(t, got, 10, "denemeler aralıklı olmalı, sıcak döngü değil")
}

func TestWatcherStaleDeadlineIsSuperseded(t *testing.T) {
	narrator := uuid.New()
	driver := &fakeDriver{}
	manager := NewManager(context.Background(), driver)
	lobbyID := uuid.New()

	// reveal 60ms sonra bitecek şekilde kurulur...
	s := playingState(narrator, time.Now(), 60, 2)
	s.Phase = domain.PhaseReveal
	s.Reveal = &domain.RevealState{EndsAtMs: time.Now().Add(60 * time.Millisecond).UnixMilli()}
	manager.Apply(lobbyID, s)
	defer manager.Stop(lobbyID)

	// ...ama deadline dolmadan yeni bir tur gelir; eski callback boşa düşmeli
	next := playingState(narrator, time.Now(), 60, 3)
	next.Turn.GlobalTurnIndex = 1
	next.TaskQueue = []domain.QueuedTurn{{NarratorID: narrator}, {NarratorID: narrator}}
	manager.Apply(lobbyID, next)

	time.Sleep(150 * time.Millisecond)
	timeUps, advances, _ := driver.counts()
	assert.Zero(t, advances, "stale reveal deadline must not fire")
	assert.Zero(t, timeUps)
}

func TestManagerIgnoresOldVersions(t *testing.T) {
	narrator := uuid.New()
	driver := &fakeDriver{}
	manager := NewManager(context.Background(), driver)
	lobbyID := uuid.New()

	newer := playingState(narrator, time.Now(), 60, 5)
	manager.Apply(lobbyID, newer)
	defer manager.Stop(lobbyID)

	// poll'den gelen eski doküman yeni kurulmuş deadline'ı bozmamalı
	older := playingState(narrator, time.Now(), 60, 4)
	older.Phase = domain.PhaseReveal
	older.Reveal = &domain.RevealState{EndsAtMs: time.Now().Add(30 * time.Millisecond).UnixMilli()}
	manager.Apply(lobbyID, older)

	time.Sleep(120 * time.Millisecond)
	_, advances, _ := driver.counts()
	assert.Zero(t, advances)
}

func TestManagerStopsOnTerminalState(t *testing.T) {
	narrator := uuid.New()
	driver := &fakeDriver{}
	manager := NewManager(context.Background(), driver)
	lobbyID := uuid.New()

	manager.Apply(lobbyID, playingState(narrator, time.Now(), 60, 2))

	finished := playingState(narrator, time.Now(), 60, 3)
	finished.Phase = domain.PhaseFinished
	finished.Timer.StartedAtMs = nil
	manager.Apply(lobbyID, finished)

	manager.mutex.Lock()
	_, exists := manager.watchers[lobbyID]
	manager.mutex.Unlock()
	assert.False(t, exists)
}
