package hub

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdrnck/msgsudot-nye/domain"
)

type fakeSink struct {
	mutex   sync.Mutex
	applied []int64
	stopped []uuid.UUID
}

func (s *fakeSink) Apply(_ uuid.UUID, state *domain.GameState) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.applied = append(s.applied, state.Version)
}

func (s *fakeSink) Stop(lobbyID uuid.UUID) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.stopped = append(s.stopped, lobbyID)
}

type fakeRepo struct {
	mutex   sync.Mutex
	lobbies map[uuid.UUID]domain.Lobby
}

func (r *fakeRepo) GetLobbyByID(_ context.Context, lobbyID uuid.UUID) (domain.Lobby, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	lobby, ok := r.lobbies[lobbyID]
	if !ok {
		return domain.Lobby{}, domain.ErrNotFound
	}
	return lobby, nil
}

func stateWithVersion(version int64) *domain.GameState {
	return &domain.GameState{
		Phase:   domain.PhasePlaying,
		Version: version,
	}
}

func newTestHub(repo Repository, sink StateSink) *Hub {
	return NewHub(nil, repo, sink, 10*time.Millisecond, 20*time.Millisecond)
}

func TestApplyStateDedupesByVersion(t *testing.T) {
	sink := &fakeSink{}
	h := newTestHub(&fakeRepo{}, sink)
	lobbyID := uuid.New()

	assert.True(t, h.applyState(lobbyID, stateWithVersion(3)))
	assert.False(t, h.applyState(lobbyID, stateWithVersion(3)), "aynı versiyon ikinci kez yayınlanmamalı")
	assert.False(t, h.applyState(lobbyID, stateWithVersion(2)), "eski versiyon yayınlanmamalı")
	assert.True(t, h.applyState(lobbyID, stateWithVersion(4)))

	assert.Equal(t, []int64{3, 4}, sink.applied)
}

func TestApplyStateTracksLobbiesIndependently(t *testing.T) {
	sink := &fakeSink{}
	h := newTestHub(&fakeRepo{}, sink)

	a, b := uuid.New(), uuid.New()
	assert.True(t, h.applyState(a, stateWithVersion(5)))
	assert.True(t, h.applyState(b, stateWithVersion(5)))
	assert.False(t, h.applyState(a, stateWithVersion(5)))
}

func TestApplyStateIgnoresNil(t *testing.T) {
	sink := &fakeSink{}
	h := newTestHub(&fakeRepo{}, sink)

	assert.False(t, h.applyState(uuid.New(), nil))
	assert.Empty(t, sink.applied)
}

func TestPollPicksUpMissedVersion(t *testing.T) {
	lobbyID := uuid.New()
	repo := &fakeRepo{lobbies: map[uuid.UUID]domain.Lobby{
		lobbyID: {
			ID:               lobbyID,
			Status:           domain.LobbyPlaying,
			CurrentGameState: stateWithVersion(7),
		},
	}}
	sink := &fakeSink{}
	h := newTestHub(repo, sink)

	interval := h.poller.poll(context.Background(), lobbyID)

	assert.Equal(t, h.poller.pollInterval, interval, "oyun sürerken sık poll aralığı kullanılmalı")
	require.Equal(t, []int64{7}, sink.applied)

	// Aynı versiyon ikinci turda tekrar uygulanmaz.
	h.poller.poll(context.Background(), lobbyID)
	assert.Equal(t, []int64{7}, sink.applied)
}

func TestPollUsesWatchdogIntervalWhileWaiting(t *testing.T) {
	lobbyID := uuid.New()
	repo := &fakeRepo{lobbies: map[uuid.UUID]domain.Lobby{
		lobbyID: {ID: lobbyID, Status: domain.LobbyWaiting},
	}}
	h := newTestHub(repo, &fakeSink{})

	interval := h.poller.poll(context.Background(), lobbyID)

	assert.Equal(t, h.poller.watchdogInterval, interval)
}

func TestPollDetectsDisbandedLobby(t *testing.T) {
	lobbyID := uuid.New()
	repo := &fakeRepo{lobbies: map[uuid.UUID]domain.Lobby{}}
	sink := &fakeSink{}
	h := newTestHub(repo, sink)

	interval := h.poller.poll(context.Background(), lobbyID)

	assert.Zero(t, interval, "lobi kaybolunca poll döngüsü sonlanmalı")
	assert.Equal(t, []uuid.UUID{lobbyID}, sink.stopped)
}
