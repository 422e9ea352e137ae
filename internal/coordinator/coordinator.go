package coordinator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kdrnck/msgsudot-nye/domain"
	"github.com/kdrnck/msgsudot-nye/internal/game"
)

// Driver, koordinatörün deadline anında tetiklediği geçişleri yürütür.
// Submit* çağrıları güncel state'i yeniden okuyup saf geçişi CAS ile yazan
// usecase'lere bağlanır; bu yüzden bayat bir tetikleme en kötü ihtimalle
// zararsız bir version conflict üretir.
type Driver interface {
	SubmitTimeUp(ctx context.Context, lobbyID, narratorID uuid.UUID) error
	SubmitAdvance(ctx context.Context, lobbyID, narratorID uuid.UUID) error
	AnnounceWarning(ctx context.Context, lobbyID uuid.UUID, globalTurnIndex, remainingSec int)
}

// Manager, oynanan her lobi için bir watcher goroutine'i tutar. Watcher'lar
// senkronizasyon katmanının "apply latest" sink'inden beslenir: push feed ve
// fallback poller aynı Apply çağrısına akar, version bazlı dedup burada yapılır.
type Manager struct {
	driver Driver
	ctx    context.Context

	mutex    sync.Mutex
	watchers map[uuid.UUID]*watcher
}

func NewManager(ctx context.Context, driver Driver) *Manager {
	return &Manager{
		driver:   driver,
		ctx:      ctx,
		watchers: make(map[uuid.UUID]*watcher),
	}
}

// Apply, bir lobinin en güncel state'ini koordinatöre iletir. Eski version'lar
// atlanır; terminal fazlar watcher'ı durdurur.
func (m *Manager) Apply(lobbyID uuid.UUID, state *domain.GameState) {
	if state == nil {
		return
	}

	m.mutex.Lock()
	w, ok := m.watchers[lobbyID]
	if !ok {
		if state.Phase.Terminal() {
			m.mutex.Unlock()
			return
		}
		w = newWatcher(lobbyID, m.driver)
		m.watchers[lobbyID] = w
		go w.run(m.ctx)
	}
	m.mutex.Unlock()

	w.apply(state)

	if state.Phase.Terminal() {
		m.Stop(lobbyID)
	}
}

// Stop, lobi dağıldığında ya da oyun bittiğinde watcher'ı kapatır.
func (m *Manager) Stop(lobbyID uuid.UUID) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if w, ok := m.watchers[lobbyID]; ok {
		w.stop()
		delete(m.watchers, lobbyID)
	}
}

// eventKind, zamanlanmış bir callback'in ne için kurulduğunu söyler.
type eventKind int

const (
	eventNone eventKind = iota
	eventWarning
	eventTimeUp
	eventRevealEnd
)

// scheduled, callback'in kurulduğu andaki tur/faz kimliğini taşır. Callback
// ateşlendiğinde kimlik artık güncel state ile eşleşmiyorsa no-op olur.
type scheduled struct {
	kind            eventKind
	at              time.Time
	phase           domain.GamePhase
	globalTurnIndex int
	version         int64
}

// submitRetryDelay, başarısız bir deadline tetiklemesinin tekrar denenme
// temposudur. Geçmişte kalan deadline'a geri kurulmak sıcak döngü yaratır;
// deneme aralığı poll döngüsünün temposuna yayılır.
const submitRetryDelay = 3 * time.Second

type watcher struct {
	lobbyID    uuid.UUID
	driver     Driver
	updates    chan *domain.GameState
	done       chan struct{}
	once       sync.Once
	retryDelay time.Duration

	// test dublörleri için
	now func() time.Time
}

func newWatcher(lobbyID uuid.UUID, driver Driver) *watcher {
	return &watcher{
		lobbyID:    lobbyID,
		driver:     driver,
		updates:    make(chan *domain.GameState, 16),
		done:       make(chan struct{}),
		retryDelay: submitRetryDelay,
		now:        time.Now,
	}
}

func (w *watcher) apply(state *domain.GameState) {
	select {
	case w.updates <- state:
	case <-w.done:
	}
}

func (w *watcher) stop() {
	w.once.Do(func() { close(w.done) })
}

func (w *watcher) run(ctx context.Context) {
	var current *domain.GameState
	var pending scheduled
	inFlight := false
	warnedTurn := -1

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	drain := func() {
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
	}

	rearm := func() {
		drain()
		pending = nextEvent(current, w.now(), warnedTurn)
		if pending.kind != eventNone {
			timer.Reset(time.Until(pending.at))
		}
	}

	// rearmRetry, pending kimliğini koruyarak timer'ı deneme aralığına kurar.
	// Deadline çoktan geçmiş olduğundan rearm() timer'ı hemen ateşler ve
	// submit hatası sıcak bir döngüye dönerdi; yeni bir doküman gelene kadar
	// denemeler bu tempoyla sınırlanır.
	rearmRetry := func() {
		drain()
		timer.Reset(w.retryDelay)
	}

	for {
		select {
		case state := <-w.updates:
			if current != nil && state.Version <= current.Version {
				continue // push ve poll aynı dokümanı getirebilir
			}
			current = state
			inFlight = false
			rearm()

		case <-timer.C:
			if current == nil {
				continue
			}
			// kurulduğu tur/faz artık güncel değilse tetikleme boşa düşer
			if pending.phase != current.Phase ||
				pending.globalTurnIndex != current.Turn.GlobalTurnIndex ||
				pending.version != current.Version {
				rearm()
				continue
			}

			switch pending.kind {
			case eventWarning:
				warnedTurn = current.Turn.GlobalTurnIndex
				w.driver.AnnounceWarning(ctx, w.lobbyID, current.Turn.GlobalTurnIndex, game.WarningThresholdSec)
				rearm()

			case eventTimeUp:
				if inFlight {
					continue
				}
				inFlight = true
				if err := w.driver.SubmitTimeUp(ctx, w.lobbyID, current.Turn.NarratorID); err != nil {
					zap.L().Warn("time up submit failed",
						zap.String("lobby_id", w.lobbyID.String()), zap.Error(err))
					inFlight = false
					rearmRetry()
				}

			case eventRevealEnd:
				if inFlight {
					continue
				}
				inFlight = true
				if err := w.driver.SubmitAdvance(ctx, w.lobbyID, current.Turn.NarratorID); err != nil {
					zap.L().Warn("reveal advance submit failed",
						zap.String("lobby_id", w.lobbyID.String()), zap.Error(err))
					inFlight = false
					rearmRetry()
				}
			}

		case <-w.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// nextEvent, mevcut state için zamanlanacak ilk olayı hesaplar. Saf fonksiyondur.
func nextEvent(s *domain.GameState, now time.Time, warnedTurn int) scheduled {
	if s == nil {
		return scheduled{kind: eventNone}
	}

	identity := scheduled{
		phase:           s.Phase,
		globalTurnIndex: s.Turn.GlobalTurnIndex,
		version:         s.Version,
	}

	switch s.Phase {
	case domain.PhasePlaying:
		if s.Timer.StartedAtMs == nil {
			return scheduled{kind: eventNone}
		}
		deadline := time.UnixMilli(*s.Timer.StartedAtMs).Add(time.Duration(s.Timer.DurationSec) * time.Second)

		warnAt := deadline.Add(-time.Duration(game.WarningThresholdSec) * time.Second)
		if warnedTurn != s.Turn.GlobalTurnIndex && now.Before(warnAt) {
			identity.kind = eventWarning
			identity.at = warnAt
			return identity
		}

		identity.kind = eventTimeUp
		identity.at = deadline
		return identity

	case domain.PhaseReveal:
		if s.Reveal == nil {
			return scheduled{kind: eventNone}
		}
		identity.kind = eventRevealEnd
		identity.at = time.UnixMilli(s.Reveal.EndsAtMs)
		return identity
	}

	// waiting_for_start ve time_up anlatıcının aksiyonunu bekler, terminal
	// fazlarda zamanlanacak bir şey yoktur.
	return scheduled{kind: eventNone}
}
