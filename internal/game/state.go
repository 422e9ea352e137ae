package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kdrnck/msgsudot-nye/domain"
)

const (
	// RevealWindow, doğru tahminden sonraki ara fazın sabit süresidir.
	RevealWindow = 4 * time.Second

	// WarningThresholdSec, tur bitmeden kaç saniye önce uyarı yayınlanacağını belirler.
	WarningThresholdSec = 5
)

// Bu paketteki tüm geçişler saf fonksiyonlardır: mevcut state'e dokunmadan
// yeni bir değer üretirler, I/O yapmazlar. Yetki kontrolü (çağıranın anlatıcı
// olması) her geçişin içindedir; böylece kural hangi katman çağırırsa çağırsın
// aynı şekilde uygulanır.

// NewInitialState, oyunu waiting_for_start fazında, kuyruk başında ve sayaç
// kurulmamış olarak oluşturur.
func NewInitialState(order []uuid.UUID, queue []domain.QueuedTurn, perPlayer, roundSec int, hostID uuid.UUID, now time.Time) (*domain.GameState, error) {
	if len(queue) == 0 {
		return nil, fmt.Errorf("%w: empty task queue", domain.ErrInvalidInput)
	}
	if roundSec <= 0 {
		return nil, fmt.Errorf("%w: non-positive round duration", domain.ErrInvalidInput)
	}

	first := queue[0]
	return &domain.GameState{
		Phase:            domain.PhaseWaitingForStart,
		PlayerOrder:      order,
		TasksPerPlayer:   perPlayer,
		RoundDurationSec: roundSec,
		Turn: domain.Turn{
			NarratorID:       first.NarratorID,
			NarratorIndex:    0,
			WordIndexInBlock: 0,
			GlobalTurnIndex:  0,
			TaskID:           first.TaskID,
			TaskContent:      first.TaskContent,
		},
		TaskQueue: queue,
		Timer: domain.TimerState{
			StartedAtMs: nil, // anlatıcı başlat butonuna basana kadar sayaç durur
			DurationSec: roundSec,
			PausedAtMs:  nil,
		},
		Version:      1,
		LastActionAt: now.UnixMilli(),
		LastActionBy: hostID,
	}, nil
}

// NextTurnInfo, kuyruktaki bir sonraki pozisyonu hesaplar. Kuyruk bittiyse
// gameOver true döner. WordIndexInBlock, anlatıcı değişmediyse +1, değiştiyse 0'dır.
func NextTurnInfo(s *domain.GameState) (gameOver bool, next *domain.Turn) {
	nextGlobal := s.Turn.GlobalTurnIndex + 1
	if nextGlobal >= len(s.TaskQueue) {
		return true, nil
	}

	nextTask := s.TaskQueue[nextGlobal]

	narratorIndex := 0
	for i, id := range s.PlayerOrder {
		if id == nextTask.NarratorID {
			narratorIndex = i
			break
		}
	}

	wordIndex := 0
	if nextTask.NarratorID == s.Turn.NarratorID {
		wordIndex = s.Turn.WordIndexInBlock + 1
	}

	return false, &domain.Turn{
		NarratorID:       nextTask.NarratorID,
		NarratorIndex:    narratorIndex,
		WordIndexInBlock: wordIndex,
		GlobalTurnIndex:  nextGlobal,
		TaskID:           nextTask.TaskID,
		TaskContent:      nextTask.TaskContent,
	}
}

// StartTurn, waiting_for_start fazından oyunu fiilen başlatır ve sayaç
// epoch'unu kurar. Sadece mevcut anlatıcı çağırabilir.
func StartTurn(s *domain.GameState, caller uuid.UUID, now time.Time) (*domain.GameState, error) {
	if s.Phase != domain.PhaseWaitingForStart {
		return nil, fmt.Errorf("%w: cannot start turn in phase %q", domain.ErrConflict, s.Phase)
	}
	if err := requireNarrator(s, caller); err != nil {
		return nil, err
	}

	next := clone(s)
	next.Phase = domain.PhasePlaying
	startedAt := now.UnixMilli()
	next.Timer.StartedAtMs = &startedAt
	next.Timer.PausedAtMs = nil
	stamp(next, caller, now)
	return next, nil
}

// TimeUp, süre dolduğunda playing -> time_up geçişini yapar. Sayaç durdurulur,
// reveal temizlenir. Zaten time_up olan state'e ikinci çağrı faz kontrolüne takılır.
func TimeUp(s *domain.GameState, caller uuid.UUID, now time.Time) (*domain.GameState, error) {
	if s.Phase != domain.PhasePlaying {
		return nil, fmt.Errorf("%w: time up only applies to playing, got %q", domain.ErrConflict, s.Phase)
	}
	if err := requireNarrator(s, caller); err != nil {
		return nil, err
	}

	next := clone(s)
	next.Phase = domain.PhaseTimeUp
	pausedAt := now.UnixMilli()
	next.Timer.PausedAtMs = &pausedAt
	next.Reveal = nil
	stamp(next, caller, now)
	return next, nil
}

// CorrectGuess, doğru tahmin üzerine playing -> reveal geçişini yapar ve
// otomatik ilerleme için sabit reveal penceresini kurar. Tahmin edenin skoru
// ayrı üyelik tablosunda bu geçişle birlikte artırılır (store katmanında).
func CorrectGuess(s *domain.GameState, caller, guesserID uuid.UUID, guesserName string, now time.Time) (*domain.GameState, error) {
	if s.Phase != domain.PhasePlaying {
		return nil, fmt.Errorf("%w: guess only applies to playing, got %q", domain.ErrConflict, s.Phase)
	}
	if err := requireNarrator(s, caller); err != nil {
		return nil, err
	}
	if guesserID == s.Turn.NarratorID {
		return nil, fmt.Errorf("%w: narrator cannot guess their own word", domain.ErrInvalidInput)
	}
	if !inOrder(s.PlayerOrder, guesserID) {
		return nil, fmt.Errorf("%w: guesser is not in this game", domain.ErrInvalidInput)
	}

	next := clone(s)
	next.Phase = domain.PhaseReveal
	next.Reveal = &domain.RevealState{
		TaskContent:       s.Turn.TaskContent,
		CorrectPlayerID:   guesserID,
		CorrectPlayerName: guesserName,
		EndsAtMs:          now.Add(RevealWindow).UnixMilli(),
	}
	stamp(next, caller, now)
	return next, nil
}

// Advance, time_up veya reveal fazından bir sonraki tura (ya da oyun sonuna)
// geçer. Oyun bittiyse sayaç ve reveal temizlenir; bitmediyse yeni tur taze
// bir sayaç epoch'u ile playing fazında başlar.
func Advance(s *domain.GameState, caller uuid.UUID, now time.Time) (*domain.GameState, error) {
	if s.Phase != domain.PhaseTimeUp && s.Phase != domain.PhaseReveal {
		return nil, fmt.Errorf("%w: advance only applies to time_up or reveal, got %q", domain.ErrConflict, s.Phase)
	}
	if err := requireNarrator(s, caller); err != nil {
		return nil, err
	}
	return resolveNext(s, caller, now), nil
}

// Skip, anlatıcının mevcut kelimeyi puansız geçmesidir. playing veya time_up
// fazından aynı çözücü yolunu izler.
func Skip(s *domain.GameState, caller uuid.UUID, now time.Time) (*domain.GameState, error) {
	if s.Phase != domain.PhasePlaying && s.Phase != domain.PhaseTimeUp {
		return nil, fmt.Errorf("%w: skip only applies to playing or time_up, got %q", domain.ErrConflict, s.Phase)
	}
	if err := requireNarrator(s, caller); err != nil {
		return nil, err
	}
	return resolveNext(s, caller, now), nil
}

// Cancel, lobinin dağıtılmasında state'i canceled olarak işaretler. Lobi satırı
// silinmeden ÖNCE yayınlanır ki diğer istemciler generic not-found yerine
// iptali görsün. Sadece host çağırabilir.
func Cancel(s *domain.GameState, hostID, caller uuid.UUID, now time.Time) (*domain.GameState, error) {
	if s.Phase.Terminal() {
		return nil, fmt.Errorf("%w: game already in terminal phase %q", domain.ErrConflict, s.Phase)
	}
	if caller != hostID {
		return nil, fmt.Errorf("%w: only the host can disband the lobby", domain.ErrForbidden)
	}

	next := clone(s)
	next.Phase = domain.PhaseCanceled
	next.Timer.StartedAtMs = nil
	next.Timer.PausedAtMs = nil
	next.Reveal = nil
	stamp(next, caller, now)
	return next, nil
}

// Remaining, paylaşılan epoch'tan kalan saniyeyi türetir. Sayaç kurulmamışsa
// tam süre, duraklatılmışsa duraklama anına göre hesaplanır. Negatif dönmez.
func Remaining(s *domain.GameState, now time.Time) int {
	if s.Timer.StartedAtMs == nil {
		return s.Timer.DurationSec
	}

	ref := now.UnixMilli()
	if s.Timer.PausedAtMs != nil {
		ref = *s.Timer.PausedAtMs
	}

	elapsed := int((ref - *s.Timer.StartedAtMs) / 1000)
	remaining := s.Timer.DurationSec - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

func resolveNext(s *domain.GameState, caller uuid.UUID, now time.Time) *domain.GameState {
	next := clone(s)

	gameOver, nextTurn := NextTurnInfo(s)
	if gameOver {
		next.Phase = domain.PhaseFinished
		next.Timer.StartedAtMs = nil
		next.Timer.PausedAtMs = nil
		next.Reveal = nil
	} else {
		next.Phase = domain.PhasePlaying
		next.Turn = *nextTurn
		startedAt := now.UnixMilli()
		next.Timer.StartedAtMs = &startedAt
		next.Timer.PausedAtMs = nil
		next.Reveal = nil
	}

	stamp(next, caller, now)
	return next
}

func requireNarrator(s *domain.GameState, caller uuid.UUID) error {
	if caller != s.Turn.NarratorID {
		return fmt.Errorf("%w: only the current narrator may act", domain.ErrForbidden)
	}
	return nil
}

func inOrder(order []uuid.UUID, id uuid.UUID) bool {
	for _, v := range order {
		if v == id {
			return true
		}
	}
	return false
}

// clone, yüzeysel kopyanın paylaşacağı pointer alanlarını da çoğaltır.
// PlayerOrder ve TaskQueue oyun boyunca değişmediği için paylaşılabilir.
func clone(s *domain.GameState) *domain.GameState {
	next := *s
	if s.Timer.StartedAtMs != nil {
		v := *s.Timer.StartedAtMs
		next.Timer.StartedAtMs = &v
	}
	if s.Timer.PausedAtMs != nil {
		v := *s.Timer.PausedAtMs
		next.Timer.PausedAtMs = &v
	}
	if s.Reveal != nil {
		r := *s.Reveal
		next.Reveal = &r
	}
	return &next
}

func stamp(s *domain.GameState, caller uuid.UUID, now time.Time) {
	s.Version++
	s.LastActionAt = now.UnixMilli()
	s.LastActionBy = caller
}
