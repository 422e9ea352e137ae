package hub

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kdrnck/msgsudot-nye/domain"
)

// poller, pub/sub mesajı kaçarsa devreye giren fallback döngüsüdür. Oyun
// oynanırken pollInterval ile state'i tazeler; lobi beklemedeyken
// watchdogInterval ile sadece lobinin hala var olduğunu doğrular. Lobi
// satırı kaybolduysa istemcilere dağıtıldığı bildirilir.
type poller struct {
	hub              *Hub
	repo             Repository
	pollInterval     time.Duration
	watchdogInterval time.Duration

	cancels map[uuid.UUID]context.CancelFunc
	mutex   sync.Mutex
}

func newPoller(hub *Hub, repo Repository, pollInterval, watchdogInterval time.Duration) *poller {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}
	if watchdogInterval <= 0 {
		watchdogInterval = 10 * time.Second
	}
	return &poller{
		hub:              hub,
		repo:             repo,
		pollInterval:     pollInterval,
		watchdogInterval: watchdogInterval,
		cancels:          make(map[uuid.UUID]context.CancelFunc),
	}
}

// Start, lobi için poll döngüsünü başlatır. Zaten çalışıyorsa no-op.
func (p *poller) Start(lobbyID uuid.UUID) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if _, ok := p.cancels[lobbyID]; ok {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancels[lobbyID] = cancel
	go p.run(ctx, lobbyID)
}

// Stop, lobi için poll döngüsünü durdurur.
func (p *poller) Stop(lobbyID uuid.UUID) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if cancel, ok := p.cancels[lobbyID]; ok {
		cancel()
		delete(p.cancels, lobbyID)
	}
}

func (p *poller) run(ctx context.Context, lobbyID uuid.UUID) {
	// İlk tur beklemeden atılır ki yeni bağlanan istemci güncel kalır.
	interval := p.poll(ctx, lobbyID)

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			interval = p.poll(ctx, lobbyID)
			if interval <= 0 {
				return
			}
			timer.Reset(interval)
		case <-ctx.Done():
			return
		}
	}
}

// poll tek bir tazeleme turu yapar ve bir sonraki turun aralığını döner.
// Sıfır dönerse döngü sonlanır.
func (p *poller) poll(ctx context.Context, lobbyID uuid.UUID) time.Duration {
	callCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	lobby, err := p.repo.GetLobbyByID(callCtx, lobbyID)
	cancel()

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			p.handleDisbanded(lobbyID)
			return 0
		}
		zap.L().Warn("lobby poll failed",
			zap.String("lobbyID", lobbyID.String()), zap.Error(err))
		return p.pollInterval
	}

	if lobby.CurrentGameState != nil && p.hub.applyState(lobbyID, lobby.CurrentGameState) {
		zap.L().Debug("poll picked up missed state version",
			zap.String("lobbyID", lobbyID.String()),
			zap.Int64("version", lobby.CurrentGameState.Version))
		p.hub.BroadcastMessage(lobbyID, &Message{Type: MsgTypeStateUpdated, Content: lobby.CurrentGameState})
	}

	if lobby.Status == domain.LobbyPlaying {
		return p.pollInterval
	}
	return p.watchdogInterval
}

// handleDisbanded, lobi satırının kaybolduğunu fark edince istemcileri
// bilgilendirir. Pub/sub'daki lobby_disbanded mesajı kaçmış olabilir.
func (p *poller) handleDisbanded(lobbyID uuid.UUID) {
	zap.L().Info("lobby row gone, notifying clients",
		zap.String("lobbyID", lobbyID.String()))

	p.hub.BroadcastMessage(lobbyID, &Message{Type: MsgTypeLobbyDisbanded, Content: nil})
	p.hub.sink.Stop(lobbyID)

	p.mutex.Lock()
	if cancel, ok := p.cancels[lobbyID]; ok {
		cancel()
		delete(p.cancels, lobbyID)
	}
	p.mutex.Unlock()
}
