package domain

import (
	"github.com/google/uuid"
)

type GamePhase string

const (
	PhaseWaitingForStart GamePhase = "waiting_for_start"
	PhasePlaying         GamePhase = "playing"
	PhaseTimeUp          GamePhase = "time_up"
	PhaseReveal          GamePhase = "reveal"
	PhaseFinished        GamePhase = "finished"
	PhaseCanceled        GamePhase = "canceled"
)

// Terminal, oyunun bu fazdan sonra devam edip etmeyeceğini söyler.
func (p GamePhase) Terminal() bool {
	return p == PhaseFinished || p == PhaseCanceled
}

// QueuedTurn, oyun başında sabitlenen görev kuyruğunun tek bir girdisidir.
type QueuedTurn struct {
	NarratorID  uuid.UUID `json:"narratorId"`
	TaskID      uuid.UUID `json:"taskId"`
	TaskContent string    `json:"taskContent"`
}

// Turn, kuyruktaki mevcut pozisyonu tüm türetilmiş alanlarıyla birlikte tutar.
type Turn struct {
	NarratorID       uuid.UUID `json:"narratorId"`
	NarratorIndex    int       `json:"narratorIndex"`
	WordIndexInBlock int       `json:"wordIndexInBlock"`
	GlobalTurnIndex  int       `json:"globalTurnIndex"`
	TaskID           uuid.UUID `json:"taskId"`
	TaskContent      string    `json:"taskContent"`
}

// TimerState duvar saati bazlıdır: istemciler kalan süreyi kendileri türetir,
// sunucu tick göndermez. StartedAtMs nil ise sayaç henüz başlamamıştır.
type TimerState struct {
	StartedAtMs *int64 `json:"startedAtMs"`
	DurationSec int    `json:"durationSec"`
	PausedAtMs  *int64 `json:"pausedAtMs"`
}

// RevealState sadece reveal fazında doludur.
type RevealState struct {
	TaskContent       string    `json:"taskContent"`
	CorrectPlayerID   uuid.UUID `json:"correctPlayerId"`
	CorrectPlayerName string    `json:"correctPlayerName"`
	EndsAtMs          int64     `json:"endsAtMs"`
}

// GameState, bir lobinin oyun ilerlemesinin tamamını tutan tek yetkili
// dokümandır. Her geçiş yeni bir değer üretir; version alanı her geçişte
// artar ve store katmanındaki CAS için kullanılır.
type GameState struct {
	Phase GamePhase `json:"phase"`

	// Oyun başında bir kez karıştırılır, sonra değişmez.
	PlayerOrder []uuid.UUID `json:"playerOrder"`

	TasksPerPlayer   int `json:"tasksPerPlayer"`
	RoundDurationSec int `json:"roundDurationSec"`

	Turn Turn `json:"turn"`

	TaskQueue []QueuedTurn `json:"taskQueue"`

	Timer TimerState `json:"timer"`

	Reveal *RevealState `json:"reveal,omitempty"`

	Version      int64     `json:"version"`
	LastActionAt int64     `json:"lastActionAt"`
	LastActionBy uuid.UUID `json:"lastActionBy"`
}
