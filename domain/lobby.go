package domain

import (
	"time"

	"github.com/google/uuid"
)

type LobbyStatus string

const (
	LobbyWaiting  LobbyStatus = "waiting"
	LobbyPlaying  LobbyStatus = "playing"
	LobbyFinished LobbyStatus = "finished"
)

type Player struct {
	ID        uuid.UUID `json:"id"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"created_at"`
}

type Lobby struct {
	ID                 uuid.UUID   `json:"id"`
	Code               string      `json:"code"`
	HostID             uuid.UUID   `json:"host_id"`
	Status             LobbyStatus `json:"status"`
	RoundTimeSeconds   int         `json:"round_time_seconds"`
	TasksPerPlayer     int         `json:"tasks_per_player"`
	SelectedCategories []string    `json:"selected_categories"`
	CurrentGameState   *GameState  `json:"current_game_state"`
	CreatedAt          time.Time   `json:"created_at"`
}

type LobbyPlayer struct {
	ID       uuid.UUID `json:"id"`
	LobbyID  uuid.UUID `json:"lobby_id"`
	PlayerID uuid.UUID `json:"player_id"`
	Nickname string    `json:"nickname"`
	Score    int       `json:"score"`
	IsActive bool      `json:"is_active"`
	JoinedAt time.Time `json:"joined_at"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Task, sessiz sinemada anlatılacak tek bir kelime/görevdir.
type Task struct {
	ID       uuid.UUID `json:"id"`
	Content  string    `json:"content"`
	Category string    `json:"category,omitempty"`
}
