package postgres

import (
	"database/sql"
	"fmt"
	"log"
)

const (
	createPlayersTable = `
		CREATE TABLE IF NOT EXISTS players (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			nickname VARCHAR(50) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);`

	createCategoriesTable = `
		CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name VARCHAR(50) UNIQUE NOT NULL
		);`

	createTasksTable = `
		CREATE TABLE IF NOT EXISTS tasks (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			content VARCHAR(200) UNIQUE NOT NULL,
			category VARCHAR(50) NOT NULL REFERENCES categories(name),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);`

	createLobbiesTable = `
		CREATE TABLE IF NOT EXISTS lobbies (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			code VARCHAR(6) NOT NULL,
			host_id UUID REFERENCES players(id) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'waiting', -- 'waiting', 'playing', 'finished'
			round_time_seconds INT NOT NULL DEFAULT 60,
			tasks_per_player INT NOT NULL DEFAULT 3,
			selected_categories TEXT[] NOT NULL DEFAULT '{}',
			current_game_state JSONB,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);`

	createLobbyPlayersTable = `
		CREATE TABLE IF NOT EXISTS lobby_players (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			lobby_id UUID REFERENCES lobbies(id) ON DELETE CASCADE NOT NULL,
			player_id UUID REFERENCES players(id) NOT NULL,
			score INT NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			joined_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(lobby_id, player_id)
		);`

	insertCategories = `
		INSERT INTO categories (name) VALUES
		('Film'), ('Dizi'), ('Şarkı'), ('Atasözü'), ('Meslek'), ('Hayvan')
		ON CONFLICT (name) DO NOTHING;`

	insertSampleTasks = `
		INSERT INTO tasks (content, category) VALUES
		('Babam ve Oğlum', 'Film'),
		('Eşkıya', 'Film'),
		('G.O.R.A.', 'Film'),
		('Titanik', 'Film'),
		('Leyla ile Mecnun', 'Dizi'),
		('Behzat Ç.', 'Dizi'),
		('Gülümse Kaderine', 'Şarkı'),
		('Fikrimin İnce Gülü', 'Şarkı'),
		('Damlaya damlaya göl olur', 'Atasözü'),
		('Sakla samanı gelir zamanı', 'Atasözü'),
		('İtfaiyeci', 'Meslek'),
		('Diş hekimi', 'Meslek'),
		('Penguen', 'Hayvan'),
		('Bukalemun', 'Hayvan')
		ON CONFLICT (content) DO NOTHING;`

	// Kod, bitmemiş lobiler arasında benzersiz olmalı (kısmi unique index)
	createIndexes = `
		CREATE UNIQUE INDEX IF NOT EXISTS idx_lobbies_code_live ON lobbies(code) WHERE status != 'finished';
		CREATE INDEX IF NOT EXISTS idx_lobbies_status ON lobbies(status);
		CREATE INDEX IF NOT EXISTS idx_lobby_players_lobby_id ON lobby_players(lobby_id);
		CREATE INDEX IF NOT EXISTS idx_lobby_players_player_id ON lobby_players(player_id);
		CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks(category);`
)

// initDB, tüm veritabanı tablolarını oluşturur.
func initDB(db *sql.DB) error {
	tables := []struct {
		name  string
		query string
	}{
		{"players", createPlayersTable},
		{"categories", createCategoriesTable},
		{"tasks", createTasksTable},
		{"lobbies", createLobbiesTable},
		{"lobby_players", createLobbyPlayersTable},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create '%s' table: %w", table.name, err)
		}
	}

	if _, err := db.Exec(insertCategories); err != nil {
		return fmt.Errorf("failed to insert categories: %w", err)
	}

	if _, err := db.Exec(insertSampleTasks); err != nil {
		return fmt.Errorf("failed to insert sample tasks: %w", err)
	}

	if _, err := db.Exec(createIndexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database initialized successfully with all tables and indexes")
	return nil
}
