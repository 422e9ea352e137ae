package bootstrap

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kdrnck/msgsudot-nye/config"
	httpHandler "github.com/kdrnck/msgsudot-nye/internal/api/http/handler"
	wsHandler "github.com/kdrnck/msgsudot-nye/internal/api/ws/handler"
	"github.com/kdrnck/msgsudot-nye/internal/handler"
	"github.com/kdrnck/msgsudot-nye/internal/server"
)

func SetupServer(config config.Config, httpHandlers map[string]interface{}, wsHandlers map[string]interface{}) *fiber.App {
	serverConfig := server.Config{
		Port:         config.Server.Port,
		IdleTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	app := server.NewFiberApp(serverConfig)

	registerPlayerHandler := httpHandlers["register-player"].(*httpHandler.RegisterPlayerHandler)
	listCategoriesHandler := httpHandlers["list-categories"].(*httpHandler.ListCategoriesHandler)
	createLobbyHandler := httpHandlers["create-lobby"].(*httpHandler.CreateLobbyHandler)
	joinLobbyHandler := httpHandlers["join-lobby"].(*httpHandler.JoinLobbyHandler)
	getLobbyHandler := httpHandlers["get-lobby"].(*httpHandler.GetLobbyHandler)
	leaveLobbyHandler := httpHandlers["leave-lobby"].(*httpHandler.LeaveLobbyHandler)
	disbandLobbyHandler := httpHandlers["disband-lobby"].(*httpHandler.DisbandLobbyHandler)
	startGameHandler := httpHandlers["start-game"].(*httpHandler.StartGameHandler)
	startTurnHandler := httpHandlers["start-turn"].(*httpHandler.GameActionHandler)
	correctGuessHandler := httpHandlers["correct-guess"].(*httpHandler.CorrectGuessHandler)
	skipTurnHandler := httpHandlers["skip-turn"].(*httpHandler.GameActionHandler)
	timeUpHandler := httpHandlers["time-up"].(*httpHandler.GameActionHandler)
	advanceTurnHandler := httpHandlers["advance-turn"].(*httpHandler.GameActionHandler)

	app.Post("/players", handler.HandleWithFiber[httpHandler.RegisterPlayerRequest, httpHandler.RegisterPlayerResponse](registerPlayerHandler))
	app.Get("/categories", handler.HandleWithFiber[httpHandler.ListCategoriesRequest, httpHandler.ListCategoriesResponse](listCategoriesHandler))

	app.Post("/lobbies", handler.HandleWithFiber[httpHandler.CreateLobbyRequest, httpHandler.CreateLobbyResponse](createLobbyHandler))
	app.Post("/lobbies/join", handler.HandleWithFiber[httpHandler.JoinLobbyRequest, httpHandler.JoinLobbyResponse](joinLobbyHandler))
	app.Get("/lobbies/:lobby_id", handler.HandleWithFiber[httpHandler.GetLobbyRequest, httpHandler.GetLobbyResponse](getLobbyHandler))
	app.Post("/lobbies/:lobby_id/leave", handler.HandleWithFiber[httpHandler.LeaveLobbyRequest, httpHandler.LeaveLobbyResponse](leaveLobbyHandler))
	app.Delete("/lobbies/:lobby_id", handler.HandleWithFiber[httpHandler.DisbandLobbyRequest, httpHandler.DisbandLobbyResponse](disbandLobbyHandler))

	app.Post("/lobbies/:lobby_id/start", handler.HandleWithFiber[httpHandler.StartGameRequest, httpHandler.StartGameResponse](startGameHandler))
	app.Post("/lobbies/:lobby_id/turn/start", handler.HandleWithFiber[httpHandler.GameActionRequest, httpHandler.GameActionResponse](startTurnHandler))
	app.Post("/lobbies/:lobby_id/turn/guess", handler.HandleWithFiber[httpHandler.CorrectGuessRequest, httpHandler.CorrectGuessResponse](correctGuessHandler))
	app.Post("/lobbies/:lobby_id/turn/skip", handler.HandleWithFiber[httpHandler.GameActionRequest, httpHandler.GameActionResponse](skipTurnHandler))
	app.Post("/lobbies/:lobby_id/turn/time-up", handler.HandleWithFiber[httpHandler.GameActionRequest, httpHandler.GameActionResponse](timeUpHandler))
	app.Post("/lobbies/:lobby_id/turn/advance", handler.HandleWithFiber[httpHandler.GameActionRequest, httpHandler.GameActionResponse](advanceTurnHandler))

	lobbyConnectHandler := wsHandlers["lobby-connect"].(*wsHandler.WebSocketLobbyHandler)
	app.Get("/lobbies/:lobby_id/ws", handler.HandleWithFiberWS[wsHandler.WebSocketLobbyRequest](lobbyConnectHandler))

	return app
}
