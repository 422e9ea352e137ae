package bootstrap

import (
	httpHandler "github.com/kdrnck/msgsudot-nye/internal/api/http/handler"
	httpUsecase "github.com/kdrnck/msgsudot-nye/internal/api/http/usecase"
	wsHandler "github.com/kdrnck/msgsudot-nye/internal/api/ws/handler"
	wsUsecase "github.com/kdrnck/msgsudot-nye/internal/api/ws/usecase"
	"github.com/kdrnck/msgsudot-nye/internal/coordinator"
)

func SetupHTTPHandlers(postgresRepo PostgresRepository, sessionManager SessionManager, lobbyRedis LobbyRedisManager, kafka Messaging, manager *coordinator.Manager) map[string]interface{} {
	registerPlayerUseCase := httpUsecase.NewRegisterPlayerUseCase(postgresRepo, sessionManager)
	registerPlayerHandler := httpHandler.NewRegisterPlayerHandler(registerPlayerUseCase)

	listCategoriesUseCase := httpUsecase.NewListCategoriesUseCase(postgresRepo)
	listCategoriesHandler := httpHandler.NewListCategoriesHandler(listCategoriesUseCase)

	createLobbyUseCase := httpUsecase.NewCreateLobbyUseCase(postgresRepo, kafka)
	createLobbyHandler := httpHandler.NewCreateLobbyHandler(createLobbyUseCase, sessionManager)

	joinLobbyUseCase := httpUsecase.NewJoinLobbyUseCase(postgresRepo, lobbyRedis)
	joinLobbyHandler := httpHandler.NewJoinLobbyHandler(joinLobbyUseCase, sessionManager)

	getLobbyUseCase := httpUsecase.NewGetLobbyUseCase(postgresRepo)
	getLobbyHandler := httpHandler.NewGetLobbyHandler(getLobbyUseCase, sessionManager)

	disbandLobbyUseCase := httpUsecase.NewDisbandLobbyUseCase(postgresRepo, lobbyRedis, kafka, manager)
	disbandLobbyHandler := httpHandler.NewDisbandLobbyHandler(disbandLobbyUseCase, sessionManager)

	leaveLobbyUseCase := httpUsecase.NewLeaveLobbyUseCase(postgresRepo, lobbyRedis, disbandLobbyUseCase)
	leaveLobbyHandler := httpHandler.NewLeaveLobbyHandler(leaveLobbyUseCase, sessionManager)

	startGameUseCase := httpUsecase.NewStartGameUseCase(postgresRepo, lobbyRedis, kafka, manager)
	startGameHandler := httpHandler.NewStartGameHandler(startGameUseCase, sessionManager)

	startTurnUseCase := httpUsecase.NewStartTurnUseCase(postgresRepo, lobbyRedis, kafka, manager)
	startTurnHandler := httpHandler.NewStartTurnHandler(startTurnUseCase, sessionManager)

	correctGuessUseCase := httpUsecase.NewCorrectGuessUseCase(postgresRepo, lobbyRedis, kafka, manager)
	correctGuessHandler := httpHandler.NewCorrectGuessHandler(correctGuessUseCase, sessionManager)

	skipTurnUseCase := httpUsecase.NewSkipTurnUseCase(postgresRepo, lobbyRedis, kafka, manager)
	skipTurnHandler := httpHandler.NewSkipTurnHandler(skipTurnUseCase, sessionManager)

	timeUpUseCase := httpUsecase.NewTimeUpUseCase(postgresRepo, lobbyRedis, kafka, manager)
	timeUpHandler := httpHandler.NewTimeUpHandler(timeUpUseCase, sessionManager)

	advanceTurnUseCase := httpUsecase.NewAdvanceTurnUseCase(postgresRepo, lobbyRedis, kafka, manager)
	advanceTurnHandler := httpHandler.NewAdvanceTurnHandler(advanceTurnUseCase, sessionManager)

	return map[string]interface{}{
		"register-player": registerPlayerHandler,
		"list-categories": listCategoriesHandler,
		"create-lobby":    createLobbyHandler,
		"join-lobby":      joinLobbyHandler,
		"get-lobby":       getLobbyHandler,
		"leave-lobby":     leaveLobbyHandler,
		"disband-lobby":   disbandLobbyHandler,
		"start-game":      startGameHandler,
		"start-turn":      startTurnHandler,
		"correct-guess":   correctGuessHandler,
		"skip-turn":       skipTurnHandler,
		"time-up":         timeUpHandler,
		"advance-turn":    advanceTurnHandler,
	}
}

func SetupWSHandlers(postgresRepo PostgresRepository, sessionManager SessionManager, wsHub Hub) map[string]interface{} {
	lobbyConnectUseCase := wsUsecase.NewLobbyConnectUseCase(wsHub, postgresRepo)
	lobbyConnectHandler := wsHandler.NewWebSocketLobbyHandler(lobbyConnectUseCase, sessionManager)

	return map[string]interface{}{
		"lobby-connect": lobbyConnectHandler,
	}
}
