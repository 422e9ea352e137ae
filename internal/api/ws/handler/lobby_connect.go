package wsHandler

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kdrnck/msgsudot-nye/domain"
	wsUsecase "github.com/kdrnck/msgsudot-nye/internal/api/ws/usecase"
)

type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (uuid.UUID, error)
}

// WebSocketLobbyHandler, lobi ws bağlantılarını yönetir.
type WebSocketLobbyHandler struct {
	usecase  wsUsecase.LobbyConnectUseCase
	sessions SessionResolver
}

type WebSocketLobbyRequest struct {
}

func NewWebSocketLobbyHandler(usecase wsUsecase.LobbyConnectUseCase, sessions SessionResolver) *WebSocketLobbyHandler {
	return &WebSocketLobbyHandler{
		usecase:  usecase,
		sessions: sessions,
	}
}

func (h *WebSocketLobbyHandler) sendErrorAndClose(conn *websocket.Conn, msg string, code int) {
	errorMessage := domain.WebSocketErrorMessage{
		Type:    "error",
		Message: msg,
		Code:    code,
	}
	if err := conn.WriteJSON(errorMessage); err != nil {
		zap.L().Debug("failed to send ws error", zap.Error(err))
	}
	conn.Close()
}

// HandleWS, oturum çözümleyip bağlantıyı usecase'e devreder. Tarayıcı
// ws istemcileri header gönderemediği için token query parametresiyle de
// kabul edilir.
func (h *WebSocketLobbyHandler) HandleWS(c *websocket.Conn, ctx context.Context, req *WebSocketLobbyRequest) {
	token := c.Query("token")
	if token == "" {
		token = c.Headers("X-Session-Token")
	}
	if token == "" {
		h.sendErrorAndClose(c, "missing session token", 401)
		return
	}

	playerID, err := h.sessions.ResolveSession(ctx, token)
	if err != nil {
		h.sendErrorAndClose(c, "invalid session", 401)
		return
	}

	lobbyID, err := uuid.Parse(c.Params("lobby_id"))
	if err != nil {
		h.sendErrorAndClose(c, "invalid lobby id", 400)
		return
	}

	h.usecase.Execute(c, ctx, lobbyID, playerID)
}
