package initializer

import (
	"fmt"
	"log"

	"github.com/kdrnck/msgsudot-nye/config"
	"github.com/kdrnck/msgsudot-nye/infra/session"
)

func InitSessionRedis(appConfig config.Config) *session.SessionManager {
	address := fmt.Sprintf("%s:%s", appConfig.Redis.Host, appConfig.Redis.Port)

	sessionManager, err := session.NewSessionManager(address, appConfig.Redis.Password, appConfig.Redis.DB)
	if err != nil {
		log.Fatalf("session redis bağlantısı kurulamadı: %v", err)
	}

	return sessionManager
}
