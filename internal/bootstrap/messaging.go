package bootstrap

import (
	"github.com/kdrnck/msgsudot-nye/config"
	httpUsecase "github.com/kdrnck/msgsudot-nye/internal/api/http/usecase"
	"github.com/kdrnck/msgsudot-nye/internal/initializer"
)

type Messaging interface {
	httpUsecase.EventPublisher
	Close() error
}

// SetupMessaging, parti olay akışı yazıcısını kurar. Broker yoksa nil
// client döner; KafkaClient'ın metodları nil alıcıyla no-op olduğu için
// arayüz yine de güvenle kullanılabilir.
func SetupMessaging(config config.Config) Messaging {
	return initializer.InitMessaging(config)
}
