package initializer

import (
	"go.uber.org/zap"

	"github.com/kdrnck/msgsudot-nye/config"
	"github.com/kdrnck/msgsudot-nye/infra/kafka"
)

// InitMessaging, parti olay akışı için Kafka yazıcısını kurar. Broker
// yapılandırılmamışsa nil client döner; yayın metodları nil üzerinde
// güvenle no-op çalışır.
func InitMessaging(appConfig config.Config) *kafka.KafkaClient {
	client, err := kafka.NewKafkaClient(kafka.Config{
		Brokers: appConfig.Kafka.Brokers,
		Topic:   appConfig.Kafka.Topic,
	})
	if err != nil {
		zap.L().Warn("kafka disabled", zap.Error(err))
		return nil
	}

	zap.L().Info("kafka client initialized", zap.Strings("brokers", appConfig.Kafka.Brokers))
	return client
}
