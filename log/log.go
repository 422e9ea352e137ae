package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// init, global zap logger'ı kurar. cmd tarafında side-effect import ile yüklenir.
func init() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}

	zap.ReplaceGlobals(logger)
}
