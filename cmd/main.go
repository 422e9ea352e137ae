package main

import (
	"go.uber.org/zap"

	"github.com/kdrnck/msgsudot-nye/config"
	"github.com/kdrnck/msgsudot-nye/internal/bootstrap"
	_ "github.com/kdrnck/msgsudot-nye/log"
)

func main() {
	appConfig := config.Read()
	defer zap.L().Sync()
	zap.L().Info("app starting...", zap.String("app name", appConfig.App.Name))

	app := bootstrap.NewApp(appConfig)

	app.Start()
}
