package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/gads-play-optimizer/internal/api"
	"github.com/vfg2006/gads-play-optimizer/internal/bootstrap"
	"github.com/vfg2006/gads-play-optimizer/internal/config"
	"github.com/vfg2006/gads-play-optimizer/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar a aplicação")
	}
	defer app.Close()

	if err := app.Scheduler.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador da execução diária")
	} else {
		logrus.Info("Agendador da execução diária iniciado com sucesso")
	}

	server, err := api.New(cfg, app.Authenticator, app.Scheduler, app.Store)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}

	// Execuções em andamento recebem o cancelamento do contexto e terminam como canceladas
	cancel()
	app.Scheduler.Wait()
}
