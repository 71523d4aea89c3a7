package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ecommerce-dashboard/internal/api"
	"github.com/vfg2006/ecommerce-dashboard/internal/config"
	"github.com/vfg2006/ecommerce-dashboard/internal/dataset"
	"github.com/vfg2006/ecommerce-dashboard/internal/usecases/charting"
	"github.com/vfg2006/ecommerce-dashboard/pkg/log"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	log.SetDevelopment(cfg.App.Debug)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Carga -> gráficos -> painel -> servidor; qualquer falha encerra o processo
	base, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar o dataset")
	}

	chartService := charting.NewService(cfg, base)
	if _, err := chartService.Build(); err != nil {
		logrus.WithError(err).Fatal("Erro ao montar o painel")
	}

	server, err := api.New(cfg, chartService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Listen(); err != nil {
		logrus.WithError(err).Fatal("Erro ao iniciar o servidor")
	}

	if err := server.Run(ctx); err != nil {
		logrus.Fatal(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
