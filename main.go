package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"CalcBoard/internal/config"
	"CalcBoard/internal/logging"
	boardnet "CalcBoard/internal/net"
	"CalcBoard/internal/session"
	"CalcBoard/internal/solver"
	"CalcBoard/internal/ui"
)

const AppID = "io.calcboard.app"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	// A solver URL on the command line wins over the config file and env.
	if len(os.Args) > 1 && (strings.HasPrefix(os.Args[1], "http://") || strings.HasPrefix(os.Args[1], "https://")) {
		cfg.APIURL = os.Args[1]
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logger.Sync()

	apiURL, err := resolveAPI(cfg, logger)
	if err != nil {
		logger.Fatal("no solver available", zap.Error(err))
	}

	client, err := solver.NewClient(apiURL, cfg.ResponseSchema(), cfg.Timeout, logger.Named("solver"))
	if err != nil {
		logger.Fatal("bad solver url", zap.String("url", apiURL), zap.Error(err))
	}
	logger.Info("using solver", zap.String("endpoint", client.Endpoint()), zap.String("schema", string(cfg.ResponseSchema())))

	sess := session.New(client, logger.Named("session"))

	a := app.NewWithID(AppID)
	w := a.NewWindow("CalcBoard")
	w.Resize(fyne.NewSize(cfg.WindowWidth, cfg.WindowHeight))
	w.SetContent(ui.Build(w, sess, logger.Named("ui")))
	w.ShowAndRun()
}

func resolveAPI(cfg config.Config, logger *zap.Logger) (string, error) {
	if cfg.APIURL != "" {
		return cfg.APIURL, nil
	}
	if !cfg.Discover {
		return "", errors.New("discovery is off: set api_url or CALCBOARD_API_URL")
	}
	logger.Info("no api_url configured, browsing for a solver", zap.String("service", boardnet.ServiceType))
	return boardnet.Discover(context.Background(), cfg.DiscoverTimeout, logger.Named("discovery"))
}
