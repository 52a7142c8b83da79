package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IoannouAndreas/CV-Os/server"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func main() {
	cfg, err := server.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := Server{
		GameServer: server.NewGameServer(cfg),
	}
	s.routes(ctx)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s.router,
	}
	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		s.GameServer.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warnf("shutdown: %v", err)
		}
	}()

	log.WithFields(log.Fields{
		"port":   cfg.Port,
		"preset": cfg.Settings.Preset.Name(),
		"speed":  cfg.Settings.Speed,
	}).Info("arena server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalln(err)
	}
}
