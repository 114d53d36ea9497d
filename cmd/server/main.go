package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Viswas-Programs/survivreloaded-server/internal/agent"
	"github.com/Viswas-Programs/survivreloaded-server/internal/engine"
	"github.com/Viswas-Programs/survivreloaded-server/internal/network"
	"github.com/Viswas-Programs/survivreloaded-server/internal/server"
	"github.com/Viswas-Programs/survivreloaded-server/internal/version"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг флагов
	var configPath string
	var seed string
	var bots int
	flag.StringVar(&configPath, "config", "", "Path to YAML config (empty for defaults)")
	flag.StringVar(&seed, "seed", "", "Arena seed override (empty for random)")
	flag.IntVar(&bots, "bots", 0, "Number of headless bots to spawn")
	flag.Parse()

	logger.Log.Info("Starting Surviv Reloaded server...")
	logger.Log.Info(version.String())

	// 2. Конфигурация
	cfg := engine.DefaultConfig()
	if configPath != "" {
		loaded, err := engine.LoadConfig(configPath)
		if err != nil {
			logger.Log.Fatal("Failed to load config: ", err)
		}
		cfg = loaded
	}
	if seed != "" {
		cfg.Seed = seed
	}

	port := os.Getenv("SURVIV_PORT")
	if port == "" {
		port = "8080"
	}

	// 3. Ядро: один матч на процесс
	hub := network.NewBroadcaster()
	session := engine.NewSession(cfg, hub)
	go session.Run()

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 4. Транспорт
	srv := server.New(session, port)
	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error: ", err)
		}
	}()

	if bots > 0 {
		// Даем листенеру подняться, потом запускаем ботов как
		// обычных внешних клиентов.
		go func() {
			time.Sleep(500 * time.Millisecond)
			agent.Spawn("ws://127.0.0.1:"+port+"/ws", bots, 250*time.Millisecond)
		}()
	}

	<-stop
	logger.Log.Info("Shutting down...")
	session.Stop()
	logger.Log.Info("Done.")
}
