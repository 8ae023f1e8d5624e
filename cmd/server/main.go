package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"hoopsim/internal/api"
	"hoopsim/internal/config"
	"hoopsim/internal/game"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load("../.env"); err != nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("no .env file found, using environment variables only")
		}
	} else {
		log.Println("loaded environment from ../.env")
	}

	log.Println("================================")
	log.Println(" BASKETBALL SIMULATION ENGINE")
	log.Println("================================")

	appConfig := config.Load()
	simCfg := appConfig.Sim
	serverCfg := appConfig.Server
	limits := appConfig.Limits

	log.Printf("config: %d TPS, port %d, max %d concurrent games", simCfg.TickRate, serverCfg.Port, limits.MaxConcurrentGames)

	engine := game.NewEngine(simCfg.TickRate)

	engine.SetOnTick(func(id string, mg *game.ManagedGame, tickDuration time.Duration) {
		api.RecordTick(tickDuration)
		api.UpdateActiveGames(len(engine.ListGames()))
		api.UpdateLeaderboardSize(engine.Leaderboard().Length())
	})

	debugCfg := api.DefaultObservabilityConfig()
	if !serverCfg.DisableDebug {
		if err := api.StartDebugServer(debugCfg); err != nil {
			log.Printf("debug server disabled: %v", err)
		}
	}

	server := api.NewServer(engine)

	port := strconv.Itoa(serverCfg.Port)
	go func() {
		addr := ":" + port
		log.Printf("API server on http://localhost%s", addr)
		if err := server.Start(addr); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("server ready, press Ctrl+C to stop")
	<-quit

	log.Println("shutting down...")
	server.Stop()
	engine.Shutdown()
	log.Println("goodbye")
}
