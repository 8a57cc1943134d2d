package main // batch worker entry point

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/imontoya/soporte-tickets/internal/config"
	"github.com/imontoya/soporte-tickets/internal/database"
	"github.com/imontoya/soporte-tickets/internal/queue"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Unlike the API, the worker cannot run without Redis: the queue is
	// its only input.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Fatal("redis unavailable")
	}

	log.Printf("batch worker iniciado (env=%s)", cfg.Env)
	queue.NewConsumer(db, rdb).Run()
}
