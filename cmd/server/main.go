package main // API server entry point

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/imontoya/soporte-tickets/internal/cache"
	"github.com/imontoya/soporte-tickets/internal/config"
	"github.com/imontoya/soporte-tickets/internal/database"
	"github.com/imontoya/soporte-tickets/internal/handler"
	"github.com/imontoya/soporte-tickets/internal/notify"
	"github.com/imontoya/soporte-tickets/internal/repository"
	"github.com/imontoya/soporte-tickets/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// A nil Redis client is tolerated: the cache degrades to no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, cache disabled")
	}
	ticketCache := cache.NewTicketCache(rdb)

	users := repository.NewUserRepo(db)
	tickets := repository.NewTicketRepo(db, ticketCache)
	interacciones := repository.NewInteraccionRepo(db)
	publisher := notify.NewPublisher(cfg.AMQPURL)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Handlers{
		Auth:          handler.NewAuthHandler(cfg, users),
		Tickets:       handler.NewTicketHandler(tickets, ticketCache, publisher),
		Interacciones: handler.NewInteraccionHandler(interacciones),
		Admin:         handler.NewAdminHandler(users, tickets),
		Health:        handler.NewHealthHandler(db, ticketCache),
	}, cfg.JWTSecret, users)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
