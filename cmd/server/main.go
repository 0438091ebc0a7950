package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/sheet-music-catalog/internal/config"
	"github.com/iliyamo/sheet-music-catalog/internal/database"
	"github.com/iliyamo/sheet-music-catalog/internal/handler"
	"github.com/iliyamo/sheet-music-catalog/internal/queue"
	"github.com/iliyamo/sheet-music-catalog/internal/repository"
	"github.com/iliyamo/sheet-music-catalog/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("mysql connection error: %v", err)
	}
	log.Println("connected to MySQL database")

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("schema setup error: %v", err)
	}

	// The audit consumer is only started when a broker is configured; the
	// API itself never depends on it.
	if cfg.AMQPURL != "" {
		go queue.StartConsumer(cfg.AMQPURL)
	}

	users := repository.NewUserRepo(db)
	records := repository.NewSheetMusicRepo(db)
	events := queue.NewPublisher(cfg.AMQPURL)

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	router.RegisterRoutes(e, cfg.JWTSecret,
		handler.NewAuthHandler(cfg, users),
		handler.NewUserHandler(cfg, users),
		handler.NewSheetMusicHandler(records, events))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
