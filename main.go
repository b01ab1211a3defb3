package main

import (
	"log"

	"github.com/sportlink/sportlink/config"
	_ "github.com/sportlink/sportlink/docs"
	"github.com/sportlink/sportlink/internal/auth"
	"github.com/sportlink/sportlink/internal/club"
	"github.com/sportlink/sportlink/internal/feed"
	"github.com/sportlink/sportlink/internal/message"
	"github.com/sportlink/sportlink/internal/user"
	"github.com/sportlink/sportlink/routes"
)

// @title Sportlink REST API
// @version 1.0
// @description Social platform for players, scouts, coaches and football clubs.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&user.User{}, &user.PlayerProfile{}, &user.CoachProfile{},
		&user.ScoutProfile{}, &user.CoachAchievement{},
		&auth.RefreshToken{}, &auth.EmailVerification{},
		&club.Club{}, &club.Member{}, &club.JoinRequest{},
		&club.Event{}, &club.Achievement{},
		&feed.Post{}, &feed.Comment{}, &feed.Like{},
		&message.Message{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes(config.DB, cfg)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
