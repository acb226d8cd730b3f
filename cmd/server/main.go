package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"

	"attendanceportal/internal/config"
	"attendanceportal/internal/database"
	"attendanceportal/internal/routes"
	"attendanceportal/internal/ws"
)

func main() {
	// Load .env (non-fatal if missing in production)
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	if err := database.SeedAccounts(db, cfg); err != nil {
		log.Fatalf("account seed failed: %v", err)
	}

	if cfg.SeedDemoData {
		if err := database.SeedDemo(db); err != nil {
			log.Fatalf("demo seed failed: %v", err)
		}
	}

	hub := ws.NewActivityHub()
	go hub.Run()

	r := gin.Default()
	routes.Register(r, db, cfg, hub)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Println("server exited with error:", err)
		os.Exit(1)
	}
}
