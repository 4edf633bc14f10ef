package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"

	"Recipe-Share-Backend/cmd/config"
	migration "Recipe-Share-Backend/cmd/database/migrate"
	"Recipe-Share-Backend/internal/utils"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to build app: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		if err := app.Shutdown(); err != nil {
			log.Errorf("error during shutdown: %v", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	if err := app.Listen(":8000"); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
