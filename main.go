package main

import (
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/catalog"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/config"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/database"
	logger "github.com/Preparicfes/Preparicfes-Actualizado/internal/logging"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/router"

	"go.uber.org/zap"
)

func main() {
	// Initialize Logger
	log, err := logger.Init(".", nil)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Initialize Configuration
	if err := config.Init(".", log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Database
	db, err := database.New(config.Conf.Database, log)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Seed subjects and grades, build the alias canonicalization maps
	cat, err := catalog.Load(db, config.Conf.Catalog.SeedFile, log)
	if err != nil {
		log.Fatal("Failed to load catalog", zap.Error(err))
	}

	// Setup router, passing the logger to it
	r := router.Setup(log, db, cat)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
