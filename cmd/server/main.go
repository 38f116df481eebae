package main

import (
	"fmt"
	"log"

	"gis-kpi-tracker/internal/ai"
	"gis-kpi-tracker/internal/blobstore"
	"gis-kpi-tracker/internal/config"
	"gis-kpi-tracker/internal/database"
	"gis-kpi-tracker/internal/handlers"
	"gis-kpi-tracker/internal/server"
)

func main() {
	cfg := config.Load()

	db := database.Open(cfg.DBDSN)

	blobs, err := blobstore.New(cfg.UploadDir)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	aiClient := ai.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)

	h := handlers.New(db, blobs, aiClient)
	r := server.NewRouter(cfg, db, h)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
