// Package main provides a tool to seed the catalog from a JSON title dump.
//
// The input file holds an array of title objects:
//
//	[{"id": "tt0078748", "primaryTitle": "Alien", "genres": ["Horror", "Sci-Fi"],
//	  "startYear": 1979, "averageRating": 8.5, "numVotes": 934000, "runtimeMinutes": 117}]
//
// Usage:
//
//	go run ./cmd/seed --catalog titles.json
package main

import (
	"context"
	"encoding/json/v2"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/vitalii-holoienko/MediaBase/internal/config"
	"github.com/vitalii-holoienko/MediaBase/internal/domain"
	"github.com/vitalii-holoienko/MediaBase/internal/search"
	"github.com/vitalii-holoienko/MediaBase/internal/service"
	"github.com/vitalii-holoienko/MediaBase/internal/store"
)

var catalogPath = flag.String("catalog", "", "Path to the catalog JSON file (overrides config)")

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	path := *catalogPath
	if path == "" {
		path = cfg.Search.CatalogPath
	}
	if path == "" {
		log.Fatal("No catalog file given. Pass --catalog or set SEARCH_CATALOG_PATH.")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read catalog file: %v", err)
	}

	var titles []domain.Title
	if err := json.Unmarshal(data, &titles); err != nil {
		log.Fatalf("Failed to parse catalog file: %v", err)
	}
	fmt.Printf("Loaded %d titles from %s\n", len(titles), path)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	db, err := store.NewBadger(cfg.Store.DataPath+"/db", logger)
	if err != nil {
		log.Fatalf("Failed to open document store: %v", err)
	}
	defer db.Close()

	index, err := search.NewSearchIndex(search.Options{DataPath: cfg.Search.IndexPath, Logger: logger})
	if err != nil {
		log.Fatalf("Failed to open search index: %v", err)
	}
	defer index.Close()

	catalog := service.NewCatalogService(db, index, logger)

	ctx := context.Background()
	seeded := 0
	for _, title := range titles {
		if err := catalog.AddTitle(ctx, title); err != nil {
			log.Printf("Skipping %s: %v", title.ID, err)
			continue
		}
		seeded++
	}

	fmt.Printf("Seeded %d of %d titles\n", seeded, len(titles))
}
