package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"strings"

	"github.com/r3p1n/scoring/internal/config"
	"github.com/r3p1n/scoring/internal/db"
	"github.com/r3p1n/scoring/internal/game"
	"github.com/r3p1n/scoring/internal/logging"
	"github.com/r3p1n/scoring/internal/store"
)

func main() {
	filePath := flag.String("file", "users.csv", "path to a csv with a name column")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	ctx := context.Background()
	if err := db.Bootstrap(ctx, conn, logging.Discard()); err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}

	names, err := readNames(*filePath)
	if err != nil {
		log.Fatalf("failed to read users: %v", err)
	}

	manager := game.NewManager(store.New(conn, logging.Discard()), logging.Discard(), cfg.DefaultGoal)
	added, existing, skipped := 0, 0, 0
	for _, name := range names {
		_, created, err := manager.EnsureUser(ctx, name)
		switch {
		case errors.Is(err, game.ErrInvalidName):
			log.Printf("skipping invalid name %q", name)
			skipped++
		case err != nil:
			log.Fatalf("failed to load user %q: %v", name, err)
		case created:
			added++
		default:
			existing++
		}
	}
	log.Printf("loaded users added=%d existing=%d skipped=%d", added, existing, skipped)
}

// readNames reads the first column of every row after the header.
func readNames(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var names []string
	header := true
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if header {
			header = false
			continue
		}
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		names = append(names, row[0])
	}
	return names, nil
}
