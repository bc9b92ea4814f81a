package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/teaoverlay/internal/config"
	"github.com/jask/teaoverlay/internal/history"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.History.Path), 0o755); err != nil {
		log.Fatalf("mkdir history dir: %v", err)
	}

	db, err := history.Open(cfg.History.Path)
	if err != nil {
		log.Fatalf("open history: %v", err)
	}
	defer db.Close()

	if err := history.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	store := history.NewStore(db)
	if err := store.Prune(ctx, cfg.History.Keep); err != nil {
		log.Printf("warn: prune history: %v", err)
	}

	p := tea.NewProgram(newModel(ctx, cfg, store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("run: %v", err)
	}
}
