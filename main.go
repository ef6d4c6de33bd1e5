package main

import (
	"embed"
	"log"
	"os"
	"path/filepath"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/RicardoDalcin/git-delta-tree/internal/config"
	"github.com/RicardoDalcin/git-delta-tree/internal/git/client"
	"github.com/RicardoDalcin/git-delta-tree/internal/logging"
	"github.com/RicardoDalcin/git-delta-tree/internal/storage"
	"github.com/RicardoDalcin/git-delta-tree/internal/storage/migrate"
	"github.com/RicardoDalcin/git-delta-tree/internal/storage/sqlite"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	dataDir, err := storage.DataDir()
	if err != nil {
		log.Fatalf("data dir: %v", err)
	}
	settings, err := config.Load(filepath.Join(dataDir, "settings.yaml"))
	if err != nil {
		log.Fatalf("load settings: %v", err)
	}
	logger := logging.New(os.Stderr, settings.LogFormat, settings.LogLevel)

	db, err := sqlite.Open(filepath.Join(dataDir, "panel.db"))
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	if err := migrate.Up(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	var gitClient client.Client
	if settings.Backend == "gogit" {
		gitClient = client.NewGoGitClient()
	} else {
		gitClient = client.NewExecClient(settings.GitBin)
	}

	app := NewApp(currentWorkingDir(), settings, gitClient, db, logger)

	err = wails.Run(&options.App{
		Title:  "git-delta-tree",
		Width:  420,
		Height: 900,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup:  app.startup,
		OnShutdown: app.shutdown,
		Bind:       []interface{}{app},
	})
	if err != nil {
		logger.Error("run app", "error", err)
	}
}
