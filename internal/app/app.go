package app

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/reelcache/reelcache/internal/bookmark"
	"github.com/reelcache/reelcache/internal/config"
	"github.com/reelcache/reelcache/internal/database"
	"github.com/reelcache/reelcache/internal/domain"
	"github.com/reelcache/reelcache/internal/logger"
	"github.com/reelcache/reelcache/internal/movie"
	"github.com/reelcache/reelcache/internal/tmdb"
)

// App holds the wired application: the cache database, the remote source,
// and the two services callers talk to.
type App struct {
	Log       zerolog.Logger
	Config    *domain.Config
	Movies    movie.Service
	Bookmarks bookmark.Service

	db *database.DB
}

// NewApp creates an application instance with all dependencies initialized.
func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	log := logger.NewLoggerWithLevel(level)

	db, err := database.NewDB(cfg.DataDir, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	movieRepo := database.NewMovieRepo(log, db)
	detailRepo := database.NewDetailRepo(log, db)
	bookmarkRepo := database.NewBookmarkRepo(log, db)

	remote := tmdb.NewService(log, cfg)

	return &App{
		Log:       log,
		Config:    cfg,
		Movies:    movie.NewService(log, remote, movieRepo, detailRepo, bookmarkRepo, cfg.CacheTTL, time.Now),
		Bookmarks: bookmark.NewService(log, bookmarkRepo, time.Now),
		db:        db,
	}, nil
}

// Close releases the database connection.
func (a *App) Close() error {
	return a.db.Close()
}
