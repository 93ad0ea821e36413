package server

import (
	"github.com/charmbracelet/log"
	"github.com/sun-mit/streamhub/internal/repositories"
	"github.com/sun-mit/streamhub/internal/services"
	"github.com/sun-mit/streamhub/internal/tasks"
)

// NewAPIRouter builds the full API router with logging and JSON middleware
// and all handlers registered.
func NewAPIRouter(
	sessions *repositories.SessionRepository,
	watchlists *repositories.WatchlistRepository,
	resolver tasks.Resolver,
	catalog services.Catalog,
	logger *log.Logger,
) *BasicRouter {
	router := NewBasicRouter()
	router.Use(LoggingMiddleware(logger), JSONMiddleware)

	router.Handler(NewAuthHandler(sessions, logger))
	router.Handler(NewWatchlistHandler(sessions, watchlists, resolver, logger))
	router.Handler(NewMovieHandler(catalog))

	return router
}
