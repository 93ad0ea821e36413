package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/sun-mit/streamhub/internal/formatter"
	"github.com/sun-mit/streamhub/internal/shared"
	"github.com/urfave/cli/v3"
)

// WatchlistShow resolves the active identity's watchlist and displays it.
func (r *Runner) WatchlistShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}
	identity, err := r.requireSession()
	if err != nil {
		return err
	}

	run, err := r.engine.Resolve(ctx, identity, nil)
	if err != nil {
		return fmt.Errorf("failed to resolve watchlist: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(run, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("%s's Watchlist (%d)", identity.Name, run.TotalEntries))
	if err := r.writeMovieList(run.Movies); err != nil {
		return err
	}

	if run.FailedCount > 0 {
		r.writePlainln("%d entries could not be resolved:", run.FailedCount)
		for _, result := range run.Results {
			if result.Error != nil {
				if err := r.writePlain("  • %s: %v\n", result.ID, result.Error); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// WatchlistToggle adds the movie if absent, removes it if present.
func (r *Runner) WatchlistToggle(ctx context.Context, cmd *cli.Command) error {
	identity, err := r.requireSession()
	if err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: movie ID is required", shared.ErrMissingArgument)
	}

	saved, err := r.watchlists.Toggle(identity, id)
	if err != nil {
		return fmt.Errorf("failed to update watchlist: %w", err)
	}

	r.logger.Info("toggled watchlist entry", "email", identity.Email, "id", id, "saved", saved)
	if saved {
		return r.writePlain("✓ Added %s to your watchlist\n", id)
	}
	return r.writePlain("✓ Removed %s from your watchlist\n", id)
}

// WatchlistRemove removes the movie. Removing an absent ID is a no-op.
func (r *Runner) WatchlistRemove(ctx context.Context, cmd *cli.Command) error {
	identity, err := r.requireSession()
	if err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: movie ID is required", shared.ErrMissingArgument)
	}

	if err := r.watchlists.Remove(identity, id); err != nil {
		return fmt.Errorf("failed to update watchlist: %w", err)
	}

	return r.writePlain("✓ Removed %s from your watchlist\n", id)
}

// WatchlistExport resolves the watchlist and exports it in the requested format.
func (r *Runner) WatchlistExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}
	identity, err := r.requireSession()
	if err != nil {
		return err
	}

	run, err := r.engine.Resolve(ctx, identity, nil)
	if err != nil {
		return fmt.Errorf("failed to resolve watchlist: %w", err)
	}

	format := strings.ToLower(cmd.String("format"))
	output := cmd.String("output")

	switch format {
	case "csv":
		result, err := formatter.WriteCSVExport(run, output)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		r.writePlain("✓ Exported %d movies\n", len(run.Movies))
		r.writePlain("Movies: %s\n", result.MoviesFile)
		return r.writePlain("Metadata: %s\n", result.MetadataFile)
	case "text", "table":
		body, err := formatter.ExportToText(run)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		return r.writePlain("%s", body)
	case "markdown", "md":
		var imageURL string
		if len(run.Movies) > 0 {
			imageURL = run.Movies[0].PosterURL(r.config.TMDB.ImageBaseURL)
		}
		result, err := formatter.WriteMarkdownExport(run, output, imageURL)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		r.writePlain("✓ Exported %d movies to %s\n", len(run.Movies), result.Directory)
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q, expected csv, markdown, or text", shared.ErrInvalidArgument, format)
	}
}
