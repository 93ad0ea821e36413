package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/sun-mit/streamhub/internal/models"
	"github.com/sun-mit/streamhub/internal/shared"
	"github.com/urfave/cli/v3"
)

// MoviesSearch searches the catalog by title.
func (r *Runner) MoviesSearch(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}

	r.logger.Info("searching catalog", "query", query)

	movies, err := r.catalog.SearchMovies(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Results for '%s' (%d)", query, len(movies)))
	return r.writeMovieList(movies)
}

// MoviesPopular lists the catalog's popular rail.
func (r *Runner) MoviesPopular(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}
	return r.browseRail(ctx, cmd, "Popular Movies", r.catalog.Popular)
}

// MoviesTopRated lists the catalog's top rated rail.
func (r *Runner) MoviesTopRated(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}
	return r.browseRail(ctx, cmd, "Top Rated Movies", r.catalog.TopRated)
}

// MoviesNowPlaying lists the catalog's now playing rail.
func (r *Runner) MoviesNowPlaying(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}
	return r.browseRail(ctx, cmd, "Now Playing", r.catalog.NowPlaying)
}

func (r *Runner) browseRail(ctx context.Context, cmd *cli.Command, title string, fetch func(context.Context) ([]models.Movie, error)) error {
	movies, err := fetch(ctx)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, true)
	}

	r.writePlainHeader(title)
	return r.writeMovieList(movies)
}

// MoviesDetails shows a single movie.
func (r *Runner) MoviesDetails(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: movie ID is required", shared.ErrMissingArgument)
	}

	movie, err := r.catalog.MovieByID(ctx, id)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(movie, true)
	}

	r.writePlainHeader(movie.Title)
	if year := movie.ReleaseYear(); year != "" {
		r.writePlain("Released: %s\n", movie.ReleaseDate)
	}
	r.writePlain("Rating: %.1f/10 (%d votes)\n", movie.VoteAverage, movie.VoteCount)
	if movie.Overview != "" {
		r.writePlainln("%s", movie.Overview)
	}
	if poster := movie.PosterURL(r.config.TMDB.ImageBaseURL); poster != "" {
		r.writePlain("Poster: %s\n", poster)
	}
	return nil
}

// MoviesTrailer finds a movie's trailer and optionally opens it in the browser.
func (r *Runner) MoviesTrailer(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: movie ID is required", shared.ErrMissingArgument)
	}

	trailer, err := r.catalog.Trailer(ctx, id)
	if err != nil {
		return fmt.Errorf("trailer lookup failed: %w", err)
	}

	url := trailer.WatchURL()
	r.writePlain("%s\n%s\n", trailer.Name, url)

	if cmd.Bool("open") {
		r.logger.Info("opening trailer", "url", url)
		if err := shared.OpenBrowser(url); err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}
	}
	return nil
}

// MoviesSimilar lists movies similar to the given one.
func (r *Runner) MoviesSimilar(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: movie ID is required", shared.ErrMissingArgument)
	}

	movies, err := r.catalog.Similar(ctx, id)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, true)
	}

	r.writePlainHeader(fmt.Sprintf("Similar to #%s", id))
	return r.writeMovieList(movies)
}

func (r *Runner) writeMovieList(movies []models.Movie) error {
	if len(movies) == 0 {
		return r.writePlain("No movies found\n")
	}

	for i, movie := range movies {
		line := fmt.Sprintf("%2d. [%s] %s", i+1, movie.Key(), movie.Title)
		if year := movie.ReleaseYear(); year != "" {
			line += fmt.Sprintf(" (%s)", year)
		}
		line += fmt.Sprintf(" %.1f/10", movie.VoteAverage)
		if err := r.writePlain("%s\n", line); err != nil {
			return err
		}
	}
	return nil
}
