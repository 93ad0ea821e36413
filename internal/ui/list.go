package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/sun-mit/streamhub/internal/models"
)

var _ list.Item = movieItem{}

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie models.Movie
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string       { return i.movie.Title }
func (i movieItem) Description() string {
	desc := fmt.Sprintf("%.1f/10", i.movie.VoteAverage)
	if year := i.movie.ReleaseYear(); year != "" {
		desc = fmt.Sprintf("%s • %s", year, desc)
	}
	return desc
}
