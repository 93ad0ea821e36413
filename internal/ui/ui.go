package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sun-mit/streamhub/internal/models"
	"github.com/sun-mit/streamhub/internal/repositories"
	"github.com/sun-mit/streamhub/internal/services"
	"github.com/sun-mit/streamhub/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ResolveView ViewState = iota
	WatchlistView
	DetailView
	ConfirmRemoveView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	identity     models.Identity
	watchlists   *repositories.WatchlistRepository
	engine       tasks.Resolver
	catalog      services.Catalog
	width        int
	height       int
	movieList    list.Model
	result       *tasks.ResolveRunResult
	selected     *models.Movie
	trailer      *models.Video
	trailerErr   error
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
//
// The identity must be the active session; callers guard against launching
// the TUI anonymously.
func NewModel(
	ctx context.Context,
	identity models.Identity,
	watchlists *repositories.WatchlistRepository,
	engine tasks.Resolver,
	catalog services.Catalog,
) *Model {
	return &Model{
		ctx:        ctx,
		view:       ResolveView,
		identity:   identity,
		watchlists: watchlists,
		engine:     engine,
		catalog:    catalog,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init starts watchlist resolution.
func (m *Model) Init() tea.Cmd {
	return m.startResolve()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.movieList.Width() == 0 {
			m.movieList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case WatchlistView:
			return m.handleWatchlistKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case ConfirmRemoveView:
			return m.handleConfirmKeys(msg)
		default:
			if msg.String() == "q" || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		}

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case watchlistResolvedMsg:
		if m.progressChan != nil {
			m.progressChan = nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.result = msg.result
		items := make([]list.Item, len(msg.result.Movies))
		for i, movie := range msg.result.Movies {
			items[i] = movieItem{movie: movie}
		}
		m.movieList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.movieList.Title = fmt.Sprintf("%s's Watchlist", m.identity.Name)
		m.movieList.SetSize(m.width-4, m.height-8)
		m.view = WatchlistView
		return m, nil

	case trailerFetchedMsg:
		m.trailer = msg.video
		m.trailerErr = msg.err
		return m, nil

	case entryRemovedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.selected = nil
		m.view = ResolveView
		return m, m.startResolve()
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case ResolveView:
		return m.renderResolve()
	case WatchlistView:
		return m.renderWatchlist()
	case DetailView:
		return m.renderDetail()
	case ConfirmRemoveView:
		return m.renderConfirm()
	default:
		return ""
	}
}

func (m *Model) handleWatchlistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = ResolveView
		return m, m.startResolve()
	case "enter":
		if movie, ok := m.selectedMovie(); ok {
			m.selected = movie
			m.trailer = nil
			m.trailerErr = nil
			m.view = DetailView
		}
		return m, nil
	case "x":
		if movie, ok := m.selectedMovie(); ok {
			m.selected = movie
			m.view = ConfirmRemoveView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.movieList, cmd = m.movieList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = WatchlistView
		return m, nil
	case "t":
		return m, m.fetchTrailer(m.selected.Key())
	case "x":
		m.view = ConfirmRemoveView
		return m, nil
	}
	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = WatchlistView
		return m, nil
	case "y":
		return m, m.removeSelected()
	}
	return m, nil
}

func (m *Model) selectedMovie() (*models.Movie, bool) {
	selected := m.movieList.SelectedItem()
	if selected == nil {
		return nil, false
	}
	item, ok := selected.(movieItem)
	if !ok {
		return nil, false
	}
	return &item.movie, true
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == WatchlistView {
		m.movieList, cmd = m.movieList.Update(msg)
	}
	return m, cmd
}

func (m *Model) startResolve() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progress := m.progressChan

	resolve := func() tea.Msg {
		result, err := m.engine.Resolve(m.ctx, m.identity, progress)
		close(progress)
		return watchlistResolvedMsg{result: result, err: err}
	}

	return tea.Batch(resolve, m.waitForProgress())
}

func (m *Model) waitForProgress() tea.Cmd {
	progress := m.progressChan
	return func() tea.Msg {
		if progress == nil {
			return nil
		}
		update, ok := <-progress
		if !ok {
			return nil
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) fetchTrailer(movieID string) tea.Cmd {
	return func() tea.Msg {
		video, err := m.catalog.Trailer(m.ctx, movieID)
		return trailerFetchedMsg{movieID: movieID, video: video, err: err}
	}
}

func (m *Model) removeSelected() tea.Cmd {
	movieID := m.selected.Key()
	return func() tea.Msg {
		err := m.watchlists.Remove(m.identity, movieID)
		return entryRemovedMsg{movieID: movieID, err: err}
	}
}

func (m *Model) renderResolve() string {
	title := styles.title.Render("Loading Watchlist")

	var phase string
	switch m.progress.Phase {
	case tasks.LoadEntries:
		phase = "Loading saved entries..."
	case tasks.ResolveMovies:
		phase = fmt.Sprintf("Resolving movies (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.ResolveDone:
		phase = "Done"
	default:
		phase = "Starting..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderWatchlist() string {
	var footer string
	if m.result != nil && m.result.FailedCount > 0 {
		footer = styles.warn.Render(fmt.Sprintf("%d entries could not be resolved", m.result.FailedCount)) + "\n"
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.remove, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s%s", m.movieList.View(), footer, helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return styles.err.Render("No movie selected\n\nPress esc to go back")
	}

	title := styles.title.Render(m.selected.Title)

	info := fmt.Sprintf("Released: %s\nRating: %.1f/10 (%d votes)\n\n%s",
		m.selected.ReleaseDate, m.selected.VoteAverage, m.selected.VoteCount, m.selected.Overview)

	var trailer string
	if m.trailer != nil {
		trailer = fmt.Sprintf("\n\n%s %s", styles.ok.Render("Trailer:"), m.trailer.WatchURL())
	} else if m.trailerErr != nil {
		trailer = fmt.Sprintf("\n\n%s", styles.warn.Render("No trailer available"))
	}

	helpKeys := []key.Binding{m.keys.trailer, m.keys.remove, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, trailer, helpView)
}

func (m *Model) renderConfirm() string {
	if m.selected == nil {
		return styles.err.Render("No movie selected\n\nPress esc to go back")
	}

	title := styles.title.Render(fmt.Sprintf("Remove '%s' from your watchlist?", m.selected.Title))

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n\n%s", title, helpView)
}
