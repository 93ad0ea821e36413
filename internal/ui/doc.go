// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for watchlist management:
//  1. [ResolveView] : Resolve stored watchlist entries against the catalog
//  2. [WatchlistView] : Browse the resolved watchlist
//  3. [DetailView] : Inspect a single movie, including its trailer
//  4. [ConfirmRemoveView] : Confirm removal before the watchlist is mutated
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the WatchlistEngine, providing non-blocking status reporting during resolution.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
