package models

import (
	"fmt"
	"strings"
)

// Identity is the public profile of a registered user, unique by Email.
// Email comparison is case-sensitive as stored.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credential is an [Identity] plus the bcrypt hash of its password.
// Credentials live in the account directory and never leave the storage layer.
type Credential struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

// Identity returns the public projection of the credential.
func (c Credential) Identity() Identity {
	return Identity{Name: c.Name, Email: c.Email}
}

// Validate checks that all required credential fields are present.
func (c Credential) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if c.PasswordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	return nil
}

// Movie represents one movie as returned by the external catalog.
//
// Field names mirror the catalog's wire format so a movie document can be
// decoded directly into this struct.
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
}

// Key returns the movie's catalog ID in the string form used by watchlist
// entries.
func (m Movie) Key() string {
	return fmt.Sprintf("%d", m.ID)
}

// ReleaseYear returns the four-digit year of the release date, or an empty
// string when the date is absent or malformed.
func (m Movie) ReleaseYear() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// PosterURL joins the configured image base URL with the movie's poster path.
// Returns an empty string when the movie has no poster.
func (m Movie) PosterURL(imageBaseURL string) string {
	if m.PosterPath == "" {
		return ""
	}
	return strings.TrimRight(imageBaseURL, "/") + m.PosterPath
}

// Video represents a video resource attached to a movie (trailer, teaser,
// clip). Trailer lookup selects the first YouTube video of type "Trailer".
type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// IsTrailer reports whether the video is a YouTube trailer.
func (v Video) IsTrailer() bool {
	return v.Type == "Trailer" && v.Site == "YouTube"
}

// WatchURL returns the playable URL for a YouTube-hosted video, or an empty
// string for other hosts.
func (v Video) WatchURL() string {
	if v.Site != "YouTube" || v.Key == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + v.Key
}
