// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/sun-mit/streamhub/internal/models"
)

// MockCatalog is a configurable test double for the catalog service.
//
// Movies maps catalog IDs to records; FailIDs lists IDs whose lookup fails.
// The zero value resolves nothing.
type MockCatalog struct {
	Movies     map[string]models.Movie
	Rails      []models.Movie
	VideoList  []models.Video
	FailIDs    map[string]error
	SearchErr  error
	RailErr    error
	VideosErr  error
	LookupLog  []string
	CatalogErr error
}

func (m *MockCatalog) Name() string { return "mock" }

func (m *MockCatalog) MovieByID(ctx context.Context, id string) (*models.Movie, error) {
	m.LookupLog = append(m.LookupLog, id)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.FailIDs[id]; ok {
		return nil, err
	}
	if movie, ok := m.Movies[id]; ok {
		return &movie, nil
	}
	return nil, fmt.Errorf("movie not found: %s", id)
}

func (m *MockCatalog) SearchMovies(ctx context.Context, query string) ([]models.Movie, error) {
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.Rails, nil
}

func (m *MockCatalog) Popular(ctx context.Context) ([]models.Movie, error)    { return m.rail() }
func (m *MockCatalog) TopRated(ctx context.Context) ([]models.Movie, error)   { return m.rail() }
func (m *MockCatalog) NowPlaying(ctx context.Context) ([]models.Movie, error) { return m.rail() }
func (m *MockCatalog) Similar(ctx context.Context, id string) ([]models.Movie, error) {
	return m.rail()
}

func (m *MockCatalog) rail() ([]models.Movie, error) {
	if m.RailErr != nil {
		return nil, m.RailErr
	}
	return m.Rails, nil
}

func (m *MockCatalog) Videos(ctx context.Context, id string) ([]models.Video, error) {
	if m.VideosErr != nil {
		return nil, m.VideosErr
	}
	return m.VideoList, nil
}

func (m *MockCatalog) Trailer(ctx context.Context, id string) (*models.Video, error) {
	videos, err := m.Videos(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, video := range videos {
		if video.IsTrailer() {
			return &video, nil
		}
	}
	return nil, errors.New("no trailer")
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter succeeds for a fixed number of writes, then fails.
type LimitedWriter struct {
	remaining int
	w         io.Writer
}

func NewLimitedWriter(allowed int, w io.Writer) *LimitedWriter {
	return &LimitedWriter{remaining: allowed, w: w}
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.remaining <= 0 {
		return 0, errors.New("write limit exceeded")
	}
	l.remaining--
	return l.w.Write(p)
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading a response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
