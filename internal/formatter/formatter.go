// package formatter provides functions to export resolved watchlists to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/sun-mit/streamhub/internal/models"
	"github.com/sun-mit/streamhub/internal/shared"
	"github.com/sun-mit/streamhub/internal/tasks"
)

// ExportToCSV converts a resolved watchlist to CSV format with columns: ID, Title, Year, Rating, Votes
func ExportToCSV(run *tasks.ResolveRunResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Year", "Rating", "Votes"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range run.Movies {
		record := []string{
			movie.Key(),
			movie.Title,
			movie.ReleaseYear(),
			strconv.FormatFloat(movie.VoteAverage, 'f', 1, 64),
			strconv.Itoa(movie.VoteCount),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a resolved watchlist to Markdown format with optional poster image
func ExportToMarkdown(run *tasks.ResolveRunResult, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Watchlist: %s\n\n", run.Identity.Name))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Poster](%s)\n\n", imageFilename))
	}

	buf.WriteString(fmt.Sprintf("**Movies**: %d\n", len(run.Movies)))
	if run.FailedCount > 0 {
		buf.WriteString(fmt.Sprintf("**Unresolved entries**: %d\n", run.FailedCount))
	}
	buf.WriteString("\n## Movies\n\n")

	for i, movie := range run.Movies {
		yearPart := ""
		if year := movie.ReleaseYear(); year != "" {
			yearPart = fmt.Sprintf(" (%s)", year)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s [%.1f/10]\n", i+1, movie.Title, yearPart, movie.VoteAverage))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a resolved watchlist to plain text format
func ExportToText(run *tasks.ResolveRunResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Watchlist: %s <%s>\n", run.Identity.Name, run.Identity.Email))
	buf.WriteString(fmt.Sprintf("Movies: %d\n\n", len(run.Movies)))

	for i, movie := range run.Movies {
		buf.WriteString(fmt.Sprintf("%d. %s", i+1, movie.Title))
		if year := movie.ReleaseYear(); year != "" {
			buf.WriteString(fmt.Sprintf(" (%s)", year))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// ToMetadataJSON generates a JSON representation of the run's summary (without movie details)
func ToMetadataJSON(run *tasks.ResolveRunResult) ([]byte, error) {
	summary := struct {
		Identity models.Identity `json:"identity"`
		Resolved int             `json:"resolved"`
		Failed   int             `json:"failed"`
		Total    int             `json:"total"`
	}{run.Identity, run.ResolvedCount, run.FailedCount, run.TotalEntries}
	return shared.MarshalJSON(summary, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	MoviesFile   string
	MetadataFile string
}

// WriteCSVExport exports a resolved watchlist to CSV with an accompanying metadata JSON file.
//
// Defaults to the identity's email as the base filename & creates {base}_movies.csv and {base}_metadata.json
func WriteCSVExport(run *tasks.ResolveRunResult, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = run.Identity.Email
	}

	csvData, err := ExportToCSV(run)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	moviesFile := baseFilepath + "_movies.csv"
	if err := os.WriteFile(moviesFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(run)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		MoviesFile:   moviesFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory   string
	Files       []string
	PosterImage string
}

// WriteMarkdownExport exports a resolved watchlist to Markdown format in a dedicated directory.
//
// Directory name defaults to the identity's email.
// The imageURL parameter is optional - if provided, attempts to download a poster image.
// Creates a directory structure: {dir}/README.md and optionally {dir}/poster.jpg
func WriteMarkdownExport(run *tasks.ResolveRunResult, outputDir string, imageURL string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = run.Identity.Email
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var posterFilename string
	if imageURL != "" {
		imageData, err := DownloadImage(imageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download poster image: %v\n", err)
		} else {
			posterPath := outputDir + "/poster.jpg"
			if err := os.WriteFile(posterPath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to write poster image: %v\n", err)
			} else {
				posterFilename = "poster.jpg"
				result.PosterImage = posterPath
				result.Files = append(result.Files, posterPath)
			}
		}
	}

	markdownData, err := ExportToMarkdown(run, posterFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	readmePath := outputDir + "/README.md"
	if err := os.WriteFile(readmePath, markdownData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write README: %w", err)
	}
	result.Files = append(result.Files, readmePath)

	return result, nil
}
