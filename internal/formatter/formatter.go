// package formatter renders song catalogs as CSV, Markdown, plain text, JSON and terminal tables
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/songhub/internal/models"
	"github.com/desertthunder/songhub/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatCSV, FormatMarkdown, FormatText, FormatJSON}

// ParseFormat resolves a format name. "markdown", "text" and "plain" are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want csv, md, txt or json)", shared.ErrInvalidFlag, name)
	}
}

// ExportToCSV converts songs to CSV with columns: ID, Name, Genre, Language, Keyword, Added
func ExportToCSV(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Genre", "Language", "Keyword", "Added"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range songs {
		record := []string{
			idString(song.ID),
			song.Name,
			song.Genre,
			song.Language,
			song.Keyword,
			song.AddedAt,
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

// ExportToMarkdown converts songs to a Markdown document with a title heading and a table.
func ExportToMarkdown(title string, songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(songs)))

	if len(songs) == 0 {
		buf.WriteString("No songs found.\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("| # | Name | Genre | Language | Keyword |\n")
	buf.WriteString("|---|------|-------|----------|---------|\n")
	for i, song := range songs {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			i+1, escapeMarkdown(song.Name), song.Genre, song.Language, song.Keyword))
	}

	return buf.Bytes(), nil
}

// ExportToText converts songs to plain text, one song per line.
func ExportToText(title string, songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s\n", title))
	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(songs)))

	for i, song := range songs {
		buf.WriteString(fmt.Sprintf("%d. %s [%s, %s, %s]\n", i+1, song.Name, song.Genre, song.Language, song.Keyword))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts songs to an indented JSON array.
func ExportToJSON(songs []models.Song) ([]byte, error) {
	if songs == nil {
		songs = []models.Song{}
	}
	return shared.MarshalJSON(songs, true)
}

// Export renders songs in format. The title heads Markdown and text output.
func Export(songs []models.Song, format Format, title string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(songs)
	case FormatMarkdown:
		return ExportToMarkdown(title, songs)
	case FormatText:
		return ExportToText(title, songs)
	case FormatJSON:
		return ExportToJSON(songs)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// WriteExport renders songs and writes them to path, creating parent directories.
func WriteExport(songs []models.Song, format Format, title, path string) error {
	data, err := Export(songs, format, title)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// DefaultFilename returns "<base>.<format>".
func DefaultFilename(base string, format Format) string {
	return base + "." + string(format)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF8C00")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A5A"))
)

// Table renders songs as a bordered terminal table.
func Table(songs []models.Song) string {
	rows := make([][]string, 0, len(songs))
	for i, song := range songs {
		rows = append(rows, []string{strconv.Itoa(i + 1), song.Name, song.Genre, song.Language, song.Keyword})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("#", "Name", "Genre", "Language", "Keyword").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.String()
}

func idString(id int) string {
	if id == 0 {
		return ""
	}
	return strconv.Itoa(id)
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
