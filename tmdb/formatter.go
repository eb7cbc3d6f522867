package tmdb

import (
	"fmt"
	"strings"
)

// ConsoleFormatter provides console output formatting for movies
type ConsoleFormatter struct {
	ShowOverview bool
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatSummaryList formats a list of movies as a tree
func (f *ConsoleFormatter) FormatSummaryList(heading string, movies []Summary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s (%d):\n\n", heading, len(movies))

	for i, movie := range movies {
		isLast := i == len(movies)-1
		prefix := "├"
		indent := "│   "
		if isLast {
			prefix = "╰"
			indent = "    "
		}

		fmt.Fprintf(&sb, "%s── %s (%s)\n", prefix, movie.Title, movie.Year)
		fmt.Fprintf(&sb, "%sLink: /movie/%s\n", indent, movie.ID)
		if movie.VoteAverage > 0 {
			fmt.Fprintf(&sb, "%sRating: %.1f/10\n", indent, movie.VoteAverage)
		}
		if f.ShowOverview && movie.Overview != "" {
			fmt.Fprintf(&sb, "%s%s\n", indent, movie.Overview)
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatDetail formats a single movie record
func (f *ConsoleFormatter) FormatDetail(movie *Detail) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s (%s)\n", movie.Title, movie.Year)
	fmt.Fprintf(&sb, "%s • %s • %s\n\n", movie.Rated, movie.Runtime, movie.Genre)

	fields := []struct {
		label string
		value string
	}{
		{"Plot", movie.Plot},
		{"Director", movie.Director},
		{"Top Billed Cast", movie.Cast},
		{"Released", movie.Released},
		{"Language", movie.Language},
		{"Country", movie.Country},
		{"TMDB Rating", fmt.Sprintf("%s/10 (%s votes)", movie.Rating, movie.Votes)},
		{"Poster", movie.PosterURL},
	}

	for i, field := range fields {
		prefix := "├"
		if i == len(fields)-1 {
			prefix = "╰"
		}
		fmt.Fprintf(&sb, "%s── %s: %s\n", prefix, field.label, field.value)
	}

	return sb.String()
}
