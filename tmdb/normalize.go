package tmdb

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// topCastSize is the number of billed cast members shown on a detail record
const topCastSize = 5

// directorJob is the crew job that identifies the director
const directorJob = "Director"

// imageURLs builds absolute image URLs from provider-relative paths
type imageURLs struct {
	baseURL string
	size    string
}

// url returns the absolute URL for path, or placeholder when path is empty
func (i imageURLs) url(path, placeholder string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return placeholder
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return i.baseURL + "/" + i.size + path
}

// summary normalizes one search or listing entry
func (i imageURLs) summary(r movieResult) Summary {
	return Summary{
		ID:          strconv.FormatInt(r.ID, 10),
		Title:       r.Title,
		Year:        displayYear(r.ReleaseDate),
		PosterURL:   i.url(r.PosterPath, PlaceholderPoster),
		Overview:    r.Overview,
		VoteAverage: r.VoteAverage,
		Popularity:  r.Popularity,
	}
}

// summaries normalizes a result page. The returned slice is never nil.
func (i imageURLs) summaries(results []movieResult) []Summary {
	movies := make([]Summary, 0, len(results))
	for _, r := range results {
		movies = append(movies, i.summary(r))
	}
	return movies
}

// detail normalizes a movie record, substituting NotAvailable for anything missing
func (i imageURLs) detail(m movieDetails, region, lang string) *Detail {
	return &Detail{
		Summary: Summary{
			ID:          strconv.FormatInt(m.ID, 10),
			Title:       m.Title,
			Year:        displayYear(m.ReleaseDate),
			PosterURL:   i.url(m.PosterPath, PlaceholderDetailPoster),
			Overview:    m.Overview,
			VoteAverage: m.VoteAverage,
			Popularity:  m.Popularity,
		},
		BackdropURL: i.url(m.BackdropPath, PlaceholderDetailPoster),
		IMDbID:      m.IMDbID,
		Plot:        orNotAvailable(m.Overview),
		Rated:       findCertification(m.ReleaseDates, region),
		Runtime:     formatRuntime(m.Runtime),
		Genre:       joinGenres(m.Genres),
		Director:    findDirector(m.Credits),
		Cast:        topCast(m.Credits, topCastSize),
		Released:    orNotAvailable(m.ReleaseDate),
		Language:    orNotAvailable(strings.ToUpper(m.OriginalLanguage)),
		Country:     joinCountries(m.ProductionCountries),
		Rating:      formatRating(m.VoteAverage),
		Votes:       formatVotes(m.VoteCount, lang),
	}
}

// displayYear returns the first four characters of a release date
func displayYear(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return NotAvailable
	}
	if len(date) > 4 {
		return date[:4]
	}
	return date
}

// findDirector returns the first crew member credited as director
func findDirector(c *credits) string {
	if c == nil {
		return NotAvailable
	}
	for _, member := range c.Crew {
		if member.Job == directorJob && member.Name != "" {
			return member.Name
		}
	}
	return NotAvailable
}

// findCertification returns the first non-empty certification released in region
func findCertification(r *releaseDates, region string) string {
	if r == nil {
		return NotAvailable
	}
	for _, country := range r.Results {
		if !strings.EqualFold(country.ISO, region) {
			continue
		}
		for _, release := range country.ReleaseDates {
			if cert := strings.TrimSpace(release.Certification); cert != "" {
				return cert
			}
		}
	}
	return NotAvailable
}

// topCast joins the names of the first n billed cast members
func topCast(c *credits, n int) string {
	if c == nil {
		return NotAvailable
	}
	billed := c.Cast
	if len(billed) > n {
		billed = billed[:n]
	}
	names := make([]string, 0, len(billed))
	for _, member := range billed {
		if member.Name != "" {
			names = append(names, member.Name)
		}
	}
	return joinOrNotAvailable(names)
}

func joinGenres(genres []genre) string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return joinOrNotAvailable(names)
}

func joinCountries(countries []productionCountry) string {
	names := make([]string, 0, len(countries))
	for _, c := range countries {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	return joinOrNotAvailable(names)
}

func formatRuntime(minutes int) string {
	if minutes <= 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%d min", minutes)
}

// formatRating renders the average vote with one decimal place
func formatRating(average float64) string {
	if average <= 0 {
		return NotAvailable
	}
	return strconv.FormatFloat(average, 'f', 1, 64)
}

// formatVotes renders the vote count with the locale's thousands separator
func formatVotes(count int64, lang string) string {
	if count <= 0 {
		return NotAvailable
	}
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.AmericanEnglish
	}
	return message.NewPrinter(tag).Sprintf("%d", count)
}

func joinOrNotAvailable(names []string) string {
	if len(names) == 0 {
		return NotAvailable
	}
	return strings.Join(names, ", ")
}

func orNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}
