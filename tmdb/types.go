package tmdb

// NotAvailable is substituted for any attribute the provider did not supply
const NotAvailable = "N/A"

// Placeholder images used when a record has no poster or backdrop path
const (
	PlaceholderPoster       = "https://via.placeholder.com/300x450.png?text=No+Image"
	PlaceholderDetailPoster = "https://via.placeholder.com/400x600.png?text=No+Image"
)

// Summary is the normalized form of one search or listing result
type Summary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Year      string `json:"year"`
	PosterURL string `json:"poster_url"`

	Overview    string  `json:"overview,omitempty"`
	VoteAverage float64 `json:"vote_average"`
	Popularity  float64 `json:"popularity"`
}

// Detail is the normalized form of a single movie lookup
type Detail struct {
	Summary

	BackdropURL string `json:"backdrop_url"`
	IMDbID      string `json:"imdb_id,omitempty"`
	Plot        string `json:"plot"`
	Rated       string `json:"rated"`
	Runtime     string `json:"runtime"`
	Genre       string `json:"genre"`
	Director    string `json:"director"`
	Cast        string `json:"cast"`
	Released    string `json:"released"`
	Language    string `json:"language"`
	Country     string `json:"country"`
	Rating      string `json:"rating"`
	Votes       string `json:"votes"`
}

// DetailResult pairs a requested identifier with its lookup outcome
type DetailResult struct {
	ID     string
	Detail *Detail
	Err    error
}

// envelope carries TMDB's failure fields, present on error responses
type envelope struct {
	Success       *bool  `json:"success,omitempty"`
	StatusCode    int    `json:"status_code,omitempty"`
	StatusMessage string `json:"status_message,omitempty"`
}

// failed reports whether the body declared a failure
func (e envelope) failed() bool {
	return e.Success != nil && !*e.Success
}

// movieResult is one entry of a search or listing page
type movieResult struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	Popularity  float64 `json:"popularity"`
}

// pageResponse is the paginated envelope of search and listing endpoints
type pageResponse struct {
	envelope
	Page         int           `json:"page"`
	Results      []movieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

type genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type productionCountry struct {
	ISO  string `json:"iso_3166_1"`
	Name string `json:"name"`
}

type castMember struct {
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

type crewMember struct {
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

type credits struct {
	Cast []castMember `json:"cast"`
	Crew []crewMember `json:"crew"`
}

type releaseDate struct {
	Certification string `json:"certification"`
	ReleaseDate   string `json:"release_date"`
	Type          int    `json:"type"`
}

type countryReleases struct {
	ISO          string        `json:"iso_3166_1"`
	ReleaseDates []releaseDate `json:"release_dates"`
}

type releaseDates struct {
	Results []countryReleases `json:"results"`
}

// movieDetails is the response of /movie/{id} with credits and release_dates appended
type movieDetails struct {
	envelope
	ID                  int64               `json:"id"`
	IMDbID              string              `json:"imdb_id"`
	Title               string              `json:"title"`
	Overview            string              `json:"overview"`
	ReleaseDate         string              `json:"release_date"`
	Runtime             int                 `json:"runtime"`
	PosterPath          string              `json:"poster_path"`
	BackdropPath        string              `json:"backdrop_path"`
	OriginalLanguage    string              `json:"original_language"`
	VoteAverage         float64             `json:"vote_average"`
	VoteCount           int64               `json:"vote_count"`
	Popularity          float64             `json:"popularity"`
	Genres              []genre             `json:"genres"`
	ProductionCountries []productionCountry `json:"production_countries"`
	Credits             *credits            `json:"credits"`
	ReleaseDates        *releaseDates       `json:"release_dates"`
}
