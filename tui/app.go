// Package tui is the terminal front: a search box that is always focused, the
// trending or search result list below it, and a detail pane for one movie.
// It drives the same orchestrators as the browser front.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/s0up4200/flickhunt/discover"
	"github.com/s0up4200/flickhunt/tmdb"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// rows taken by the brand, the input box and the help line
	chromeHeight = 9
)

// searchStateMsg carries a new search view state into the update loop
type searchStateMsg discover.SearchState

// detailStateMsg carries a new detail view state into the update loop
type detailStateMsg discover.DetailState

// mailbox holds at most one pending state; a newer state replaces an unread one
type mailbox[T any] struct {
	ch   chan T
	done <-chan struct{}
}

func newMailbox[T any](done <-chan struct{}) *mailbox[T] {
	return &mailbox[T]{ch: make(chan T, 1), done: done}
}

// put never blocks, it is called from orchestrator goroutines
func (m *mailbox[T]) put(v T) {
	for {
		select {
		case m.ch <- v:
			return
		default:
		}
		select {
		case <-m.ch:
		default:
		}
	}
}

// next waits for the next state or for shutdown. Shutdown wins over a pending state.
func (m *mailbox[T]) next() (T, bool) {
	var zero T
	select {
	case <-m.done:
		return zero, false
	default:
	}

	select {
	case v := <-m.ch:
		return v, true
	case <-m.done:
		return zero, false
	}
}

// App is the bubbletea model of the terminal front
type App struct {
	search   *discover.Search
	detail   *discover.Detail
	searches *mailbox[discover.SearchState]
	details  *mailbox[discover.DetailState]
	done     chan struct{}
	stop     *sync.Once

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	searchState discover.SearchState
	detailState discover.DetailState
	showDetail  bool
	cursor      int
	width       int
	height      int
}

// New creates the terminal front. Nothing is fetched until Init runs.
func New(api tmdb.API, logger zerolog.Logger, debounce time.Duration) App {
	done := make(chan struct{})
	searches := newMailbox[discover.SearchState](done)
	details := newMailbox[discover.DetailState](done)

	ti := textinput.New()
	ti.Placeholder = "Search for a movie..."
	ti.CharLimit = 200
	ti.Width = 50
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	a := App{
		searches: searches,
		details:  details,
		done:     done,
		stop:     &sync.Once{},
		input:    ti,
		spinner:  sp,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
		width:    defaultWidth,
		height:   defaultHeight,
	}

	a.search = discover.NewSearch(api, logger,
		discover.WithDebounce(debounce),
		discover.WithSearchListener(searches.put),
	)
	a.detail = discover.NewDetail(api, logger,
		discover.WithDetailListener(details.put),
	)
	a.searchState = a.search.State()

	return a
}

// Init starts the trending load and the listeners
func (a App) Init() tea.Cmd {
	a.search.Start()

	return tea.Batch(
		textinput.Blink,
		a.spinner.Tick,
		a.waitForSearch(),
		a.waitForDetail(),
	)
}

func (a App) waitForSearch() tea.Cmd {
	return func() tea.Msg {
		state, ok := a.searches.next()
		if !ok {
			return nil
		}
		return searchStateMsg(state)
	}
}

func (a App) waitForDetail() tea.Cmd {
	return func() tea.Msg {
		state, ok := a.details.next()
		if !ok {
			return nil
		}
		return detailStateMsg(state)
	}
}

// Close stops both orchestrators and releases the listeners
func (a App) Close() {
	a.stop.Do(func() {
		a.search.Close()
		a.detail.Close()
		close(a.done)
	})
}

// Update handles key presses and state changes
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.Width = msg.Width
		a.viewport.Height = max(msg.Height-chromeHeight, 3)
		a.refreshDetail()
		return a, nil

	case searchStateMsg:
		a.setSearchState(discover.SearchState(msg))
		return a, a.waitForSearch()

	case detailStateMsg:
		a.detailState = discover.DetailState(msg)
		a.refreshDetail()
		return a, a.waitForDetail()

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.Close()
			return a, tea.Quit
		}
		if a.showDetail {
			return a.updateDetail(msg)
		}
		return a.updateList(msg)
	}

	return a, nil
}

func (a App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "down":
		if a.cursor < len(a.searchState.Movies)-1 {
			a.cursor++
		}
		return a, nil
	case "enter":
		if a.cursor < len(a.searchState.Movies) {
			a.openDetail(a.searchState.Movies[a.cursor].ID)
		}
		return a, nil
	case "esc":
		if a.input.Value() != "" {
			a.input.SetValue("")
			a.setQuery("")
		}
		return a, nil
	}

	var cmd tea.Cmd
	before := a.input.Value()
	a.input, cmd = a.input.Update(msg)
	if a.input.Value() != before {
		a.setQuery(a.input.Value())
	}
	return a, cmd
}

func (a App) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		a.showDetail = false
		return a, nil
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a *App) setQuery(text string) {
	a.search.SetQuery(text)
	a.setSearchState(a.search.State())
}

func (a *App) setSearchState(state discover.SearchState) {
	if state.View != a.searchState.View || state.Query != a.searchState.Query {
		a.cursor = 0
	}
	a.searchState = state
	if a.cursor >= len(state.Movies) {
		a.cursor = max(len(state.Movies)-1, 0)
	}
}

func (a *App) openDetail(id string) {
	a.showDetail = true
	a.detail.Load(id)
	a.detailState = a.detail.State()
	a.viewport.GotoTop()
	a.refreshDetail()
}

func (a *App) refreshDetail() {
	if a.detailState.View == discover.Ready && a.detailState.Movie != nil {
		a.viewport.SetContent(renderDetail(a.detailState.Movie, a.width))
	}
}

// View renders the screen
func (a App) View() string {
	var b strings.Builder

	b.WriteString(brandStyle.Render("FlickHunt"))
	b.WriteString("\n")
	b.WriteString(taglineStyle.Render("Explore and discover your next favorite movie."))
	b.WriteString("\n")
	b.WriteString(inputStyle.Render(a.input.View()))
	b.WriteString("\n")

	if a.showDetail {
		b.WriteString(a.detailView())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • ctrl+c quit"))
	} else {
		b.WriteString(a.listView())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ move • enter details • esc clear • ctrl+c quit"))
	}

	return b.String()
}

func (a App) listView() string {
	state := a.searchState

	switch state.View {
	case discover.TrendingLoading, discover.Searching:
		return statusStyle.Render(a.spinner.View() + " Loading...")
	case discover.TrendingError, discover.SearchError:
		return errorStyle.Render("Error: " + state.Message)
	case discover.TrendingEmpty, discover.NoResults:
		return statusStyle.Render(state.Message)
	}

	heading := "Search Results"
	if state.View == discover.Trending {
		heading = "Trending Movies"
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(heading))
	b.WriteString("\n")

	start, end := a.visibleRange(len(state.Movies))
	for i := start; i < end; i++ {
		movie := state.Movies[i]
		line := fmt.Sprintf("%s %s", movie.Title, yearStyle.Render("("+movie.Year+")"))
		if i == a.cursor {
			b.WriteString(selectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// visibleRange keeps the cursor on screen when the list is taller than the terminal
func (a App) visibleRange(n int) (int, int) {
	rows := max(a.height-chromeHeight-2, 1)
	if n <= rows {
		return 0, n
	}
	start := max(a.cursor-rows+1, 0)
	return start, min(start+rows, n)
}

func (a App) detailView() string {
	state := a.detailState

	switch state.View {
	case discover.Loading:
		return statusStyle.Render(a.spinner.View() + " Loading...")
	case discover.NotFound:
		return statusStyle.Render(state.Message)
	case discover.Error:
		return errorStyle.Render("Error: " + state.Message)
	}

	return a.viewport.View()
}

func renderDetail(d *tmdb.Detail, width int) string {
	wrap := lipgloss.NewStyle().Width(max(width-2, 20))

	field := func(label, value string) string {
		return labelStyle.Render(label+": ") + value
	}

	lines := []string{
		headingStyle.Render(fmt.Sprintf("%s (%s)", d.Title, d.Year)),
		fmt.Sprintf("%s • %s • %s", d.Rated, d.Runtime, d.Genre),
		"",
		labelStyle.Render("Plot"),
		wrap.Render(d.Plot),
		"",
		field("Director", d.Director),
		wrap.Render(field("Top Billed Cast", d.Cast)),
		field("Released", d.Released),
		field("Language", d.Language),
		field("Country", d.Country),
		"",
		field("TMDB Rating", fmt.Sprintf("%s/10 (%s votes)", d.Rating, d.Votes)),
		yearStyle.Render(d.PosterURL),
	}

	return strings.Join(lines, "\n")
}

// Run starts the terminal front and blocks until the user quits or ctx is done
func Run(ctx context.Context, api tmdb.API, logger zerolog.Logger, debounce time.Duration) error {
	app := New(api, logger, debounce)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("terminal ui failed: %w", err)
	}
	return nil
}
