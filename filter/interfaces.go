package filter

import (
	"github.com/s0up4200/flickhunt/tmdb"
)

// Filter decides whether a movie summary should be kept
type Filter interface {
	// Match reports whether movie satisfies the filter
	Match(movie tmdb.Summary) (bool, error)

	// Expression returns the source expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	Compile(expression string) (Filter, error)
}
