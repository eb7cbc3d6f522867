package filter

import (
	"maps"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/flickhunt/tmdb"
)

// DefaultCacheSize is the number of compiled programs kept by NewExprCompiler
const DefaultCacheSize = 100

// exprFilter implements Filter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*ExprCompiler)

// WithCache sets the compiled program cache size. Zero disables caching.
func WithCache(size int) ExprCompilerOption {
	return func(c *ExprCompiler) {
		c.cache = nil
		if size > 0 {
			c.cache = newLRUCache[Filter](size)
		}
	}
}

// WithCustomFunctions adds helper functions that do not depend on the movie
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *ExprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// ExprCompiler implements Compiler for expr-based filters
type ExprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache[Filter]
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) *ExprCompiler {
	c := &ExprCompiler{
		helperFuncs: staticHelpers(),
		cache:       newLRUCache[Filter](DefaultCacheSize),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compile compiles an expression into an executable filter
func (c *ExprCompiler) Compile(expression string) (Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Type-check against a zero movie so field typos fail here, not per movie
	env := environment(c.helperFuncs, tmdb.Summary{})
	program, err := expr.Compile(expression, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &exprFilter{expression: expression, program: program, helpers: maps.Clone(c.helperFuncs)}

	if c.cache != nil {
		c.cache.Put(expression, f)
	}

	return f, nil
}

// Cached returns the number of cached programs
func (c *ExprCompiler) Cached() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

// environment builds the evaluation environment for one movie
func environment(helpers map[string]any, movie tmdb.Summary) map[string]any {
	env := make(map[string]any, len(helpers)+2)
	maps.Copy(env, helpers)
	env["Movie"] = movie
	env["year"] = yearFunc(movie.Year)
	return env
}

// Match evaluates the filter against a movie
func (f *exprFilter) Match(movie tmdb.Summary) (bool, error) {
	result, err := expr.Run(f.program, environment(f.helpers, movie))
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, MovieID: movie.ID, Err: err}
	}

	// AsBool guarantees the result type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// staticHelpers returns the helper functions that do not depend on the movie
func staticHelpers() map[string]any {
	return map[string]any{
		"includes": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"hasPrefix": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}

// yearFunc returns the release year as a number, 0 when unknown
func yearFunc(year string) func() int {
	n, err := strconv.Atoi(year)
	if err != nil {
		n = 0
	}
	return func() int { return n }
}
