// All this does is contain in one place the constants controlling which bits
// of the inner workings of the lexer/parser/evaluator are displayed for
// debugging purposes. In a release they must all be set to false.
package settings

const (
	SHOW_LEXER  = false // Dumps the token stream before parsing.
	SHOW_PARSER = false // Dumps the bracketed form of each parsed statement.
	SHOW_CACHES = false // Reports inline-cache hits and misses at dispatch time.

	SHOW_TESTS = true // Says whether the tests should say what is being tested, useful if one of them crashes and we don't know which.
)
