package parser

import "strconv"

// The lexer normalizes every integer literal to plain decimal, whatever
// base or underscores it was written with, so base 10 is all we need here.
func parseInt64(literal string) (int64, error) {
	return strconv.ParseInt(literal, 10, 64)
}

func parseFloat64(literal string) (float64, error) {
	return strconv.ParseFloat(literal, 64)
}
