package types

import (
	"regexp"
	"strings"
)

var (
	matchFirstCap = regexp.MustCompile("(.)([A-Z][a-z]+)")
	matchAllCap   = regexp.MustCompile("([a-z0-9])([A-Z])")
	nonAlphaNum   = regexp.MustCompile(`[^a-z0-9]+`)
)

// ToSnakeCase converts a string to snake_case.
// Used for output file names and env-var key derivation.
func ToSnakeCase(input string) string {
	snake := matchFirstCap.ReplaceAllString(input, "${1}_${2}")
	snake = matchAllCap.ReplaceAllString(snake, "${1}_${2}")
	snake = strings.ToLower(snake)
	snake = nonAlphaNum.ReplaceAllString(snake, "_")
	return strings.Trim(snake, "_")
}
