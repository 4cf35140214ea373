// Package drivers maps driver surnames to their three-letter timing codes.
package drivers

import (
	"errors"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// ErrDriverNotFound is returned when a surname is not in the code table
var ErrDriverNotFound = errors.New("driver not found")

var codes = map[string]string{
	"verstappen": "VER",
	"perez":      "PER",
	"hamilton":   "HAM",
	"russell":    "RUS",
	"leclerc":    "LEC",
	"sainz":      "SAI",
	"norris":     "NOR",
	"piastri":    "PIA",
	"alonso":     "ALO",
	"stroll":     "STR",
	"ocon":       "OCO",
	"gasly":      "GAS",
	"bottas":     "BOT",
	"zhou":       "ZHO",
	"magnussen":  "MAG",
	"hulkenberg": "HUL",
	"tsunoda":    "TSU",
	"ricciardo":  "RIC",
	"albon":      "ALB",
	"sargeant":   "SAR",
}

// Resolve returns the code for a surname. Matching is case-insensitive and exact.
func Resolve(name string) (string, error) {
	code, ok := codes[strings.ToLower(name)]
	if !ok {
		return "", ErrDriverNotFound
	}
	return code, nil
}

// Codes returns a copy of the surname to code table
func Codes() map[string]string {
	return lo.Assign(codes)
}

// Surnames returns the known surnames in alphabetical order
func Surnames() []string {
	names := lo.Keys(codes)
	sort.Strings(names)
	return names
}
