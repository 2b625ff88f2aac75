package license

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

// NumberSource yields the random draws used for license-number suffixes.
// Injected so tests can force specific values or collisions; never a package
// global.
type NumberSource interface {
	Intn(n int) int
}

// NewRandomSource returns a time-seeded source for production wiring.
func NewRandomSource() NumberSource {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// fallbackPrefix stands in when the exporter's country has fewer than three
// characters.
const fallbackPrefix = "GEN"

// NumberPattern is the wire format of a license number. External consumers
// (the chat collaborator's free-text extraction) match against this exact
// pattern, so it must stay stable.
var NumberPattern = regexp.MustCompile(`^[A-Z]{2,4}-\d{4}-\d{4,5}$`)

// GenerateNumber draws a license number of the form PPP-YYYY-NNNNN: the first
// three characters of the country uppercased, the issue year, and a five
// digit suffix in [10000, 99999].
func GenerateNumber(src NumberSource, country string, year int) string {
	prefix := fallbackPrefix
	if runes := []rune(country); len(runes) >= 3 {
		prefix = strings.ToUpper(string(runes[:3]))
	}
	suffix := 10000 + src.Intn(90000)
	return fmt.Sprintf("%s-%d-%d", prefix, year, suffix)
}
