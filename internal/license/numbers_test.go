package license

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fixedSource struct{ v int }

func (f fixedSource) Intn(int) int { return f.v }

func TestGenerateNumber(t *testing.T) {
	t.Run("uses first three country characters uppercased", func(t *testing.T) {
		got := GenerateNumber(fixedSource{0}, "India", 2026)
		assert.Equal(t, "IND-2026-10000", got)
	})

	t.Run("falls back to GEN for short countries", func(t *testing.T) {
		got := GenerateNumber(fixedSource{0}, "UK", 2026)
		assert.Equal(t, "GEN-2026-10000", got)
	})

	t.Run("suffix stays within the five digit range", func(t *testing.T) {
		low := GenerateNumber(fixedSource{0}, "Brazil", 2026)
		high := GenerateNumber(fixedSource{89999}, "Brazil", 2026)
		assert.Equal(t, "BRA-2026-10000", low)
		assert.Equal(t, "BRA-2026-99999", high)
	})

	t.Run("every draw matches the wire pattern", func(t *testing.T) {
		src := rand.New(rand.NewSource(1))
		for i := 0; i < 500; i++ {
			got := GenerateNumber(src, "Germany", 2026)
			assert.Regexp(t, NumberPattern, got)
		}
	})

	t.Run("seeded source is deterministic", func(t *testing.T) {
		a := GenerateNumber(rand.New(rand.NewSource(7)), "France", 2026)
		b := GenerateNumber(rand.New(rand.NewSource(7)), "France", 2026)
		assert.Equal(t, a, b)
	})
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	late := time.Date(2026, 3, 15, 23, 30, 0, 0, loc)

	got := DateOf(late)
	assert.Equal(t, "2026-03-16", got.Format("2006-01-02"))
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, time.UTC, got.Location())
}
