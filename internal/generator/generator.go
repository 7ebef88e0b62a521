// Package generator builds typing text sequences.
package generator

import (
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// Generator produces randomized typing text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Words selects count words uniformly from words.
func (g *Generator) Words(words []string, count int) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, words[g.rnd.Intn(len(words))])
	}
	return result
}

// InjectNumbers overwrites about ratio of the words with picks from numbers.
// Positions are drawn with replacement, so fewer words may change.
func (g *Generator) InjectNumbers(words []string, ratio float64, numbers []string) []string {
	if len(words) == 0 || len(numbers) == 0 || ratio <= 0 {
		return words
	}
	n := int(float64(len(words)) * ratio)
	for i := 0; i < n; i++ {
		idx := g.rnd.Intn(len(words))
		words[idx] = numbers[g.rnd.Intn(len(numbers))]
	}
	return words
}

// Phrase picks one phrase and splits it on whitespace.
func (g *Generator) Phrase(phrases []string) []string {
	if len(phrases) == 0 {
		return nil
	}
	return strings.Fields(phrases[g.rnd.Intn(len(phrases))])
}

// Decorate applies capitalization and trailing punctuation rules in place.
func (g *Generator) Decorate(words []string, capsPct, punctPct float64, punctSet []rune) []string {
	for i, word := range words {
		word = applyCaps(g.rnd, word, capsPct)
		word = applyPunct(g.rnd, word, punctPct, punctSet)
		words[i] = word
	}
	return words
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}
