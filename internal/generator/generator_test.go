package generator

import (
	"strings"
	"testing"
	"unicode"
)

func TestWordsCountAndSource(t *testing.T) {
	g := NewSeeded(1)
	src := []string{"a", "b", "c"}
	words := g.Words(src, 50)
	if len(words) != 50 {
		t.Fatalf("expected 50 words, got %d", len(words))
	}
	for _, w := range words {
		if !strings.Contains("abc", w) {
			t.Fatalf("unexpected word %q", w)
		}
	}
	if got := g.Words(nil, 5); got != nil {
		t.Fatalf("expected nil for empty source, got %v", got)
	}
}

func TestInjectNumbers(t *testing.T) {
	g := NewSeeded(7)
	words := g.Words([]string{"word"}, 200)
	words = g.InjectNumbers(words, 0.1, []string{"42"})
	numbers := 0
	for _, w := range words {
		if w == "42" {
			numbers++
		}
	}
	if numbers == 0 || numbers > 20 {
		t.Fatalf("expected between 1 and 20 numbers, got %d", numbers)
	}
}

func TestPhraseSplitsOnWhitespace(t *testing.T) {
	g := NewSeeded(3)
	words := g.Phrase([]string{"The  dog\tbarks."})
	if strings.Join(words, "|") != "The|dog|barks." {
		t.Fatalf("unexpected phrase split: %q", words)
	}
	if g.Phrase(nil) != nil {
		t.Fatalf("expected nil phrase for empty input")
	}
}

func TestDecorateAlways(t *testing.T) {
	g := NewSeeded(5)
	words := g.Decorate([]string{"go", "run"}, 1, 1, []rune{'!'})
	for _, w := range words {
		r := []rune(w)
		if !unicode.IsUpper(r[0]) || r[len(r)-1] != '!' {
			t.Fatalf("expected capitalized word with punctuation, got %q", w)
		}
	}
}

func TestDecorateNever(t *testing.T) {
	g := NewSeeded(5)
	words := g.Decorate([]string{"go"}, 0, 0, []rune{'!'})
	if words[0] != "go" {
		t.Fatalf("expected unchanged word, got %q", words[0])
	}
}
