// Package display projects engine state into styled, wrapped terminal text.
package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typexam/internal/engine"
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	extraStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true)
	missedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Background(lipgloss.Color("#4A2020"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = pendingStyle.Underline(true)
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// Render projects the snapshot and wraps it at width columns. A width of zero
// or less disables wrapping.
func Render(snap engine.Snapshot, width int) string {
	return wrapStyledRunes(project(snap), width)
}

func project(snap engine.Snapshot) []styledRune {
	total := 0
	for _, w := range snap.Words {
		total += len(w) + 1
	}
	out := make([]styledRune, 0, total)
	active := snap.Status != engine.StatusFinished
	bufLen := len([]rune(snap.Buffer))

	cursorAfter := false
	for wi, word := range snap.Words {
		if wi > 0 {
			style := pendingStyle
			if cursorAfter {
				style = cursorStyle
			}
			out = append(out, styledSpace(style))
			cursorAfter = false
		}
		isCurrent := active && wi == snap.WordIndex
		for ci, ann := range word {
			style := styleFor(ann.State)
			if isCurrent && ann.State == engine.CharPending {
				style = currentWordStyle
			}
			if isCurrent && ci == bufLen {
				style = style.Underline(true)
			}
			out = append(out, styledRune{
				s:     style.Render(string(ann.Char)),
				width: runewidth.RuneWidth(ann.Char),
			})
		}
		// Past the end of the word the cursor sits on the following space.
		cursorAfter = isCurrent && bufLen >= len(word)
	}
	if cursorAfter {
		out = append(out, styledSpace(cursorStyle))
	}
	return out
}

func styledSpace(style lipgloss.Style) styledRune {
	return styledRune{s: style.Render(" "), width: 1, isSpace: true}
}

func styleFor(state engine.CharState) lipgloss.Style {
	switch state {
	case engine.CharCorrect:
		return correctStyle
	case engine.CharIncorrect:
		return incorrectStyle
	case engine.CharExtra:
		return extraStyle
	case engine.CharMissed:
		return missedStyle
	default:
		return pendingStyle
	}
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
