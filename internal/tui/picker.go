package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/verte-zerg/typexam/internal/exercise"
)

// NewPicker builds a select form over the catalogue. The chosen key is
// written to selected.
func NewPicker(selected *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(exercise.Keys()))
	for _, category := range exercise.Categories() {
		for _, ex := range exercise.All() {
			if ex.Category != category {
				continue
			}
			label := fmt.Sprintf("%s · %s (%s)", category, ex.Title, formatDuration(ex.Duration))
			options = append(options, huh.NewOption(label, ex.Key))
		}
	}
	if *selected == "" {
		*selected = exercise.FinalExamKey
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an exercise").
				Description("Each test starts on the first keystroke.").
				Options(options...).
				Value(selected),
		),
	)
}

// PickExercise runs the picker in the terminal.
func PickExercise() (exercise.Exercise, error) {
	var key string
	if err := NewPicker(&key).Run(); err != nil {
		return exercise.Exercise{}, err
	}
	return exercise.Lookup(key)
}
