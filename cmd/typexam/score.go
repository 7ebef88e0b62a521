package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typexam/internal/clock"
	"github.com/verte-zerg/typexam/internal/config"
	"github.com/verte-zerg/typexam/internal/engine"
	"github.com/verte-zerg/typexam/internal/exercise"
	"github.com/verte-zerg/typexam/internal/generator"
	"github.com/verte-zerg/typexam/internal/input"
	"github.com/verte-zerg/typexam/internal/logging"
	"github.com/verte-zerg/typexam/internal/model"
	"github.com/verte-zerg/typexam/internal/store"
)

var (
	scoreExercise string
	scoreText     string
	scoreSeed     int64
	scoreDuration int
	scoreMode     string
	scoreUser     string
	scoreJSON     bool
	scoreNoExpire bool
	scoreSave     bool
)

// replayEpoch anchors key log offsets on the manual clock.
var replayEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

type keyEvent struct {
	offset time.Duration
	key    string
}

type scoreOutput struct {
	SessionID    string  `json:"session_id,omitempty"`
	Exercise     string  `json:"exercise"`
	Mode         string  `json:"mode"`
	WPM          float64 `json:"wpm"`
	Accuracy     float64 `json:"accuracy"`
	TrueAccuracy float64 `json:"true_accuracy"`
	ElapsedMs    int64   `json:"elapsed_ms"`
	CorrectWords int     `json:"correct_words"`
	Passed       *bool   `json:"passed,omitempty"`
}

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score <keylog>",
		Short: "Score a recorded key log without the TUI",
		Long: "Replays a key log of \"<offset-ms> <key>\" lines against an exercise.\n" +
			"Use - to read the log from stdin.",
		Args: cobra.ExactArgs(1),
		RunE: runScoreCmd,
	}
	cmd.Flags().StringVarP(&scoreExercise, "exercise", "e", exercise.FinalExamKey, "exercise key")
	cmd.Flags().StringVar(&scoreText, "text", "", "file with the target text (overrides the exercise words)")
	cmd.Flags().Int64Var(&scoreSeed, "seed", 1, "generator seed for exercise words")
	cmd.Flags().IntVar(&scoreDuration, "duration", 0, "time budget in seconds (0: exercise default)")
	cmd.Flags().StringVar(&scoreMode, "mode", "", "normal or accuracy-challenge (default: exercise mode)")
	cmd.Flags().StringVar(&scoreUser, "user", "", "user name stored with --save")
	cmd.Flags().BoolVar(&scoreJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&scoreNoExpire, "no-expire", false, "finalize at the last event instead of running out the clock")
	cmd.Flags().BoolVar(&scoreSave, "save", false, "store the result in the history database")
	return cmd
}

func runScoreCmd(cmd *cobra.Command, args []string) error {
	ex, err := exercise.Lookup(scoreExercise)
	if err != nil {
		return fmt.Errorf("--exercise: %w", err)
	}
	mode, err := resolveMode(scoreMode, ex)
	if err != nil {
		return err
	}
	if scoreDuration < 0 {
		return fmt.Errorf("--duration must be >= 0")
	}
	duration := ex.Duration
	if scoreDuration > 0 {
		duration = time.Duration(scoreDuration) * time.Second
	}

	words, err := scoreWords(ex)
	if err != nil {
		return err
	}
	events, err := readKeyLog(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	rec := replay(events, words, duration, mode, !scoreNoExpire)
	rec.Exercise = ex.Key
	rec.Passed = ex.Passed(rec.Result)
	rec.User = scoreUser

	if scoreSave {
		if err := saveRecord(&rec); err != nil {
			return err
		}
	}
	return writeScore(cmd.OutOrStdout(), rec, ex.Graded(), scoreJSON)
}

func scoreWords(ex exercise.Exercise) ([]string, error) {
	if scoreText == "" {
		return ex.Words(generator.NewSeeded(scoreSeed), nil), nil
	}
	data, err := os.ReadFile(scoreText)
	if err != nil {
		return nil, fmt.Errorf("failed to read --text: %w", err)
	}
	return strings.Fields(string(data)), nil
}

func readKeyLog(path string, stdin io.Reader) ([]keyEvent, error) {
	if path == "-" {
		return parseKeyLog(stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open key log: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only key log.
			_ = cerr
		}
	}()
	return parseKeyLog(file)
}

// parseKeyLog reads "<offset-ms> <key>" lines. Offsets must not decrease.
func parseKeyLog(r io.Reader) ([]keyEvent, error) {
	var events []keyEvent
	var last time.Duration
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("key log line %d: expected \"<offset-ms> <key>\"", lineNo)
		}
		ms, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("key log line %d: invalid offset %q", lineNo, fields[0])
		}
		offset := time.Duration(ms) * time.Millisecond
		if offset < last {
			return nil, fmt.Errorf("key log line %d: offset goes backwards", lineNo)
		}
		last = offset
		events = append(events, keyEvent{offset: offset, key: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read key log: %w", err)
	}
	return events, nil
}

// replay feeds events through the adapter and engine on a manual clock.
// With expire set the clock then runs out the remaining budget.
func replay(events []keyEvent, words []string, duration time.Duration, mode engine.Mode, expire bool) model.SessionRecord {
	clk := clock.NewManual(replayEpoch)
	eng := engine.New(words, duration, mode, engine.WithClock(clk))
	adapter := input.NewAdapter()

	for _, ev := range events {
		clk.Set(replayEpoch.Add(ev.offset))
		eng.Tick(clk.Now())
		if eng.Status() == engine.StatusFinished {
			break
		}
		if e, ok := adapter.Key(ev.key); ok {
			eng.ProcessKey(e)
		}
	}
	if expire && eng.Status() == engine.StatusRunning {
		eng.Tick(eng.StartedAt().Add(duration))
	}
	res := eng.Finalize()

	startedAt := eng.StartedAt()
	if startedAt.IsZero() {
		startedAt = replayEpoch
	}
	return model.SessionRecord{
		Mode:      mode.String(),
		StartedAt: startedAt,
		EndedAt:   startedAt.Add(res.Elapsed),
		Duration:  duration,
		Result:    res,
	}
}

func saveRecord(rec *model.SessionRecord) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	if rec.User == "" {
		rec.User = env.User
	}
	rec.SessionID = uuid.NewString()
	// Replay timestamps sit on replayEpoch; store them at wall time so the
	// result orders with live sessions.
	rec.EndedAt = time.Now()
	rec.StartedAt = rec.EndedAt.Add(-rec.Result.Elapsed)
	st, err := store.Open(env.DatabasePath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	if _, err := st.InsertResult(context.Background(), *rec); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	logging.Logger.Info("replayed result saved", "session_id", rec.SessionID, "exercise", rec.Exercise)
	return nil
}

func writeScore(w io.Writer, rec model.SessionRecord, graded, asJSON bool) error {
	r := rec.Result
	if asJSON {
		out := scoreOutput{
			SessionID:    rec.SessionID,
			Exercise:     rec.Exercise,
			Mode:         rec.Mode,
			WPM:          r.WPM,
			Accuracy:     r.Accuracy,
			TrueAccuracy: r.TrueAccuracy,
			ElapsedMs:    r.Elapsed.Milliseconds(),
			CorrectWords: r.CorrectWords,
		}
		if graded {
			passed := rec.Passed
			out.Passed = &passed
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	lines := []string{
		fmt.Sprintf("Exercise: %s (%s)", rec.Exercise, rec.Mode),
		fmt.Sprintf("WPM: %.2f", r.WPM),
		fmt.Sprintf("Accuracy: %.2f%%", r.Accuracy),
		fmt.Sprintf("True Accuracy: %.2f%%", r.TrueAccuracy),
		fmt.Sprintf("Correct Words: %d", r.CorrectWords),
		fmt.Sprintf("Time: %.1fs", r.ElapsedSeconds()),
	}
	if graded {
		verdict := "FAIL"
		if rec.Passed {
			verdict = "PASS"
		}
		lines = append(lines, "Result: "+verdict)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
