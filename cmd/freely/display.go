// ABOUTME: Shared output and parsing helpers for freely commands.
// ABOUTME: Renders cards and bird readings with fatih/color.
package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/freely/internal/bird"
	"github.com/harperreed/freely/internal/models"
	"github.com/harperreed/freely/internal/progress"
)

func printWord(w io.Writer, word models.Word) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Fprintf(w, "%s", word.Word)
	if word.Pronunciation != "" {
		faint.Fprintf(w, "  %s", word.Pronunciation)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", word.Meaning)
	if word.Example != "" {
		faint.Fprintf(w, "  e.g. %s\n", word.Example)
	}
}

func altitudeColor(altitude float64) *color.Color {
	switch bird.AltitudeBand(altitude) {
	case "grounded":
		return color.New(color.FgRed)
	case "low":
		return color.New(color.FgYellow)
	case "mid":
		return color.New(color.FgHiYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func animationIcon(state models.AnimationState) string {
	switch state {
	case models.AnimationGlide:
		return "~>"
	case models.AnimationHop:
		return "._."
	default:
		return "^v^"
	}
}

// printReading renders a one-line bird summary.
func printReading(w io.Writer, r bird.Reading) {
	faint := color.New(color.Faint)
	fmt.Fprintf(w, "%s %s  %s %s  %s %s  %s %s\n",
		animationIcon(r.Animation),
		padRight(string(r.Animation), 5),
		faint.Sprint("distance"), padRight(bird.FormatDistance(r.Distance), 7),
		faint.Sprint("altitude"), altitudeColor(r.Altitude).Sprintf("%-3.0f", r.Altitude),
		faint.Sprint("freedom"), bird.FreedomLevel(r.Freedom))
}

func printProgress(w io.Writer, p models.UserProgress) {
	faint := color.New(color.Faint)
	fmt.Fprintf(w, "%s %d (%s %d, %s %d)  %s %.0f%%  %s %d (best %d)\n",
		faint.Sprint("answered"), p.TotalWordsLearned,
		color.GreenString("known"), p.CorrectAnswers,
		color.RedString("missed"), p.IncorrectAnswers,
		faint.Sprint("accuracy"), progress.Accuracy(p)*100,
		faint.Sprint("streak"), p.CurrentStreak, p.LongestStreak)
}

func warnPersist(w io.Writer, err error) {
	if err != nil {
		color.New(color.FgYellow).Fprintf(w, "warning: progress not saved: %v\n", err)
	}
}

// parseAnswer accepts yes/no in a few spellings.
func parseAnswer(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "known", "k", "true":
		return true, nil
	case "n", "no", "unknown", "u", "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid answer %q (use yes or no)", s)
	}
}

// parseTime parses a user-supplied timestamp in local time.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time format: %s (use YYYY-MM-DD or YYYY-MM-DD HH:MM)", s)
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
