package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"skincare-client/internal/results"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

const barWidth = 20

func colorize(color, text string) string {
	if noColor {
		return text
	}
	return color + text + colorReset
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// progressBar renders percent as a fixed-width bar, e.g. "[#####-----]  50%".
func progressBar(percent int) string {
	percent = min(max(percent, 0), 100)
	filled := percent * barWidth / 100
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("#", filled), strings.Repeat("-", barWidth-filled), percent)
}

func scoreColor(score int) string {
	switch {
	case score >= 80:
		return colorGreen
	case score >= 70:
		return colorYellow
	default:
		return colorRed
	}
}

func printView(w io.Writer, v results.View) {
	fmt.Fprintf(w, "%s %s\n", colorize(colorBold, "Analysis"), v.AnalysisID)
	fmt.Fprintf(w, "Overall score: %s\n\n", colorize(scoreColor(v.OverallScore), fmt.Sprintf("%d", v.OverallScore)))
	for _, m := range v.Metrics {
		fmt.Fprintf(w, "  %-16s %s\n", m.Title, colorize(scoreColor(m.Score), fmt.Sprintf("%3d", m.Score)))
	}
	for _, title := range v.Locked {
		fmt.Fprintf(w, "  %-16s %s\n", title, colorize(colorCyan, "locked"))
	}
	if len(v.Routine) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, colorize(colorBold, "Routine"))
		for _, step := range v.Routine {
			fmt.Fprintf(w, "  %d. %s: %s\n", step.Step, step.Name, step.Instructions)
		}
	}
	if len(v.Products) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, colorize(colorBold, "Products"))
		for _, p := range v.Products {
			fmt.Fprintf(w, "  - %s\n", p.Name)
		}
	}
}
