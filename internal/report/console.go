// Package report renders an assembled analysis for human consumption.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/bobmcallan/stockscope/internal/models"
)

// ANSI escape sequences used by the console renderer.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// ConsoleWriter renders analysis results as a colored terminal report.
// Set Color to false for plain output (pipes, logs).
type ConsoleWriter struct {
	Out   io.Writer
	Color bool
}

func NewConsoleWriter(out io.Writer) *ConsoleWriter {
	return &ConsoleWriter{Out: out, Color: true}
}

func (w *ConsoleWriter) paint(color, text string) string {
	if !w.Color {
		return text
	}
	return color + text + colorReset
}

func (w *ConsoleWriter) signalColor(signal models.Signal) string {
	switch signal {
	case models.SignalGood:
		return colorGreen
	case models.SignalBad:
		return colorRed
	case models.SignalWarn:
		return colorYellow
	default:
		return colorDim
	}
}

// Write renders the full report: header, technical section, fundamentals
// table, headlines, position sizing, and the narrative when present.
func (w *ConsoleWriter) Write(result *models.AnalysisResult) {
	t := result.Technical

	w.line("")
	w.line(w.paint(colorBold+colorCyan, fmt.Sprintf("=== %s ===", result.Ticker)))
	w.line(w.paint(colorDim, fmt.Sprintf("Generated %s", result.GeneratedAt.Format("2006-01-02 15:04:05"))))
	w.line("")

	changeColor := colorGreen
	if t.ChangePct < 0 {
		changeColor = colorRed
	}
	w.line(fmt.Sprintf("Price: %s  %s",
		w.paint(colorBold, fmt.Sprintf("%.2f %s", t.Price, t.Currency)),
		w.paint(changeColor, fmt.Sprintf("%+.2f%%", t.ChangePct))))
	if t.Source != "" {
		w.line(w.paint(colorDim, fmt.Sprintf("Source: %s", t.Source)))
	}
	w.line(fmt.Sprintf("Volume: %d", t.Volume))
	w.line("")

	w.line(w.paint(colorBold, "Technical"))
	w.line(fmt.Sprintf("  RSI(14): %.1f  %s", t.RSI14, w.paint(w.signalColor(result.RSISignal), result.RSIStatus)))
	w.line(fmt.Sprintf("  SMA20: %.2f  SMA50: %.2f", t.SMA20, t.SMA50))
	w.line(fmt.Sprintf("  Trend: %s", w.paint(w.signalColor(result.TrendSignal), result.Trend)))
	w.line(fmt.Sprintf("  52w range: %.2f - %.2f", t.Low52Week, t.High52Week))
	if result.HasRangePosition {
		w.line(fmt.Sprintf("  Position in range: %.1f%%", result.RangePosition))
	}
	w.line("")

	if f := result.Fundamentals; f != nil {
		w.line(w.paint(colorBold, "Fundamentals"))
		ratingColor := colorYellow
		switch f.Rating {
		case models.RatingExcellent:
			ratingColor = colorGreen
		case models.RatingWeak:
			ratingColor = colorRed
		}
		w.line(fmt.Sprintf("  Score: %d/100  %s", f.Score, w.paint(ratingColor, string(f.Rating))))
		if f.Source != "" {
			w.line(w.paint(colorDim, fmt.Sprintf("  Source: %s", f.Source)))
		}
		for _, m := range f.Metrics {
			w.line(fmt.Sprintf("  %-26s %10s  %s", m.Name, m.Value, w.paint(w.signalColor(m.Signal), m.Assessment)))
		}
		if len(f.Metrics) == 0 {
			w.line(w.paint(colorDim, "  No fundamentals coverage for this ticker"))
		}
		w.line("")
	}

	if len(result.News) > 0 {
		w.line(w.paint(colorBold, "Recent headlines"))
		for _, item := range result.News {
			w.line(fmt.Sprintf("  %s  %s %s",
				w.paint(colorDim, item.PublishedAt.Format("Jan 02 15:04")),
				item.Headline,
				w.paint(colorDim, fmt.Sprintf("(%s)", item.Source))))
		}
		w.line("")
	}

	if result.Capital > 0 {
		w.line(w.paint(colorBold, "Position"))
		w.line(fmt.Sprintf("  Capital %.2f buys %.4f shares at %.2f", result.Capital, result.Shares, t.Price))
		w.line("")
	}

	if result.Narrative != "" {
		w.line(w.paint(colorBold, "Analysis"))
		for _, para := range strings.Split(StripMarkdown(result.Narrative), "\n") {
			w.line("  " + para)
		}
		w.line("")
	}
}

func (w *ConsoleWriter) line(text string) {
	fmt.Fprintln(w.Out, text)
}
