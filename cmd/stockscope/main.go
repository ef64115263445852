package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bobmcallan/stockscope/internal/app"
	"github.com/bobmcallan/stockscope/internal/common"
	"github.com/bobmcallan/stockscope/internal/report"
)

func main() {
	configPath := flag.String("config", "", "path to stockscope.toml")
	capital := flag.String("capital", "", "investable capital (e.g. 1000 or 1000,50)")
	noColor := flag.Bool("no-color", false, "disable ANSI colors in the report")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(common.GetFullVersion())
		return
	}

	a, err := app.NewApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	printChecklist(a)

	ticker := strings.TrimSpace(flag.Arg(0))
	capitalInput := *capital

	// Prompt for whatever was not supplied on the command line.
	if ticker == "" || capitalInput == "" {
		reader := bufio.NewReader(os.Stdin)
		if ticker == "" {
			ticker = prompt(reader, "Ticker: ")
		}
		if capitalInput == "" {
			capitalInput = prompt(reader, "Capital: ")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := a.AnalysisService.Analyze(ctx, ticker, capitalInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}

	writer := report.NewConsoleWriter(os.Stdout)
	writer.Color = !*noColor
	writer.Write(result)
}

// printChecklist shows which providers are configured so a missing key
// is obvious before the first degraded report.
func printChecklist(a *app.App) {
	labels := []struct{ key, name string }{
		{"tradier", "Tradier (real-time quotes)"},
		{"finnhub", "Finnhub (candles, fundamentals, news)"},
		{"alphavantage", "Alpha Vantage (backup SMA)"},
		{"fmp", "FMP (backup fundamentals)"},
		{"newsapi", "NewsAPI (headlines)"},
		{"claude", "Claude (AI narrative)"},
	}

	providers := a.ConfiguredProviders()
	fmt.Fprintln(os.Stderr, "Providers:")
	for _, l := range labels {
		mark := "missing"
		if providers[l.key] {
			mark = "ok"
		}
		fmt.Fprintf(os.Stderr, "  [%-7s] %s\n", mark, l.name)
	}
	fmt.Fprintln(os.Stderr)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Fprint(os.Stderr, label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
