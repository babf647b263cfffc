package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"hotcold/internal/classifier"
	"hotcold/internal/config"
	"hotcold/internal/interval"
	"hotcold/internal/provider"
	"hotcold/internal/scanner"
	"hotcold/internal/symbols"
	"hotcold/pkg/model"
)

// universeCacheTTL bounds how often watch mode re-fetches the exchange
// listing; the tradable universe changes rarely.
const universeCacheTTL = 10 * time.Minute

// highlightPasses is how many refreshes a mover stays flagged after its
// change drops back under the threshold.
const highlightPasses = 2

var (
	cfgFile        string
	symbolList     string
	topN           int
	workers        int
	timeout        time.Duration
	watch          bool
	refresh        time.Duration
	simpleMode     bool
	simpleInterval string
	spikeFilter    bool
	spikeThreshold float64
	trimRatio      float64
	format         string
	verbose        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hotcold [change%] [current-interval] [short-interval] [big-interval]",
		Short: "Volatility scanner for Binance USDT futures",
		Long: `hotcold scans all USDT perpetual pairs and ranks the symbols whose
current price broke out of its recent smoothed range.

A symbol is a booster when its current window high exceeds the smoothed
highs of both comparison windows, a loser for the symmetric low condition,
and neutral otherwise.

Examples:
  hotcold 2% 1m 15m 1h
  hotcold 5% 5m 1h 4h --watch
  hotcold --simple --interval 4h --top 10`,
		Args: cobra.MaximumNArgs(4),
		RunE: run,
	}

	// Flags
	rootCmd.Flags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.Flags().StringVar(&symbolList, "symbols", "", "comma-separated list of symbols to scan (default: all USDT pairs)")
	rootCmd.Flags().IntVar(&topN, "top", 5, "symbols to show per category")
	rootCmd.Flags().IntVar(&workers, "workers", 20, "max in-flight requests for the whole pass")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "per-pass timeout (0 = config value)")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "rescan continuously")
	rootCmd.Flags().DurationVar(&refresh, "refresh", 5*time.Second, "delay between passes in watch mode")
	rootCmd.Flags().BoolVar(&simpleMode, "simple", false, "single-window mode: compare last close against one window")
	rootCmd.Flags().StringVar(&simpleInterval, "interval", "", "window duration for --simple (e.g. 4h)")
	rootCmd.Flags().BoolVar(&spikeFilter, "spike", false, "drop symbols whose short window is a one-off spike")
	rootCmd.Flags().Float64Var(&spikeThreshold, "spike-threshold", 5.0, "spike rejection threshold percent")
	rootCmd.Flags().Float64Var(&trimRatio, "trim", 0.5, "top/bottom fraction for the smoothed extrema")
	rootCmd.Flags().StringVar(&format, "format", "table", "output format: table, json")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "show detailed output")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Positional arguments mirror the classic invocation:
	// hotcold 2% 1m 15m 1h
	if len(args) > 0 {
		threshold, err := parsePercent(args[0])
		if err != nil {
			return err
		}
		cfg.Filter.ChangeThreshold = threshold
	}
	if len(args) > 1 {
		cfg.Intervals.Current = args[1]
		cfg.Intervals.Simple = args[1]
	}
	if len(args) > 2 {
		cfg.Intervals.Short = args[2]
	}
	if len(args) > 3 {
		cfg.Intervals.Big = args[3]
	}

	// Override config with CLI flags
	if cmd.Flags().Changed("top") {
		cfg.Scanner.TopN = topN
	}
	if cmd.Flags().Changed("workers") {
		cfg.Scanner.Workers = workers
	}
	if timeout > 0 {
		cfg.Scanner.Timeout = timeout
	}
	if cmd.Flags().Changed("watch") {
		cfg.Scanner.Watch = watch
	}
	if cmd.Flags().Changed("refresh") {
		cfg.Scanner.Refresh = refresh
	}
	if cmd.Flags().Changed("simple") {
		cfg.Intervals.SimpleMode = simpleMode
	}
	if simpleInterval != "" {
		cfg.Intervals.Simple = simpleInterval
	}
	if cmd.Flags().Changed("spike") {
		cfg.Filter.SpikeFilter = spikeFilter
	}
	if cmd.Flags().Changed("spike-threshold") {
		cfg.Filter.SpikeThreshold = spikeThreshold
	}
	if cmd.Flags().Changed("trim") {
		cfg.Filter.TrimRatio = trimRatio
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	classifierCfg, err := buildClassifierConfig(cfg)
	if err != nil {
		return err
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted. Stopping scan...")
		cancel()
	}()

	binance := provider.NewBinanceProvider(cfg.API.BaseURL, cfg.API.RateLimit)
	prov := provider.NewCachingProvider(binance, universeCacheTTL)

	var explicit []string
	if symbolList != "" {
		explicit = strings.Split(symbolList, ",")
	}
	loader := symbols.NewLoader(prov)

	s := scanner.NewScanner(
		classifier.New(classifierCfg, prov),
		cfg.Scanner.Workers,
		cfg.Scanner.Timeout,
		cfg.Scanner.TopN,
	)

	tracker := scanner.NewTracker(cfg.Filter.ChangeThreshold, highlightPasses)

	render := func(result *model.ScanResult) {
		highlighted := tracker.Update(result.Selected)
		if format == "json" {
			outputJSON(result)
			return
		}
		outputTable(result, cfg, highlighted)
	}

	onEmpty := func() {
		fmt.Println("No symbols available to scan.")
	}

	universe := func(ctx context.Context) ([]string, error) {
		return loader.Load(ctx, explicit)
	}

	if verbose {
		fmt.Printf("Windows: current=%s short=%s big=%s simple=%v\n",
			cfg.Intervals.Current, cfg.Intervals.Short, cfg.Intervals.Big, cfg.Intervals.SimpleMode)
	}

	if !cfg.Scanner.Watch && format == "table" {
		s.SetProgressCallback(progressBar(os.Stdout))
	}

	loop := scanner.NewLoop(s, universe, render, onEmpty, cfg.Scanner.Watch, cfg.Scanner.Refresh)
	return loop.Run(ctx)
}

func buildClassifierConfig(cfg *config.Config) (classifier.Config, error) {
	out := classifier.Config{
		Simple:            cfg.Intervals.SimpleMode,
		TrimRatio:         cfg.Filter.TrimRatio,
		SpikeFilter:       cfg.Filter.SpikeFilter,
		SpikeThresholdPct: cfg.Filter.SpikeThreshold,
	}

	var err error
	if cfg.Intervals.SimpleMode {
		out.SimpleWindow, err = interval.Resolve(cfg.Intervals.Simple)
		return out, err
	}

	if out.Current, err = interval.Resolve(cfg.Intervals.Current); err != nil {
		return out, err
	}
	if out.Short, err = interval.Resolve(cfg.Intervals.Short); err != nil {
		return out, err
	}
	out.Big, err = interval.Resolve(cfg.Intervals.Big)
	return out, err
}

// parsePercent accepts "2", "2%" or "2.5%".
func parsePercent(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid change threshold %q", s)
	}
	return v, nil
}

// progressBar builds a progress callback safe for the scanner's concurrent
/// workers: the bar is created exactly once, on the first update, since the
// universe size is only known when the pass starts.
func progressBar(w io.Writer) scanner.ProgressCallback {
	var (
		once sync.Once
		bar  *progressbar.ProgressBar
	)
	return func(scanned, total int) {
		once.Do(func() {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(w),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionShowIts(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Scanning"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]█[reset]",
					SaucerHead:    "[green]█[reset]",
					SaucerPadding: "░",
					BarStart:      "[",
					BarEnd:        "]",
				}),
			)
		})
		bar.Set(scanned)
		if scanned >= total {
			bar.Finish()
			fmt.Fprintln(w)
		}
	}
}

func outputTable(result *model.ScanResult, cfg *config.Config, highlighted map[string]bool) {
	if cfg.Scanner.Watch {
		// Redraw in place between passes.
		fmt.Print("\033[H\033[2J")
	}

	fmt.Printf("Volatile USDT pairs (updated %s, pass %s)\n\n",
		result.StartedAt.Format("2006-01-02 15:04:05"), result.PassID[:8])

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Symbol", "Category", "Change %", "vs Big %", "Ref Price", "Marks"}),
	)

	if len(result.Selected) == 0 {
		table.Append([]string{"-", "-", "-", "-", "-", "-"})
	}

	green := color.New(color.FgGreen).SprintfFunc()
	red := color.New(color.FgRed).SprintfFunc()
	grey := color.New(color.FgHiBlack).SprintfFunc()

	for _, r := range result.Selected {
		symbol := r.Symbol
		changeStr := grey("%.2f", r.ChangePct)

		switch {
		case highlighted[r.Symbol] && r.ChangePct >= cfg.Filter.ChangeThreshold:
			symbol = "🔥 " + symbol
			changeStr = green("%.2f", r.ChangePct)
		case highlighted[r.Symbol] && r.ChangePct <= -cfg.Filter.ChangeThreshold:
			symbol = "❄️ " + symbol
			changeStr = red("%.2f", r.ChangePct)
		case r.Category == model.CategoryBooster:
			changeStr = green("%.2f", r.ChangePct)
		case r.Category == model.CategoryLoser:
			changeStr = red("%.2f", r.ChangePct)
		}

		table.Append([]string{
			symbol,
			string(r.Category),
			changeStr,
			fmt.Sprintf("%.2f", r.BigChangePct),
			trimPrice(r.RefPrice),
			strings.Join(r.Marks, ","),
		})
	}

	table.Render()
	fmt.Printf("\nScanned %d symbols (%d classified) in %s\n",
		result.TotalScanned, result.Classified, result.ScanTime.Round(time.Millisecond))
}

// trimPrice formats prices without the trailing zeros a fixed precision
// would add to sub-cent altcoin quotes.
func trimPrice(p float64) string {
	s := strconv.FormatFloat(p, 'f', 8, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func outputJSON(result *model.ScanResult) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "encoding result: %v\n", err)
	}
}
