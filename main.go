package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yuhtools/yuh2ofx/internal/api"
	"github.com/yuhtools/yuh2ofx/internal/extractor"
	"github.com/yuhtools/yuh2ofx/internal/parser"
	"github.com/yuhtools/yuh2ofx/internal/writer"
)

const version = "1.0.0"

func main() {
	currencyFlag := flag.String("currency", "", "Currency section to extract (e.g. CHF, EUR, USD)")
	formatFlag := flag.String("format", "ofx", "Output format: ofx or csv")
	outputFlag := flag.String("output", "", "Output file path ('-' or empty for stdout)")
	fromDateFlag := flag.String("fromDate", "", "Keep only transactions on or after this date (YYYY-MM-DD)")
	toDateFlag := flag.String("toDate", "", "Keep only transactions on or before this date (YYYY-MM-DD)")
	skipBalanceFlag := flag.Bool("skip-balance-check", false, "Skip the final balance consistency check (known bank-side anomalies only)")
	listenFlag := flag.String("listen", "", "Run the HTTP API on this address instead of converting (e.g. :8080)")
	verboseFlag := flag.Bool("verbose", false, "Enable debug logging")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Yuh Statement PDF to OFX/CSV Converter

Extracts one currency's transactions from a Yuh account statement PDF and
renders them as an OFX document or a portfolio-tracker CSV.

Usage:
  yuh2ofx --currency <code> [flags] <statement.pdf>

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert the CHF section to OFX on stdout
  yuh2ofx --currency CHF statement.pdf

  # Convert the EUR section to CSV in a file
  yuh2ofx --currency EUR --format csv --output eur.csv statement.pdf

  # Only January 2024
  yuh2ofx --currency CHF --fromDate 2024-01-01 --toDate 2024-01-31 statement.pdf

  # Serve the HTTP conversion API
  yuh2ofx --listen :8080
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("yuh2ofx v%s\n", version)
		os.Exit(0)
	}

	if *verboseFlag {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if *listenFlag != "" {
		app := api.NewApp()
		logrus.Infof("listening on %s", *listenFlag)
		if err := app.Listen(*listenFlag); err != nil {
			logrus.Fatalf("server failed: %v", err)
		}
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: statement filename is required")
		flag.Usage()
		os.Exit(1)
	}
	if *currencyFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: --currency is required")
		flag.Usage()
		os.Exit(1)
	}
	format := strings.ToLower(*formatFlag)
	if format != "ofx" && format != "csv" {
		fmt.Fprintf(os.Stderr, "Error: format must be either \"ofx\" or \"csv\", got %q\n", *formatFlag)
		os.Exit(1)
	}

	fromDate, err := parseDateFlag(*fromDateFlag)
	if err != nil {
		fatalf("Invalid --fromDate: %v\n", err)
	}
	toDate, err := parseDateFlag(*toDateFlag)
	if err != nil {
		fatalf("Invalid --toDate: %v\n", err)
	}

	inputPath := flag.Arg(0)
	if err := convert(inputPath, *currencyFlag, format, *outputFlag, fromDate, toDate, *skipBalanceFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
		os.Exit(1)
	}
}

func convert(inputPath, currency, format, outputPath string, fromDate, toDate *time.Time, skipBalanceCheck bool) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	doc, err := extractor.Load(inputPath)
	if err != nil {
		return err
	}
	logrus.Debugf("document has currency sections: %v", parser.DetectCurrencies(doc))

	p := parser.New(currency)
	p.SkipFinalBalanceCheck = skipBalanceCheck
	parsed, err := p.Parse(doc)
	if err != nil {
		return err
	}
	logrus.Infof("parsed %d transaction(s) for %s", len(parsed.Statements), p.Currency)

	if fromDate != nil || toDate != nil {
		parsed = parser.FilterByDateRange(parsed, fromDate, toDate)
		logrus.Infof("%d transaction(s) after date filter", len(parsed.Statements))
	}

	var g writer.Generator
	if format == "csv" {
		g = writer.NewCSVGenerator()
	} else {
		g = writer.NewOFXGenerator(p.Currency)
	}
	return writer.Write(outputPath, g.Generate(parsed))
}

func parseDateFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	return &t, nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
