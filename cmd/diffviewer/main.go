package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Slipfaith/Diffviewer/internal/app"
	"github.com/Slipfaith/Diffviewer/internal/config"
	"github.com/Slipfaith/Diffviewer/internal/model"
	"github.com/Slipfaith/Diffviewer/internal/parser"
	"github.com/Slipfaith/Diffviewer/internal/qa"
)

type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config file")
		logLevel   = flag.String("log-level", "", "override log level (debug, info, warn, error)")
		chain      = flag.Bool("chain", false, "compare three or more files as consecutive versions")
		qaOut      = flag.String("qa-out", "qa_verification.xlsx", "output path for the QA verification report")
	)
	var qaReports, finalFiles stringList
	flag.Var(&qaReports, "qa-report", "QA report workbook (repeatable)")
	flag.Var(&finalFiles, "final", "final translated file for QA verification (repeatable)")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	logger := app.NewLogger(cfg.Log)

	if len(qaReports) > 0 {
		os.Exit(runQAVerification(logger, qaReports, finalFiles, *qaOut))
	}

	args := flag.Args()
	switch {
	case *chain && len(args) >= 3:
		os.Exit(runChainCompare(cfg, args))
	case !*chain && len(args) == 2:
		os.Exit(runCompare(cfg, args[0], args[1]))
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage:
  diffviewer [flags] <fileA> <fileB>
  diffviewer -chain [flags] <file1> <file2> <file3> [...]
  diffviewer -qa-report report.xlsx [-qa-report ...] -final final.sdlxliff [-final ...] [-qa-out out.xlsx]

Supported formats: `+strings.Join(parser.SupportedExtensions(), ", ")+`

Flags:`)
	flag.PrintDefaults()
}

func runCompare(cfg *config.Config, pathA, pathB string) int {
	docA, err := parser.ParseFile(pathA)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", pathA, err)
		return 1
	}
	docB, err := parser.ParseFile(pathB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", pathB, err)
		return 1
	}

	result := cfg.Engine().Compare(docA, docB)
	printComparison(result)
	return 0
}

func runChainCompare(cfg *config.Config, paths []string) int {
	docs := make([]*model.ParsedDocument, 0, len(paths))
	for _, path := range paths {
		doc, err := parser.ParseFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", path, err)
			return 1
		}
		docs = append(docs, doc)
	}

	for i, result := range cfg.Engine().CompareMulti(docs) {
		fmt.Printf("=== Version %d -> %d ===\n", i+1, i+2)
		printComparison(result)
		fmt.Println()
	}
	return 0
}

func printComparison(result *model.ComparisonResult) {
	stats := result.Statistics
	fmt.Printf("%s vs %s\n", result.FileA.FilePath, result.FileB.FilePath)
	fmt.Printf("Segments: %d  Changed: %.1f%%\n", stats.TotalSegments, stats.ChangePercentage*100)
	fmt.Printf("  added=%d deleted=%d modified=%d unchanged=%d\n",
		stats.Added, stats.Deleted, stats.Modified, stats.Unchanged)

	for _, change := range result.Changes {
		if !change.IsChanged() {
			continue
		}
		fmt.Printf("\n[%s]", change.Type)
		switch change.Type {
		case model.Added:
			fmt.Printf(" segment %s\n", change.After.ID)
			fmt.Printf("  + \"%s\"\n", summarizedText(change.After.Target))
		case model.Deleted:
			fmt.Printf(" segment %s\n", change.Before.ID)
			fmt.Printf("  - \"%s\"\n", summarizedText(change.Before.Target))
		case model.Modified:
			fmt.Printf(" segment %s (similarity %.2f)\n", change.After.ID, change.Similarity)
			fmt.Printf("  - \"%s\"\n", summarizedText(change.Before.Target))
			fmt.Printf("  + \"%s\"\n", summarizedText(change.After.Target))
		case model.Moved:
			fmt.Printf(" segment %s -> %s\n", change.Before.ID, change.After.ID)
			fmt.Printf("    \"%s\"\n", summarizedText(change.After.Target))
		}
	}
}

func runQAVerification(logger *slog.Logger, reports, finals []string, outputPath string) int {
	verifier := qa.NewVerifier(logger)

	scan := verifier.ScanReports(reports)
	for _, warning := range scan.Warnings {
		logger.Warn(warning)
	}
	for _, sheetConfig := range scan.SheetConfigs {
		logger.Info("detected sheet mapping",
			"sheet", sheetConfig.DisplayName(),
			"header_row", sheetConfig.HeaderRow,
			"complete", sheetConfig.Mapping.IsComplete())
		for _, note := range sheetConfig.Notes {
			logger.Warn(note, "sheet", sheetConfig.DisplayName())
		}
	}

	result := verifier.Verify(scan.SheetConfigs, finals)
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	fmt.Printf("QA verification: %d rows\n", result.TotalRows)
	fmt.Printf("  %s=%d %s=%d %s=%d %s=%d\n",
		qa.StatusApplied, result.StatusCounts[qa.StatusApplied],
		qa.StatusNotApplied, result.StatusCounts[qa.StatusNotApplied],
		qa.StatusCannotVerify, result.StatusCounts[qa.StatusCannotVerify],
		qa.StatusNotApplicable, result.StatusCounts[qa.StatusNotApplicable])

	if err := qa.ExportResult(result, outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		return 1
	}
	fmt.Printf("Report written to %s\n", outputPath)
	return 0
}

func summarizedText(text string) string {
	text = strings.ReplaceAll(text, "\n", "↵ ")
	const maxLength = 80
	runes := []rune(text)
	if len(runes) > maxLength {
		return string(runes[:maxLength-3]) + "..."
	}
	return text
}
