// Command checkmerge is the thin CLI glue described informationally in §6:
// it reads pre-built IR via a registered Parser, runs the diff and analysis
// engines, and prints a plain-text report. Language front-ends, source
// patching, and colored terminal output are all out of scope (§1).
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jjkester/checkmerge/analysis"
	"github.com/jjkester/checkmerge/diff"
	"github.com/jjkester/checkmerge/ir"
	"github.com/jjkester/checkmerge/report"
	"github.com/spf13/cobra"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

var parserFlag string

var rootCmd = &cobra.Command{
	Use:           "checkmerge",
	Short:         "Detects semantic merge conflicts between source trees",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var diffCmd = &cobra.Command{
	Use:   "diff BASE OTHER",
	Short: "Computes and prints the edit script between two inputs",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, other, err := parsePair(args[0], args[1])
		if err != nil {
			return err
		}

		result := diff.Diff(base, other, diff.Config{})
		rep := report.Build(result.Changes(), nil)
		renderReport(os.Stdout, rep)
		return nil
	},
}

var analysisFlag []string

var analyzeCmd = &cobra.Command{
	Use:   "analyze BASE OTHER [ANCESTOR]",
	Short: "Runs semantic conflict analyses over a two- or three-way diff",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		selected, err := selectAnalyses(analysisFlag)
		if err != nil {
			return err
		}

		var input analysis.Input
		var changes []diff.Change

		if len(args) == 3 {
			ancestor, err := parseOne(args[2])
			if err != nil {
				return err
			}
			base, other, err := parsePair(args[0], args[1])
			if err != nil {
				return err
			}

			merged := diff.MergeDiff(ancestor, base, other, diff.Config{})
			merged.Refine(diff.Config{})
			input = analysis.FromMerge(merged)

			changes = make([]diff.Change, 0, len(merged.BaseDiff.Changes())+len(merged.OtherDiff.Changes()))
			changes = append(changes, merged.BaseDiff.Changes()...)
			changes = append(changes, merged.OtherDiff.Changes()...)
		} else {
			base, other, err := parsePair(args[0], args[1])
			if err != nil {
				return err
			}
			d := diff.Diff(base, other, diff.Config{})
			input = analysis.FromDiff(d)
			changes = d.Changes()
		}

		var results []analysis.Result
		for _, a := range selected {
			results = append(results, a.Analyze(input)...)
		}

		rep := report.Build(changes, results)
		renderReport(os.Stdout, rep)
		return nil
	},
}

var listPluginsCmd = &cobra.Command{
	Use:   "list-plugins",
	Short: "Lists all registered parsers and analyses",
	RunE: func(cmd *cobra.Command, args []string) error {
		printParsers(os.Stdout)
		printAnalyses(os.Stdout)
		return nil
	},
}

var listParsersCmd = &cobra.Command{
	Use:   "list-parsers",
	Short: "Lists registered parsers",
	RunE: func(cmd *cobra.Command, args []string) error {
		printParsers(os.Stdout)
		return nil
	},
}

var listAnalysisCmd = &cobra.Command{
	Use:   "list-analysis",
	Short: "Lists registered analyses",
	RunE: func(cmd *cobra.Command, args []string) error {
		printAnalyses(os.Stdout)
		return nil
	},
}

func printParsers(w *os.File) {
	fmt.Fprintln(w, "Parsers:")
	for _, p := range parsers.All() {
		fmt.Fprintf(w, "  %s\n", p.Key())
	}
}

func printAnalyses(w *os.File) {
	fmt.Fprintln(w, "Analyses:")
	for _, a := range analyses.All() {
		fmt.Fprintf(w, "  %-12s %s\n", a.Key(), a.Description())
	}
}

// selectAnalyses resolves --analysis flags to registered Analysis values,
// defaulting to every usable one when none are given (§6).
func selectAnalyses(keys []string) ([]analysis.Analysis, error) {
	if len(keys) == 0 {
		return analyses.All(), nil
	}

	out := make([]analysis.Analysis, 0, len(keys))
	for _, key := range keys {
		a, err := analyses.Lookup(key)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func parseOne(path string) (*ir.Node, error) {
	p, err := parsers.Lookup(parserFlag)
	if err != nil {
		return nil, err
	}
	return p.Parse(path)
}

func parsePair(basePath, otherPath string) (base, other *ir.Node, err error) {
	base, err = parseOne(basePath)
	if err != nil {
		return nil, nil, err
	}
	other, err = parseOne(otherPath)
	if err != nil {
		return nil, nil, err
	}
	return base, other, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&parserFlag, "parser", "json", "parser to use for input files")
	analyzeCmd.Flags().StringArrayVar(&analysisFlag, "analysis", nil, "analysis to run (repeatable); defaults to all")

	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(listPluginsCmd)
	rootCmd.AddCommand(listParsersCmd)
	rootCmd.AddCommand(listAnalysisCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
