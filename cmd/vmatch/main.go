// Package main is the vmatch CLI entry point: a thin demonstration shell
// around the match package, built the way the teacher always ships a
// cmd/ binary next to its core packages (cmd/fileman, cmd/morfx). It is
// not part of the engine's contract — match.Execute needs no CLI at all.
package main

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/oxhq/vmatch/internal/config"
	"github.com/oxhq/vmatch/internal/engine"
	"github.com/oxhq/vmatch/internal/evalctx"
	"github.com/oxhq/vmatch/internal/value"
	"github.com/oxhq/vmatch/match"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "vmatch: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vmatch",
		Short:         "Declarative recursive value matcher",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var matchTypeName string
	var storeFlags func() config.StoreConfig

	cmd := &cobra.Command{
		Use:   "run <actual.json> <expected.json>",
		Short: "Match an actual value file against an expected value file",
		Long: `run reads actual.json and expected.json, JSON/XML-auto-parses actual
(spec.md §6), and runs the named match type against expected. Exit status
is 0 on pass, 1 on a failed match, 2 when the match engine reports a
usage or evaluator error. An unknown --type, a wrong argument count or an
unreadable file also exits 1.`,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, matchTypeName, storeFlags(), args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&matchTypeName, "type", "EQUALS", "match type: EQUALS, CONTAINS, CONTAINS_ONLY, WITHIN, EACH_EQUALS, ...")
	storeFlags = config.BindFlags(cmd.Flags(), config.Load())

	return cmd
}

func runMatch(cmd *cobra.Command, matchTypeName string, storeCfg config.StoreConfig, actualPattern, expectedPath string) error {
	matchType, ok := engine.ParseMatchType(matchTypeName)
	if !ok {
		return fmt.Errorf("unknown match type %q", matchTypeName)
	}

	// actualPattern may be a doublestar glob (e.g. "testdata/**/*.json"), the
	// way the teacher expands cmd/fileman's file arguments before walking
	// them (util.ExpandGlobs / core.FileWalker's pattern matching). A plain
	// path with no glob metacharacters expands to itself.
	actualFiles, err := doublestar.FilepathGlob(actualPattern)
	if err != nil {
		return fmt.Errorf("expanding actual file pattern %q: %w", actualPattern, err)
	}
	if len(actualFiles) == 0 {
		actualFiles = []string{actualPattern}
	}

	expectedBytes, err := os.ReadFile(expectedPath)
	if err != nil {
		return fmt.Errorf("reading expected file: %w", err)
	}
	expectedVal, err := value.ParseJSON(string(expectedBytes))
	if err != nil {
		return fmt.Errorf("parsing expected file as JSON: %w", err)
	}

	anyFailed := false
	for _, actualPath := range actualFiles {
		actualBytes, err := os.ReadFile(actualPath)
		if err != nil {
			return fmt.Errorf("reading actual file %q: %w", actualPath, err)
		}

		result, err := match.Execute(
			matchType,
			string(actualBytes),
			expectedVal,
			match.WithEvaluator(evalctx.NewBasicEvaluator()),
			match.WithStoreConfig(storeCfg),
		)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: error: %v\n", actualPath, err)
			os.Exit(2)
		}

		if result.Pass {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: pass\n", actualPath)
			continue
		}

		anyFailed = true
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", actualPath, result.Message)
	}

	if anyFailed {
		os.Exit(1)
	}
	return nil
}
