// Command bttree is a small utility for working with tree source files
// outside of a host program: validate a file, reformat it, or dump the
// tree it loads into as a box-drawing diagram.
package main

import (
	"fmt"
	"os"

	"github.com/aledsdavies/bttree/bt"
	"github.com/aledsdavies/bttree/diag"
	"github.com/aledsdavies/bttree/dsl/loader"
	"github.com/aledsdavies/bttree/dsl/parser"
	"github.com/aledsdavies/bttree/dsl/printer"
	"github.com/spf13/cobra"
)

// Build-time variables, set via ldflags.
var (
	Version   string = "dev"
	BuildTime string = "unknown"
	GitCommit string = "unknown"
)

var noCheckPorts bool
var noColor bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bttree",
	Short: "Inspect and reformat behavior tree source files",
	Long: `bttree loads tree source files (the grammar dsl/parser accepts) and
validates, reformats, or diagrams the tree they describe.`,
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Parse and load a tree source file, reporting any errors",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Reprint a tree source file in canonical form",
	Args:  cobra.ExactArgs(1),
	RunE:  runFmt,
}

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Load a tree source file and print its shape as a box diagram",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bttree %s\n", Version)
		fmt.Fprintf(cmd.OutOrStdout(), "Built: %s\n", BuildTime)
		fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", GitCommit)
	},
}

func init() {
	validateCmd.Flags().BoolVar(&noCheckPorts, "no-check-ports", false, "skip static port-map validation")
	dumpCmd.Flags().BoolVar(&noCheckPorts, "no-check-ports", false, "skip static port-map validation")
	dumpCmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI color in the diagram")

	rootCmd.AddCommand(validateCmd, fmtCmd, dumpCmd, versionCmd)
}

func readAndParse(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(content), nil
}

func loadTree(path string, checkPorts bool) (*bt.Tree, error) {
	src, err := readAndParse(path)
	if err != nil {
		return nil, err
	}

	file, errs := parser.Parse(src)
	if len(errs) > 0 {
		return nil, parseErrors(errs)
	}

	registry := bt.NewRegistry()
	tree, err := loader.Load(file, registry, loader.Config{CheckPorts: checkPorts})
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return tree, nil
}

func parseErrors(errs []parser.ParseError) error {
	msg := fmt.Sprintf("%s: %d error(s)", "parse failed", len(errs))
	for _, e := range errs {
		msg += "\n  " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}

func runValidate(cmd *cobra.Command, args []string) error {
	_, err := loadTree(args[0], !noCheckPorts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
	return nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	src, err := readAndParse(args[0])
	if err != nil {
		return err
	}

	file, errs := parser.Parse(src)
	if len(errs) > 0 {
		return parseErrors(errs)
	}

	fmt.Fprint(cmd.OutOrStdout(), printer.Print(file))
	return nil
}

func runDump(cmd *cobra.Command, args []string) error {
	tree, err := loadTree(args[0], !noCheckPorts)
	if err != nil {
		return err
	}

	diag.Dump(cmd.OutOrStdout(), tree, diag.Options{Color: !noColor})
	return nil
}
