package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mvp-joe/monosplit/internal/splitter"
)

var inspectJSONFlag bool

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Show the split plan for an annotated file",
	Long: `Inspect plans a split without writing anything and reports what it
found: the segments with their exports, imports, cross-segment
references and prologue bindings, the detected main block, and every
diagnostic the split would raise.

Examples:
  # Human-readable plan
  monosplit inspect tool.py

  # Machine-readable plan
  monosplit inspect tool.py --json
`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectJSONFlag, "json", false, "Emit the plan as JSON")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	return executeInspect(args[0], inspectJSONFlag, logger, os.Stdout)
}

// executeInspect plans a split of path and prints the plan to out.
func executeInspect(path string, asJSON bool, logger *zap.Logger, out io.Writer) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	// Inspection never promotes diagnostics: the point is to see them.
	res, err := splitter.SplitWithLogger(source, splitter.Options{}, logger)
	if err != nil {
		if errors.Is(err, splitter.ErrNothingToSplit) {
			return fmt.Errorf("%s: %w", path, err)
		}
		return fmt.Errorf("failed to inspect %s: %w", path, err)
	}

	if asJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal plan: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	printInspection(res, path, out)
	return nil
}

// printInspection renders the human-readable plan.
func printInspection(res *splitter.Result, path string, out io.Writer) {
	fmt.Fprintf(out, "%s: %d segments, %d artifacts\n", path, len(res.Segments), len(res.Artifacts))

	if res.Main != nil {
		fmt.Fprintf(out, "Main block: %s (lines %d-%d) -> %s\n",
			res.Main.Form, res.Main.Lines.Start, res.Main.Lines.End, splitter.MainFile)
	}

	for _, seg := range res.Segments {
		fmt.Fprintf(out, "\n%s (marker line %d, lines %d-%d)\n",
			seg.File, seg.MarkerLine, seg.Lines.Start, seg.Lines.End)
		printNameList(out, "exports", seg.Exports)
		printNameList(out, "imports", seg.Imports)
		printNameList(out, "cross-refs", seg.CrossRefs)
		printNameList(out, "bindings", seg.Bindings)
	}

	if len(res.Diagnostics) > 0 {
		fmt.Fprintf(out, "\nDiagnostics:\n")
		for _, d := range res.Diagnostics {
			if d.Line > 0 {
				fmt.Fprintf(out, "  [%s] %s (line %d)\n", d.Code, d.Message, d.Line)
			} else {
				fmt.Fprintf(out, "  [%s] %s\n", d.Code, d.Message)
			}
		}
	}
}

func printNameList(out io.Writer, label string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(out, "  %s: %s\n", label, strings.Join(names, ", "))
}
