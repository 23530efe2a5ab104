package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mvp-joe/monosplit/internal/diff"
	"github.com/mvp-joe/monosplit/internal/splitter"
	"github.com/mvp-joe/monosplit/internal/watcher"
)

var (
	splitOutputFlag string
	splitDryRunFlag bool
	splitDiffFlag   bool
	splitWatchFlag  bool
	splitQuietFlag  bool
	splitStrictFlag bool
	splitJSONFlag   bool
)

// splitCmd represents the split command
var splitCmd = &cobra.Command{
	Use:   "split FILE",
	Short: "Split an annotated Python file into a package",
	Long: `Split reads one Python file annotated with # pragma: newfile("<name>")
markers and installs it as a package directory: one module per segment
with re-derived imports, an __init__.py facade, and a __main__.py when
the file has a main block.

The output directory defaults to the input's stem next to the input
(tool.py -> tool/). Artifacts are staged and renamed into place, so a
failed split never leaves a partially written package.

Examples:
  # Split tool.py into tool/
  monosplit split tool.py

  # Split into an explicit directory
  monosplit split tool.py -o build/tool

  # Show the plan without writing anything
  monosplit split tool.py --dry-run

  # Diff planned artifacts against what is on disk
  monosplit split tool.py --diff

  # Re-split whenever the file changes
  monosplit split tool.py --watch

  # Fail on any diagnostic instead of proceeding
  monosplit split tool.py --strict
`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)
	splitCmd.Flags().StringVarP(&splitOutputFlag, "output", "o", "", "Output directory (default: input stem next to FILE)")
	splitCmd.Flags().BoolVar(&splitDryRunFlag, "dry-run", false, "Plan the split without writing any files")
	splitCmd.Flags().BoolVar(&splitDiffFlag, "diff", false, "Show unified diffs against files on disk instead of writing")
	splitCmd.Flags().BoolVarP(&splitWatchFlag, "watch", "w", false, "Watch FILE and re-split on change")
	splitCmd.Flags().BoolVarP(&splitQuietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	splitCmd.Flags().BoolVar(&splitStrictFlag, "strict", false, "Treat diagnostics as errors")
	splitCmd.Flags().BoolVar(&splitJSONFlag, "json", false, "Emit the split result as JSON")
}

// splitRunOptions carries the resolved settings for one split execution.
type splitRunOptions struct {
	OutputDir string // empty means derive from the input path
	DryRun    bool
	Diff      bool
	Quiet     bool
	Strict    bool
	JSON      bool
}

// splitReport is the payload emitted by --json.
type splitReport struct {
	DryRun    bool             `json:"dry_run"`
	OutputDir string           `json:"output_dir"`
	Written   []string         `json:"written,omitempty"`
	Result    *splitter.Result `json:"result"`
}

func runSplit(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Stopping...")
		cancel()
	}()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	opts := splitRunOptions{
		OutputDir: splitOutputFlag,
		DryRun:    splitDryRunFlag,
		Diff:      splitDiffFlag,
		Quiet:     splitQuietFlag,
		Strict:    splitStrictFlag || cfg.Diagnostics.Strict,
		JSON:      splitJSONFlag,
	}
	if opts.OutputDir == "" {
		opts.OutputDir = cfg.Output.Dir
	}

	path := args[0]
	if !splitWatchFlag {
		return executeSplit(path, opts, logger, os.Stdout, os.Stderr)
	}

	// Watch mode: split once up front, then re-split on every change.
	// A failed run reports and keeps watching so an editor save that
	// introduces a syntax error doesn't tear the session down.
	if err := executeSplit(path, opts, logger, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "split failed: %v\n", err)
	}

	debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
	fw, err := watcher.NewFileWatcher(path, debounce, logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Stop()

	err = fw.Start(ctx, func() {
		if err := executeSplit(path, opts, logger, os.Stdout, os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "split failed: %v\n", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	if !opts.Quiet {
		fmt.Printf("Watching %s for changes (Ctrl+C to stop)\n", path)
	}

	// Block until cancelled
	<-ctx.Done()
	return nil
}

// executeSplit runs one split of path and renders the result according
// to opts. Primary output goes to out, diagnostics to errOut.
func executeSplit(path string, opts splitRunOptions, logger *zap.Logger, out, errOut io.Writer) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	res, err := splitter.SplitWithLogger(source, splitter.Options{Strict: opts.Strict}, logger)
	if err != nil {
		// Strict mode still produces the plan; show what it objected to.
		if errors.Is(err, splitter.ErrStrictDiagnostics) && res != nil {
			printDiagnostics(res.Diagnostics, errOut)
		}
		return fmt.Errorf("failed to split %s: %w", path, err)
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = splitter.DeriveOutputDir(path)
	}

	if !opts.JSON {
		printDiagnostics(res.Diagnostics, errOut)
	}

	if opts.Diff {
		return renderArtifactDiffs(res, outputDir, opts, out)
	}

	if opts.DryRun {
		if opts.JSON {
			return emitJSON(out, splitReport{DryRun: true, OutputDir: outputDir, Result: res})
		}
		printPlan(res, outputDir, out)
		return nil
	}

	writer, err := splitter.NewAtomicWriter(outputDir)
	if err != nil {
		return fmt.Errorf("failed to prepare output directory: %w", err)
	}

	// JSON mode owns stdout; keep the bar off it.
	progress := NewCLIProgressReporter(opts.Quiet || opts.JSON)
	progress.OnInstallStart(len(res.Artifacts))

	if err := writer.WriteArtifacts(res.Artifacts, progress.OnArtifactInstalled); err != nil {
		return fmt.Errorf("failed to write artifacts: %w", err)
	}

	if opts.JSON {
		written := make([]string, 0, len(res.Artifacts))
		for _, a := range res.Artifacts {
			written = append(written, a.Name)
		}
		return emitJSON(out, splitReport{OutputDir: outputDir, Written: written, Result: res})
	}

	progress.OnComplete(len(res.Artifacts), outputDir)
	return nil
}

// renderArtifactDiffs prints unified diffs of planned artifacts against
// the files currently in outputDir. Nothing is written.
func renderArtifactDiffs(res *splitter.Result, outputDir string, opts splitRunOptions, out io.Writer) error {
	files := make([]diff.File, 0, len(res.Artifacts))
	for _, a := range res.Artifacts {
		old, err := os.ReadFile(filepath.Join(outputDir, a.Name))
		if err != nil {
			// Not on disk yet: rendered as an added file.
			old = nil
		}
		files = append(files, diff.File{Name: a.Name, Old: old, New: []byte(a.Content)})
	}

	rendered := diff.Render(files, diff.Options{})
	if rendered == "" {
		if !opts.Quiet {
			fmt.Fprintf(out, "No changes: %s is up to date\n", outputDir)
		}
		return nil
	}

	fmt.Fprint(out, rendered)
	return nil
}

// printPlan summarizes a dry run.
func printPlan(res *splitter.Result, outputDir string, out io.Writer) {
	fmt.Fprintf(out, "Planned %d artifacts for %s (dry run):\n", len(res.Artifacts), outputDir)
	for _, a := range res.Artifacts {
		fmt.Fprintf(out, "  %s (%d bytes)\n", a.Name, len(a.Content))
	}
	if res.Main != nil {
		fmt.Fprintf(out, "Main block: %s (lines %d-%d)\n", res.Main.Form, res.Main.Lines.Start, res.Main.Lines.End)
	}
}

// printDiagnostics reports findings that did not stop the split.
func printDiagnostics(diags []splitter.Diagnostic, errOut io.Writer) {
	for _, d := range diags {
		if d.Line > 0 {
			fmt.Fprintf(errOut, "⚠ %s: %s (line %d)\n", d.Code, d.Message, d.Line)
		} else {
			fmt.Fprintf(errOut, "⚠ %s: %s\n", d.Code, d.Message)
		}
	}
}

func emitJSON(out io.Writer, report splitReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}
