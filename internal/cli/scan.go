package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/monosplit/internal/discovery"
)

var scanJSONFlag bool

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [DIR]",
	Short: "Find annotated files under a directory",
	Long: `Scan walks a directory tree and lists every Python file carrying at
least one # pragma: newfile marker, with its marker count. Include and
ignore patterns come from configuration (scan.include / scan.ignore).

DIR defaults to the current directory.

Examples:
  # Scan the current directory
  monosplit scan

  # Scan a specific tree
  monosplit scan src/

  # Machine-readable output
  monosplit scan --json
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVar(&scanJSONFlag, "json", false, "Emit candidates as JSON")
}

// scanReport is the payload emitted by --json.
type scanReport struct {
	Root       string                `json:"root"`
	Candidates []discovery.Candidate `json:"candidates"`
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	rootDir := "."
	if len(args) == 1 {
		rootDir = args[0]
	}

	return executeScan(rootDir, cfg.Scan.Include, cfg.Scan.Ignore, scanJSONFlag, os.Stdout)
}

// executeScan walks rootDir and prints the annotated files it finds.
func executeScan(rootDir string, include, ignore []string, asJSON bool, out io.Writer) error {
	scanner, err := discovery.NewScanner(rootDir, include, ignore)
	if err != nil {
		return fmt.Errorf("failed to create scanner: %w", err)
	}

	candidates, err := scanner.Scan()
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", rootDir, err)
	}

	if asJSON {
		data, err := json.MarshalIndent(scanReport{Root: rootDir, Candidates: candidates}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal candidates: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(candidates) == 0 {
		fmt.Fprintf(out, "No annotated files found under %s\n", rootDir)
		return nil
	}

	fmt.Fprintf(out, "Found %d annotated files under %s:\n", len(candidates), rootDir)
	for _, c := range candidates {
		fmt.Fprintf(out, "  %s (markers: %d)\n", c.Path, c.Markers)
	}
	return nil
}
