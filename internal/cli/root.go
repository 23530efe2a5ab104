package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mvp-joe/monosplit/internal/config"
	"github.com/mvp-joe/monosplit/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "monosplit",
	Short: "Split annotated Python monoliths into packages",
	Long: `Monosplit splits a single Python file annotated with
# pragma: newfile("<name>") markers into a package: one module per
segment with re-derived imports, an __init__.py facade re-exporting
every public symbol, and a __main__.py entrypoint when the source
carries a main block.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .monosplit/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig resolves configuration for a command run: the --config file
// when given, otherwise .monosplit/config.yml under the working directory.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadConfigFromFile(cfgFile)
	}
	return config.LoadConfig()
}

// newLogger builds the process logger from configuration. --verbose drops
// the level to debug regardless of config.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Logging.Level, cfg.Logging.Format, verbose)
}
