package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter renders artifact installation progress with a
// progress bar. One reporter covers one split run.
type CLIProgressReporter struct {
	quiet              bool
	installBar         *progressbar.ProgressBar
	startTime          time.Time
	totalArtifacts     int
	installedArtifacts int
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet:     quiet,
		startTime: time.Now(),
	}
}

func (c *CLIProgressReporter) OnInstallStart(totalArtifacts int) {
	if c.quiet {
		return
	}
	c.totalArtifacts = totalArtifacts
	c.installedArtifacts = 0

	c.installBar = progressbar.NewOptions(totalArtifacts,
		progressbar.OptionSetDescription("Installing artifacts"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) OnArtifactInstalled(name string) {
	if c.quiet {
		return
	}
	if c.installBar != nil {
		c.installedArtifacts++
		c.installBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(artifactCount int, outputDir string) {
	if c.quiet {
		return
	}
	fmt.Printf("✓ Split complete: %d artifacts in %s (%.1fs)\n",
		artifactCount, outputDir, time.Since(c.startTime).Seconds())
}
