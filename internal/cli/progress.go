package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter shows the files visited by the analysis. The number of
// files is unknown upfront, so it renders a spinner with a counter.
type CLIProgressReporter struct {
	baseDir string
	bar     *progressbar.ProgressBar
	visited int
	failed  int
}

// NewCLIProgressReporter creates a reporter writing to w. File names are
// shown relative to baseDir.
func NewCLIProgressReporter(w io.Writer, baseDir string) *CLIProgressReporter {
	return &CLIProgressReporter{
		baseDir: baseDir,
		bar: progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("Analyzing"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("files/s"),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(w)
			}),
		),
	}
}

// OnFileStart shows the file being analyzed.
func (c *CLIProgressReporter) OnFileStart(path string) {
	c.bar.Describe(c.relative(path))
}

// OnFileDone advances the bar and counts failed files.
func (c *CLIProgressReporter) OnFileDone(path string, err error) {
	c.visited++
	if err != nil {
		c.failed++
	}
	c.bar.Add(1)
}

// Finish completes the bar.
func (c *CLIProgressReporter) Finish() {
	c.bar.Describe(fmt.Sprintf("Analyzed %d files (%d failed)", c.visited, c.failed))
	c.bar.Finish()
}

func (c *CLIProgressReporter) relative(path string) string {
	rel, err := filepath.Rel(c.baseDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
