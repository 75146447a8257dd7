package cli

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adyen/uitests/internal/logging"
	"github.com/adyen/uitests/internal/report"
)

// RunOptions configures a UI suite run
type RunOptions struct {
	GoBinary  string
	Package   string
	Tags      string
	Run       string
	Headless  bool
	AllureDir string
	Verbose   bool
	Clean     bool
}

// DefaultRunOptions returns options running the e2e package headed
func DefaultRunOptions() RunOptions {
	return RunOptions{
		GoBinary: "go",
		Package:  "./e2e/...",
		Tags:     "e2e",
	}
}

// TestArgs builds the go test argument list. Harness flags go after -args so
// they reach the test binary rather than the go tool.
func TestArgs(opts RunOptions) []string {
	args := []string{"test", "-count=1"}
	if opts.Tags != "" {
		args = append(args, "-tags", opts.Tags)
	}
	if opts.Verbose {
		args = append(args, "-v")
	}
	if opts.Run != "" {
		args = append(args, "-run", opts.Run)
	}
	args = append(args, opts.Package)

	var harness []string
	if opts.Headless {
		harness = append(harness, "-headless")
	}
	if opts.AllureDir != "" {
		harness = append(harness, "-alluredir", opts.AllureDir)
	}
	if len(harness) > 0 {
		args = append(append(args, "-args"), harness...)
	}
	return args
}

// RunTests executes the suite and streams its output
func RunTests(ctx context.Context, opts RunOptions, stdout, stderr io.Writer) error {
	log := logging.WithCategory("run")

	// go test runs each binary from its package directory
	if opts.AllureDir != "" {
		dir, err := filepath.Abs(opts.AllureDir)
		if err != nil {
			return fmt.Errorf("failed to resolve allure directory: %w", err)
		}
		opts.AllureDir = dir
	}

	if opts.Clean && opts.AllureDir != "" {
		removed, err := report.Clean(opts.AllureDir)
		if err != nil {
			return fmt.Errorf("failed to clean allure results: %w", err)
		}
		log.WithField("files", removed).Info("cleaned allure results")
	}

	args := TestArgs(opts)
	log.Infof("running %s %s", opts.GoBinary, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, opts.GoBinary, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ui tests failed: %w", err)
	}
	return nil
}
