//go:build e2e

package e2e

import (
	"context"
	"flag"
	"fmt"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"github.com/adyen/uitests/internal/api"
	"github.com/adyen/uitests/internal/browser"
	internalcli "github.com/adyen/uitests/internal/cli"
	"github.com/adyen/uitests/internal/config"
	"github.com/adyen/uitests/internal/fixture"
	"github.com/adyen/uitests/internal/logging"
	"github.com/adyen/uitests/internal/report"
)

var (
	flags = config.RegisterFlags(flag.CommandLine)
	suite *fixture.Suite

	// shared with suites built by individual tests
	launcher      browser.Launcher
	appConfig     *config.APIConfig
	browserConfig config.BrowserConfig
)

// TestMain starts the demo application and the playwright driver for all tests
func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(run(m))
}

func run(m *testing.M) int {
	_ = godotenv.Load("../.env")

	deps, err := internalcli.BuildServerDependencies(config.ServerConfig{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build demo app: %v\n", err)
		return 1
	}
	srv := httptest.NewServer(internalcli.NewMux(deps))
	defer srv.Close()

	logging.QuietDriver()

	// Install is idempotent; browsers already present are reused
	pw, err := browser.NewPlaywrightLauncher(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start playwright: %v\n", err)
		return 1
	}
	defer pw.Stop()
	launcher = pw

	sink, err := report.NewSink(config.LoadReportConfig(flags, os.Getenv))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open allure results: %v\n", err)
		return 1
	}

	appConfig = &config.APIConfig{BaseURL: srv.URL, Timeout: 10 * time.Second}
	if _, err := api.NewClient(appConfig).Health(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "demo app is not healthy: %v\n", err)
		return 1
	}

	browserConfig = config.LoadBrowserConfig(flags, os.Getenv)
	suite = fixture.NewSuite(launcher, fixture.Config{
		Browser:  browserConfig,
		API:      appConfig,
		Reporter: report.NewReporter(sink),
	})

	return m.Run()
}
