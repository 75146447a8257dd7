package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	internalcli "github.com/adyen/uitests/internal/cli"
	"github.com/adyen/uitests/internal/config"
	"github.com/adyen/uitests/internal/logging"
	"github.com/adyen/uitests/internal/report"
)

var version = "0.1.0"

// RunCommand returns the run command
func RunCommand() *cli.Command {
	defaults := internalcli.DefaultRunOptions()

	return &cli.Command{
		Name:      "run",
		Usage:     "Run the browser UI suite",
		ArgsUsage: "[package]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "headless", Usage: "Run in headless mode", EnvVars: []string{"UI_HEADLESS"}},
			&cli.StringFlag{Name: "alluredir", Usage: "Directory for Allure results", EnvVars: []string{"ALLURE_RESULTS_DIR"}},
			&cli.StringFlag{Name: "run", Usage: "Only run tests matching this regular expression"},
			&cli.StringFlag{Name: "tags", Value: defaults.Tags, Usage: "Build tags selecting the suite"},
			&cli.StringFlag{Name: "go", Value: defaults.GoBinary, Usage: "Go binary used to run the suite"},
			&cli.BoolFlag{Name: "clean", Usage: "Remove previous Allure results first"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Verbose test output"},
		},
		Action: func(c *cli.Context) error {
			opts := defaults
			if c.Args().Present() {
				opts.Package = c.Args().First()
			}
			opts.Headless = c.Bool("headless")
			opts.AllureDir = c.String("alluredir")
			opts.Run = c.String("run")
			opts.Tags = c.String("tags")
			opts.GoBinary = c.String("go")
			opts.Clean = c.Bool("clean")
			opts.Verbose = c.Bool("verbose")

			return internalcli.RunTests(c.Context, opts, os.Stdout, os.Stderr)
		},
	}
}

// CleanCommand returns the clean command
func CleanCommand() *cli.Command {
	return &cli.Command{
		Name:  "clean",
		Usage: "Remove Allure results and attachments",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "alluredir", Required: true, Usage: "Directory for Allure results", EnvVars: []string{"ALLURE_RESULTS_DIR"}},
		},
		Action: func(c *cli.Context) error {
			removed, err := report.Clean(c.String("alluredir"))
			if err != nil {
				return err
			}
			logging.Logger().Infof("Removed %d files from %s", removed, c.String("alluredir"))
			return nil
		},
	}
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the demo application the suite runs against",
		Action: func(c *cli.Context) error {
			deps, err := internalcli.BuildServerDependencies(config.LoadServerConfig(os.Getenv))
			if err != nil {
				return err
			}
			return internalcli.RunServe(deps)
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logging.Logger().Debug(".env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "uitests",
		Usage:   "Browser UI test runner",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "Log level", EnvVars: []string{"UI_LOG_LEVEL"}},
		},
		Before: func(c *cli.Context) error {
			_, err := logging.New(c.String("log-level"))
			return err
		},
		Commands: []*cli.Command{
			RunCommand(),
			CleanCommand(),
			ServeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
