package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	internalcli "github.com/forkqa/webnextgen/internal/cli"
	"github.com/forkqa/webnextgen/internal/config"
	"github.com/forkqa/webnextgen/internal/database"
	"github.com/forkqa/webnextgen/internal/handlers"
	"github.com/forkqa/webnextgen/internal/repository"
	"github.com/forkqa/webnextgen/internal/sandbox"
)

var version = "0.1.0"

func newLogger(debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// buildServerDependencies creates the sandbox site and its configuration
func buildServerDependencies(log logrus.FieldLogger) (internalcli.ServerDependencies, error) {
	var deps internalcli.ServerDependencies

	deps.ServerConfig = config.LoadServerConfig(os.Getenv)
	deps.Log = log

	renderer, err := sandbox.NewRenderer()
	if err != nil {
		return deps, fmt.Errorf("failed to create renderer: %w", err)
	}
	deps.Handler = handlers.NewRouter(renderer, sandbox.DefaultCatalog(), sandbox.DefaultAccounts(), log)

	return deps, nil
}

// SandboxCommand returns the sandbox command
func SandboxCommand() *cli.Command {
	return &cli.Command{
		Name:  "sandbox",
		Usage: "Serve a replica of the reservation site",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Usage: "log every request"},
		},
		Action: func(c *cli.Context) error {
			log := newLogger(c.Bool("debug"))

			deps, err := buildServerDependencies(log)
			if err != nil {
				return err
			}

			return internalcli.RunServe(deps)
		},
	}
}

// buildSmokeDependencies loads the configuration of a smoke run
func buildSmokeDependencies(c *cli.Context, log logrus.FieldLogger) (internalcli.SmokeDependencies, error) {
	var deps internalcli.SmokeDependencies
	deps.Log = log
	deps.Out = c.App.Writer

	site, err := config.LoadSiteConfig(os.Getenv)
	if err != nil {
		return deps, err
	}
	deps.Site = *site

	browser, err := config.LoadBrowserConfig(os.Getenv)
	if err != nil {
		return deps, err
	}
	deps.Browser = *browser

	if c.Bool("login") {
		account, err := config.LoadAccountConfig(os.Getenv)
		if err != nil {
			return deps, fmt.Errorf("missing required account configuration: %w", err)
		}
		deps.Account = account
	}

	return deps, nil
}

// SmokeCommand returns the smoke command
func SmokeCommand() *cli.Command {
	return &cli.Command{
		Name:  "smoke",
		Usage: "Search the site in a browser and print what the results page shows",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "what", Usage: "cuisine or restaurant to search"},
			&cli.StringFlag{Name: "where", Value: "Paris", Usage: "city to search in"},
			&cli.BoolFlag{Name: "login", Usage: "log the test account in before searching"},
			&cli.BoolFlag{Name: "record", Usage: "store the run in the report database"},
			&cli.BoolFlag{Name: "debug", Usage: "log page object checks"},
		},
		Action: func(c *cli.Context) error {
			log := newLogger(c.Bool("debug"))

			deps, err := buildSmokeDependencies(c, log)
			if err != nil {
				return err
			}

			if !c.Bool("record") && config.ReportDBConfigured(os.Getenv) {
				log.Debug("Report database configured, pass --record to store the run")
			}
			if c.Bool("record") {
				dbConfig, err := config.LoadReportDBConfig(os.Getenv)
				if err != nil {
					return fmt.Errorf("missing required report database configuration: %w", err)
				}
				if err := database.Connect(dbConfig); err != nil {
					return fmt.Errorf("failed to connect to database: %w", err)
				}
				defer database.Close()
				log.Info("Connected to database successfully")

				if err := database.RunMigrations(); err != nil {
					return fmt.Errorf("failed to run database migrations: %w", err)
				}
				deps.Runs = repository.NewRunRepository()
			}

			_, err = internalcli.RunSmoke(deps, internalcli.SmokeOptions{
				What:  c.String("what"),
				Where: c.String("where"),
				Login: c.Bool("login"),
			})
			return err
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logrus.Debug(".env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "webnextgen",
		Usage:   "Page object driven checks of the restaurant reservation site",
		Version: version,
		Commands: []*cli.Command{
			SandboxCommand(),
			SmokeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
