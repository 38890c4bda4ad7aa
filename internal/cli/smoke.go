package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/forkqa/webnextgen/internal/config"
	"github.com/forkqa/webnextgen/internal/driver"
	"github.com/forkqa/webnextgen/internal/driver/playwright"
	"github.com/forkqa/webnextgen/internal/driver/webdriver"
	"github.com/forkqa/webnextgen/internal/models"
	"github.com/forkqa/webnextgen/internal/pages"
	"github.com/forkqa/webnextgen/internal/report"
)

// SmokeScenario names the search scenario in recorded runs
const SmokeScenario = "search"

// RunStore persists smoke runs and their steps
type RunStore interface {
	report.StepStore
	CreateRun(run *models.Run) error
	FinishRun(run *models.Run) error
}

// SmokeOptions selects what the smoke scenario does
type SmokeOptions struct {
	What  string
	Where string
	// Login logs the test account in before searching
	Login bool
}

// SmokeDependencies holds everything needed to run the smoke scenario
type SmokeDependencies struct {
	Site    config.SiteConfig
	Browser config.BrowserConfig
	// Account is required when SmokeOptions.Login is set
	Account *config.AccountConfig
	// OpenSession starts the browser; nil uses OpenBrowser
	OpenSession func(cfg config.BrowserConfig) (driver.Session, error)
	// Runs records the run when set
	Runs RunStore
	Log  logrus.FieldLogger
	Out  io.Writer
}

// SmokeResult is what the scenario observed
type SmokeResult struct {
	Restaurants int
	// FirstSlot is the hour of the first slot of the first result, or ""
	FirstSlot string
	// Run is the recorded run, nil when recording is off
	Run *models.Run
}

// OpenBrowser launches the configured automation backend
func OpenBrowser(cfg config.BrowserConfig) (driver.Session, error) {
	switch cfg.Backend {
	case config.BackendSelenium:
		return webdriver.Dial(webdriver.Options{
			URL:      cfg.SeleniumURL,
			Browser:  cfg.Browser,
			Headless: cfg.Headless,
			Width:    1440,
			Height:   900,
		})
	case config.BackendPlaywright, "":
		opts := playwright.DefaultOptions()
		opts.Browser = cfg.Browser
		opts.Headless = cfg.Headless
		opts.SlowMo = cfg.SlowMo
		return playwright.Launch(opts)
	default:
		return nil, fmt.Errorf("unsupported browser backend %q", cfg.Backend)
	}
}

// RunSmoke opens the home page, optionally logs in, searches and prints what
// the search page shows
func RunSmoke(deps SmokeDependencies, opts SmokeOptions) (*SmokeResult, error) {
	log := deps.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	out := deps.Out
	if out == nil {
		out = io.Discard
	}
	if opts.Login && deps.Account == nil {
		return nil, errors.New("login requested without account configuration")
	}

	open := deps.OpenSession
	if open == nil {
		open = OpenBrowser
	}

	result := &SmokeResult{}
	var reporter report.Reporter = report.LogReporter{Log: log}
	if deps.Runs != nil {
		run, err := models.NewRun(SmokeScenario, deps.Site.BaseURL, deps.Browser.Backend)
		if err != nil {
			return nil, err
		}
		if err := deps.Runs.CreateRun(run); err != nil {
			return nil, err
		}
		result.Run = run
		reporter = report.Multi(reporter, report.NewDBReporter(deps.Runs, run.ID, log))
		log.WithField("run", run.ID).Info("Recording run")
	}

	session, err := open(deps.Browser)
	if err != nil {
		err = fmt.Errorf("failed to open browser: %w", err)
		return result, finishRun(deps.Runs, result.Run, err, log)
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.WithError(err).Warn("Failed to close browser")
		}
	}()

	env := pages.Env{
		Driver:   session,
		Reporter: reporter,
		Log:      log,
		BaseURL:  deps.Site.BaseURL,
	}
	err = searchScenario(env, deps.Account, opts, result)
	if err == nil {
		fmt.Fprintf(out, "Restaurants: %d\n", result.Restaurants)
		if result.FirstSlot != "" {
			fmt.Fprintf(out, "First time slot: %s\n", result.FirstSlot)
		} else {
			fmt.Fprintln(out, "First time slot: none")
		}
	}
	return result, finishRun(deps.Runs, result.Run, err, log)
}

func searchScenario(env pages.Env, account *config.AccountConfig, opts SmokeOptions, result *SmokeResult) error {
	home, err := pages.OpenHomePage(env)
	if err != nil {
		return err
	}
	if opts.Login {
		if home, err = home.Login(account.Email, account.Password); err != nil {
			return err
		}
	}

	search, err := home.Search(opts.What, opts.Where)
	if err != nil {
		return err
	}
	if result.Restaurants, err = search.NumberOfRestaurants(); err != nil {
		return err
	}

	results := search.Results()
	if results.Count() == 0 {
		return nil
	}
	first, err := results.Result(0)
	if err != nil {
		return err
	}
	slots, err := first.NumberOfTimeSlots()
	if err != nil || slots == 0 {
		return err
	}
	result.FirstSlot, err = first.TimeSlotHour(0)
	return err
}

// finishRun stores the outcome of run and returns the scenario error
func finishRun(runs RunStore, run *models.Run, scenarioErr error, log logrus.FieldLogger) error {
	if run == nil {
		return scenarioErr
	}
	if scenarioErr != nil {
		if err := run.Fail(scenarioErr.Error()); err != nil {
			return err
		}
	} else if err := run.Pass(); err != nil {
		return err
	}

	if err := runs.FinishRun(run); err != nil {
		log.WithError(err).Error("Failed to record run outcome")
		if scenarioErr == nil {
			return err
		}
	}
	log.WithFields(logrus.Fields{
		"run":      run.ID,
		"status":   run.Status,
		"duration": run.Duration(),
	}).Info("Run finished")
	return scenarioErr
}
