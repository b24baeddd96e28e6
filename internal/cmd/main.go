package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dalibo/cartesian/internal"
	"github.com/dalibo/cartesian/internal/config"
	"github.com/dalibo/cartesian/internal/lists"
	"github.com/dalibo/cartesian/internal/perf"
	"github.com/dalibo/cartesian/internal/pyfmt"
	mapset "github.com/deckarep/golang-set/v2"
)

func Main() {
	defer logPanic()

	// Bootstrap logging first to log in setup.
	internal.SetLoggingHandler(slog.LevelInfo, internal.DefaultColor())
	err := loadDotEnv()
	if err != nil {
		slog.Warn("Failed to load .env file.", "err", err)
	}

	flags := newFlagSet()
	_ = flags.Parse(os.Args[1:])
	controller, err := loadController(flags)
	if err == nil {
		switch {
		case controller.Help:
			flags.Usage()
			return
		case controller.Version:
			showVersion(os.Stdout)
			return
		}
		err = cartesian(controller, os.Stdout)
	}
	if err == nil {
		return
	}

	var list interface{ Unwrap() []error }
	if errors.As(err, &list) {
		for _, err := range list.Unwrap() {
			slog.Error("Configuration error.", "err", err)
		}
	}
	slog.Error("Fatal error.", "err", err)
	if internal.CurrentLevel > slog.LevelDebug {
		slog.Error("Run cartesian with --verbose to get more informations.")
	}
	os.Exit(exitCode(err))
}

func cartesian(controller Controller, w io.Writer) (err error) {
	start := time.Now()
	internal.SetLoggingHandler(controller.LogLevel, controller.Color)
	slog.Debug("Starting cartesian.",
		"version", version(),
		"runtime", runtime.Version(),
		"commit", build.commit,
		"pid", os.Getpid(),
	)

	configPath := config.FindFile(controller.Config)
	if configPath == "" {
		return usageError(errors.New("no configuration file found"))
	}
	slog.Debug("Using YAML configuration file.", "path", configPath)
	c, err := config.Load(configPath)
	if err != nil {
		return
	}
	if internal.CurrentLevel <= slog.LevelDebug {
		c.Dump()
	}

	jobs, err := selectJobs(c, lists.Patterns(controller.Jobs))
	if err != nil {
		return
	}

	out := bufio.NewWriter(w)
	defer func() {
		ferr := out.Flush()
		if err == nil {
			err = ferr
		}
	}()

	var watch perf.StopWatch
	if controller.Count {
		err = count(out, c, jobs)
	} else {
		err = render(out, c, jobs, &watch)
	}
	if err != nil {
		return
	}

	slog.Debug("Done.",
		"elapsed", time.Since(start),
		"mempeak", perf.FormatBytes(perf.ReadVMPeak()),
		"jobs", len(jobs),
	)
	return
}

// selectJobs returns jobs matching patterns on command line, or all enabled
// jobs. Explicitly selected jobs run even if disabled.
func selectJobs(c config.Config, patterns lists.Patterns) (jobs []config.Job, err error) {
	if len(patterns) == 0 {
		for _, j := range c.Jobs {
			if !j.Enabled {
				slog.Debug("Skipping disabled job.", "job", j.Name)
				continue
			}
			jobs = append(jobs, j)
		}
	} else {
		err = patterns.Check()
		if err != nil {
			return nil, usageError(fmt.Errorf("bad job pattern: %w", err))
		}
		var unmatched lists.Patterns
		jobs, unmatched = lists.Filter(patterns, c.Jobs, func(j config.Job) string { return j.Name })
		if len(unmatched) > 0 {
			return nil, usageError(fmt.Errorf("no job matches %s", strings.Join(unmatched, ", ")))
		}
	}

	names := mapset.NewThreadUnsafeSet[string]()
	for _, j := range jobs {
		names.Add(j.Name)
	}
	slog.Debug("Selected jobs.", "jobs", names)
	return
}

func render(w io.Writer, c config.Config, jobs []config.Job, watch *perf.StopWatch) (err error) {
	total := 0
	for _, j := range jobs {
		slog.Debug("Running job.",
			"job", j.Name,
			"format", j.Format,
			"fields", pyfmt.ListExpressions(j.Format),
			"lengths", j.Lengths(c.Sources),
		)
		tuples := 0
		duration := watch.TimeIt(func() {
			for line := range j.Render(c.Sources) {
				_, err = fmt.Fprintln(w, line)
				if err != nil {
					return
				}
				tuples++
			}
		})
		if err != nil {
			return fmt.Errorf("%s: %w", j.Name, err)
		}
		slog.Debug("Job done.", "job", j.Name, "tuples", tuples, "duration", duration)
		total += tuples
	}
	slog.Info("Enumeration complete.",
		"jobs", watch.Count,
		"tuples", total,
		"duration", watch.Total,
		"rate", fmt.Sprintf("%.0f/s", watch.Rate(total)),
	)
	return
}

func count(w io.Writer, c config.Config, jobs []config.Job) error {
	for _, j := range jobs {
		n, ok := j.Count(c.Sources)
		if !ok {
			return fmt.Errorf("%s: tuple count overflows", j.Name)
		}
		_, err := fmt.Fprintf(w, "%s\t%d\n", j.Name, n)
		if err != nil {
			return err
		}
	}
	return nil
}

func logPanic() {
	r := recover()
	if r == nil {
		return
	}
	slog.Error("Panic!", "err", r)
	buf := debug.Stack()
	fmt.Fprintf(os.Stderr, "%s", buf)
	slog.Error("Aborting cartesian.", "err", r)
	if internal.CurrentLevel > slog.LevelDebug {
		slog.Error("Run cartesian with --verbose to get more informations.")
	}
	slog.Error("Please file an issue at https://github.com/dalibo/cartesian/issues/new with verbose log.")
	os.Exit(1)
}

// exitError carries an exit code up to Main, so deferred functions run before
// os.Exit.
type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string {
	return e.err.Error()
}

func (e exitError) Unwrap() error {
	return e.err
}

// usageError exits with 2, like pflag does on bad flags.
func usageError(err error) error {
	return exitError{code: 2, err: err}
}

// exitCode returns 0 on success, the code carried by err, or 1.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var e exitError
	if errors.As(err, &e) {
		return e.code
	}
	return 1
}
