package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/dalibo/cartesian/internal"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/lithammer/dedent"
	"github.com/spf13/pflag"
)

func newFlagSet() *pflag.FlagSet {
	f := pflag.NewFlagSet("cartesian", pflag.ExitOnError)
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [OPTIONS]\n\n", f.Name())
		f.PrintDefaults()
		os.Stderr.WriteString(dedent.Dedent(`

		cartesian renders the Cartesian products described in a YAML configuration file.
		Each tuple is printed on its own line, through the job format.
		`)) //nolint:errcheck
	}

	f.Bool("color", internal.DefaultColor(), "Force color output.")
	f.StringP("config", "c", "", "Path to YAML configuration file. Use - for stdin.")
	f.BoolP("count", "n", false, "Print tuple count of each job instead of tuples.")
	f.StringSliceP("job", "j", nil, "Run only jobs matching this pattern. Repeatable.")
	f.BoolP("help", "?", false, "Show this help message and exit.")
	f.BoolP("version", "V", false, "Show version and exit.")
	f.CountP("quiet", "q", "Decrease log verbosity.")
	f.CountP("verbose", "v", "Increase log verbosity.")
	return f
}

// Controller holds flags/env values controlling the execution of cartesian.
type Controller struct {
	Color     bool     `koanf:"color"`
	Config    string   `koanf:"config"`
	Count     bool     `koanf:"count"`
	Jobs      []string `koanf:"job"`
	Help      bool     `koanf:"help"`
	Version   bool     `koanf:"version"`
	Quiet     int      `koanf:"quiet"`
	Verbose   int      `koanf:"verbose"`
	Verbosity string   `koanf:"verbosity"`
	LogLevel  slog.Level
}

var levels = []slog.Level{
	slog.LevelDebug,
	slog.LevelInfo,
	slog.LevelWarn,
	slog.LevelError,
}

// loadDotEnv reads .env in working directory, if any.
func loadDotEnv() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err == nil {
		slog.Debug("Loaded .env file.")
	}
	return err
}

// loadController merges defaults, CARTESIAN_* environment and flags.
func loadController(f *pflag.FlagSet) (controller Controller, err error) {
	k := koanf.New(".")

	_ = k.Load(confmap.Provider(map[string]any{
		"color":     internal.DefaultColor(),
		"config":    "",
		"verbosity": "",
	}, k.Delim()), nil)

	_ = k.Load(env.Provider("CARTESIAN_", k.Delim(), func(key string) string {
		slog.Debug("Loading environment var.", "var", key)
		return strings.ToLower(strings.TrimPrefix(key, "CARTESIAN_"))
	}), nil)

	err = k.Load(posflag.Provider(f, k.Delim(), k), nil)
	if err != nil {
		return
	}

	err = k.Unmarshal("", &controller)
	if err != nil {
		return
	}

	switch controller.Verbosity {
	case "":
		// Default log level is INFO, which index is 1.
		levelIndex := 1 - controller.Verbose + controller.Quiet
		levelIndex = max(0, levelIndex)
		levelIndex = min(levelIndex, len(levels)-1)
		controller.LogLevel = levels[levelIndex]
	default:
		var level slog.LevelVar
		err = level.UnmarshalText([]byte(controller.Verbosity))
		if err != nil {
			return controller, fmt.Errorf("bad CARTESIAN_VERBOSITY: %w", err)
		}
		controller.LogLevel = level.Level()
	}
	return
}
