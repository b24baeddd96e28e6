package internal

import (
	"io"
	"log/slog"
	"os"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

var CurrentLevel slog.Level

var levelStrings = map[slog.Level]string{
	slog.LevelDebug: "\033[2mDEBUG",
	slog.LevelInfo:  "\033[1mINFO ",
	slog.LevelWarn:  "\033[1;38;5;185mWARN ",
	slog.LevelError: "\033[1;31mERROR",
}

// DefaultColor enables color on terminals, unless NO_COLOR is set.
func DefaultColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stderr.Fd())
}

// SetLoggingHandler sets the default logger to stderr.
func SetLoggingHandler(level slog.Level, color bool) {
	CurrentLevel = level
	slog.SetDefault(slog.New(NewHandler(os.Stderr, level, color)))
}

// NewHandler returns a tint handler when color is on, a text handler
// otherwise.
//
// Both render string sets like job names as sorted lists.
func NewHandler(w io.Writer, level slog.Level, color bool) slog.Handler {
	if !color {
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: replaceSet,
		})
	}
	return tint.NewHandler(w, &tint.Options{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && len(groups) == 0 {
				level, ok := a.Value.Any().(slog.Level)
				if ok {
					a.Value = slog.StringValue(levelStrings[level] + "\033[0m")
				}
			}
			if a.Key == "err" && a.Value.Kind() == slog.KindAny && a.Value.Any() == nil {
				// Drop nil error.
				a.Key = ""
			}
			return replaceSet(groups, a)
		},
		TimeFormat: "15:04:05",
	})
}

func replaceSet(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindAny {
		return a
	}
	set, ok := a.Value.Any().(mapset.Set[string])
	if ok {
		items := set.ToSlice()
		slices.Sort(items)
		a.Value = slog.AnyValue(items)
	}
	return a
}
