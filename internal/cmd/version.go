package cmd

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"slices"
)

// Version is set by main from ldflags.
var Version string

// Modules shown by --version, besides cartesian itself.
var mainDeps = []string{
	"github.com/knadh/koanf/v2",
	"github.com/lmittmann/tint",
	"github.com/spf13/pflag",
	"gopkg.in/yaml.v3",
}

var build = readBuild(debug.ReadBuildInfo())

type buildInfo struct {
	version string
	commit  string
	dirty   bool
	deps    map[string]string
}

func readBuild(bi *debug.BuildInfo, ok bool) (b buildInfo) {
	b.deps = make(map[string]string)
	if !ok {
		return
	}
	b.version = bi.Main.Version
	for _, mod := range bi.Deps {
		if slices.Contains(mainDeps, mod.Path) {
			b.deps[mod.Path] = mod.Version
		}
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			b.commit = s.Value[:min(8, len(s.Value))]
		case "vcs.modified":
			b.dirty = s.Value == "true"
		}
	}
	return
}

func version() string {
	if Version != "" {
		return Version
	}
	if build.version == "" || build.version == "(devel)" {
		return "devel"
	}
	return build.version
}

func showVersion(w io.Writer) {
	commit := build.commit
	if build.dirty {
		commit += "-dirty"
	}
	if commit == "" {
		fmt.Fprintf(w, "cartesian %s\n", version())
	} else {
		fmt.Fprintf(w, "cartesian %s (%s)\n", version(), commit)
	}
	for _, path := range mainDeps {
		v, ok := build.deps[path]
		if !ok {
			v = "unknown"
		}
		fmt.Fprintf(w, "%s %s\n", path, v)
	}
	fmt.Fprintf(w, "%s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
