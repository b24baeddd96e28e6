package config

import (
	"log/slog"
	"os"
	"path"
)

func FindFile(userValue string) (configpath string) {
	if "" != userValue {
		return userValue
	}

	slog.Debug("Searching configuration file in standard locations.")
	home, _ := os.UserHomeDir()
	candidates := []string{
		"./cartesian.yml",
		"./cartesian.yaml",
		path.Join(home, "/.config/cartesian.yml"),
		path.Join(home, "/.config/cartesian.yaml"),
		"/etc/cartesian.yml",
		"/etc/cartesian.yaml",
	}

	for _, candidate := range candidates {
		_, err := os.Stat(candidate)
		if err == nil {
			slog.Debug("Found configuration file.",
				"path", candidate)

			return candidate
		}
		slog.Debug("Ignoring configuration file.",
			"path", candidate,
			"err", err)
	}

	return ""
}

// Config holds the YAML configuration. Not the flags.
type Config struct {
	yaml    map[string]any
	Version int
	Sources map[string][]string
	Jobs    []Job
}

// New initiate a config structure with defaults.
func New() Config {
	return Config{
		Sources: make(map[string][]string),
	}
}

func Load(path string) (Config, error) {
	c := New()
	err := c.Load(path)
	return c, err
}

func (c *Config) Load(path string) (err error) {
	slog.Debug("Loading YAML configuration.")

	yamlData, err := ReadYaml(path)
	if err != nil {
		return
	}
	return c.LoadYaml(yamlData)
}

// Job returns the job with this name.
func (c Config) Job(name string) (Job, bool) {
	for _, j := range c.Jobs {
		if j.Name == name {
			return j, true
		}
	}
	return Job{}, false
}
