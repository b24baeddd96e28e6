package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"

	"github.com/dalibo/cartesian/internal/pyfmt"
	"github.com/mattn/go-isatty"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Marshall YAML from file path or stdin if path is -.
func ReadYaml(path string) (values any, err error) {
	var fo io.ReadCloser
	if path == "-" {
		slog.Info("Reading configuration from standard input.")
		fo = os.Stdin
	} else {
		fo, err = os.Open(path)
		if err != nil {
			return
		}
	}
	defer fo.Close() //nolint:errcheck
	dec := yaml.NewDecoder(fo)
	err = dec.Decode(&values)
	if errors.Is(err, io.EOF) {
		err = errors.New("empty YAML")
	}
	return
}

// Fill configuration from YAML data.
func (c *Config) LoadYaml(yamlData any) (err error) {
	err = c.checkVersion(yamlData)
	if err != nil {
		return
	}
	root, err := NormalizeConfigRoot(yamlData)
	if err != nil {
		return fmt.Errorf("YAML error: %w", err)
	}
	err = c.DecodeYaml(root)
	if err != nil {
		return
	}
	c.yaml = root

	jobs := root["jobs"].([]any)
	for i := range c.Jobs {
		c.Jobs[i].inferFormat(jobs[i].(map[string]any))
	}

	err = c.Check()
	if err != nil {
		return
	}

	slog.Debug("Loaded configuration file.", "version", c.Version, "sources", len(c.Sources), "jobs", len(c.Jobs))
	return
}

// Dump writes normalized YAML to stderr.
func (c Config) Dump() {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	_ = encoder.Encode(c.yaml)
	encoder.Close() //nolint:errcheck
	color := isatty.IsTerminal(os.Stderr.Fd())
	slog.Debug("Dumping normalized YAML to stderr.")
	if color {
		os.Stderr.WriteString("\033[0;2m") //nolint:errcheck
	}
	os.Stderr.WriteString(buf.String()) //nolint:errcheck
	if color {
		os.Stderr.WriteString("\033[0m") //nolint:errcheck
	}
}

// Wrap mapstructure for config object
func (c *Config) DecodeYaml(yaml any) (err error) {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       decodeMapHook,
		Metadata:         &mapstructure.Metadata{},
		Result:           c,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return
	}
	err = d.Decode(yaml)
	return
}

// Decode custom types for mapstructure. Implements mapstructure.DecodeHookFuncValue.
func decodeMapHook(from, to reflect.Value) (any, error) {
	switch to.Type() {
	case reflect.TypeOf(pyfmt.Format{}):
		if from.Kind() != reflect.String {
			return from.Interface(), nil
		}
		f := to.Interface().(pyfmt.Format)
		err := f.Parse(from.String())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", from.String(), err)
		}
		return f, nil
	}
	return from.Interface(), nil
}

func (c *Config) checkVersion(yaml any) (err error) {
	yamlMap, ok := yaml.(map[string]any)
	if !ok {
		return errors.New("YAML is not a map")
	}
	version, ok := yamlMap["version"]
	if !ok {
		slog.Debug("Fallback to version 1.")
		version = 1
	}
	c.Version, ok = version.(int)
	if !ok {
		return errors.New("configuration version must be integer")
	}
	if c.Version != 1 {
		slog.Debug("Unsupported configuration version.", "version", c.Version)
		return errors.New("configuration version must be 1")
	}
	return
}
