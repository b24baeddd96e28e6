package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"

	"github.com/dalibo/cartesian/internal/config"
	"github.com/lithammer/dedent"
	"gopkg.in/yaml.v3"
)

func loadYaml(rawYaml string) (config.Config, error) {
	var value any
	err := yaml.Unmarshal([]byte(dedent.Dedent(rawYaml)), &value)
	if err != nil {
		panic(err)
	}
	c := config.New()
	err = c.LoadYaml(value)
	return c, err
}

func (suite *Suite) TestLoadMinimal() {
	r := suite.Require()

	c, err := loadYaml(`
	version: 1
	sources:
	  letters: [A, B]
	jobs:
	- letters
	`)
	r.Nil(err)
	r.Equal(1, c.Version)
	r.Equal([]string{"A", "B"}, c.Sources["letters"])
	r.Len(c.Jobs, 1)

	j := c.Jobs[0]
	r.Equal("letters", j.Name)
	r.True(j.Enabled)
	r.Equal(1, j.Repeat)
	r.Equal("{}", j.Format.String())
	r.Equal([]string{"A", "B"}, slices.Collect(j.Render(c.Sources)))
}

func (suite *Suite) TestLoadJobs() {
	r := suite.Require()

	c, err := loadYaml(`
	sources:
	  letters: [A, B]
	  digits: [1, 2, 3]
	  single: X
	jobs:
	- name: pairs
	  source: letters
	  repeat: 2
	  format: "{0}{1}"
	- name: grid
	  product: [letters, digits]
	  format: "{0.lower()}-{1}"
	- name: nothing
	  source: single
	  repeat: 0
	  enabled: no
	`)
	r.Nil(err)
	r.Equal(1, c.Version)
	r.Equal([]string{"X"}, c.Sources["single"])

	pairs, ok := c.Job("pairs")
	r.True(ok)
	r.Equal([]string{"AA", "AB", "BA", "BB"}, slices.Collect(pairs.Render(c.Sources)))
	n, ok := pairs.Count(c.Sources)
	r.True(ok)
	r.Equal(4, n)

	grid, ok := c.Job("grid")
	r.True(ok)
	r.Equal([]string{"letters", "digits"}, grid.Sources)
	r.Equal([]int{2, 3}, grid.Lengths(c.Sources))
	r.Equal([]string{"a-1", "a-2", "a-3", "b-1", "b-2", "b-3"}, slices.Collect(grid.Render(c.Sources)))

	nothing, ok := c.Job("nothing")
	r.True(ok)
	r.False(nothing.Enabled)
	r.Equal(0, nothing.Arity())
	r.Equal([]string{""}, slices.Collect(nothing.Render(c.Sources)))
}

func (suite *Suite) TestLoadRepeatIterators() {
	r := suite.Require()

	c, err := loadYaml(`
	sources:
	  bits: [0, 1]
	jobs:
	- {name: r1, source: bits, repeat: 1}
	- {name: r2, source: bits, repeat: 2}
	- {name: r3, source: bits, repeat: 3}
	- {name: r4, source: bits, repeat: 4}
	`)
	r.Nil(err)
	for i, j := range c.Jobs {
		lines := slices.Collect(j.Render(c.Sources))
		r.Len(lines, 1<<(i+1), j.Name)
		r.Equal(j.Arity(), len(j.Lengths(c.Sources)))
	}
	r3, _ := c.Job("r3")
	r.Equal("0 1 1", slices.Collect(r3.Render(c.Sources))[3])
}

func (suite *Suite) TestLoadEmptySource() {
	r := suite.Require()

	c, err := loadYaml(`
	sources:
	  empty: []
	  letters: [A]
	jobs:
	- {name: repeat, source: empty, repeat: 3}
	- {name: product, sources: [letters, empty]}
	`)
	r.Nil(err)
	for _, j := range c.Jobs {
		r.Empty(slices.Collect(j.Render(c.Sources)), j.Name)
		n, ok := j.Count(c.Sources)
		r.True(ok)
		r.Equal(0, n)
	}
}

func (suite *Suite) TestLoadBadVersion() {
	r := suite.Require()

	_, err := loadYaml(`
	version: 6
	jobs: [letters]
	`)
	r.ErrorContains(err, "version must be 1")

	_, err = loadYaml(`
	version: one
	`)
	r.ErrorContains(err, "must be integer")
}

func (suite *Suite) TestLoadNormalizeErrors() {
	r := suite.Require()

	_, err := loadYaml(`
	sources:
	  letters: [A]
	jobs:
	- {name: both, source: letters, sources: [letters]}
	- {name: neither}
	- {name: typo, source: letters, reapet: 2}
	- {name: repeat, sources: [letters], repeat: 2}
	- {name: empty, source: ""}
	- [nested]
	`)
	r.Error(err)
	var list interface{ Unwrap() []error }
	r.True(errors.As(err, &list))
	errs := list.Unwrap()
	r.Len(errs, 6)
	r.ErrorContains(errs[0], "jobs[0]: source and sources are mutually exclusive")
	r.ErrorContains(errs[1], "jobs[1]: missing source or sources")
	r.ErrorContains(errs[2], "jobs[2]: unknown key 'reapet'")
	r.ErrorContains(errs[3], "jobs[3]: repeat requires source")
	r.ErrorContains(errs[4], "jobs[4]: source must not be empty")
	r.ErrorContains(errs[5], "jobs[5]: bad value")
}

func (suite *Suite) TestLoadCheckErrors() {
	r := suite.Require()

	_, err := loadYaml(`
	sources:
	  letters: [A]
	jobs:
	- {name: unknown, source: digits}
	- {name: unknown, source: letters}
	- {name: negative, source: letters, repeat: -1}
	- {name: field, sources: [letters], format: "{1}"}
	- {name: named, sources: [letters], format: "{letter}"}
	- {name: ok, sources: [letters]}
	`)
	r.Error(err)
	var list interface{ Unwrap() []error }
	r.True(errors.As(err, &list))
	errs := list.Unwrap()
	r.Len(errs, 5)
	r.ErrorContains(errs[0], "unknown: unknown source digits")
	r.ErrorContains(errs[1], "unknown: duplicate job name")
	r.ErrorContains(errs[2], "negative: negative repeat -1")
	r.ErrorContains(errs[3], "field: format: field {1} out of tuple of 1")
	r.ErrorContains(errs[4], "named: format: field {letter} is not a position")
}

func (suite *Suite) TestLoadBadFormat() {
	r := suite.Require()

	_, err := loadYaml(`
	sources:
	  letters: [A]
	jobs:
	- {source: letters, format: "{0"}
	`)
	r.ErrorContains(err, "{0")
}

func (suite *Suite) TestLoadFile() {
	r := suite.Require()

	path := filepath.Join(suite.T().TempDir(), "cartesian.yml")
	err := os.WriteFile(path, []byte(dedent.Dedent(`
	version: 1
	sources:
	  letters: [A, B]
	jobs:
	- letters
	`)), 0o600)
	r.Nil(err)

	r.Equal(path, config.FindFile(path))
	c, err := config.Load(path)
	r.Nil(err)
	r.Len(c.Jobs, 1)

	_, err = config.Load(filepath.Join(suite.T().TempDir(), "missing.yml"))
	r.ErrorIs(err, os.ErrNotExist)
}

func (suite *Suite) TestLoadEmptyFile() {
	r := suite.Require()

	path := filepath.Join(suite.T().TempDir(), "cartesian.yml")
	r.Nil(os.WriteFile(path, nil, 0o600))
	_, err := config.Load(path)
	r.ErrorContains(err, "empty YAML")
}

func (suite *Suite) TestLoadFormatPresence() {
	r := suite.Require()

	c, err := loadYaml(`
	sources:
	  letters: [A, B]
	jobs:
	- {name: default, source: letters, times: 2}
	- {name: blank, source: letters, format: ""}
	- {name: tilde, source: letters, format: ~}
	`)
	r.Nil(err)

	j, _ := c.Job("default")
	r.Equal(2, j.Repeat)
	r.Equal("{} {}", j.Format.String())
	r.Equal([]string{"A A", "A B", "B A", "B B"}, slices.Collect(j.Render(c.Sources)))

	j, _ = c.Job("blank")
	r.Equal("", j.Format.String())
	r.Equal([]string{"", ""}, slices.Collect(j.Render(c.Sources)))

	j, _ = c.Job("tilde")
	r.Equal("{}", j.Format.String())
	r.Equal([]string{"A", "B"}, slices.Collect(j.Render(c.Sources)))
}

func (suite *Suite) TestLoadKeyErrors() {
	r := suite.Require()

	_, err := loadYaml(`
	sources:
	  letters: [A]
	jobs:
	- {name: twice, source: letters, repeat: 2, times: 3}
	- {name: maybe, source: letters, enabled: maybe}
	- {name: typos, source: letters, reapet: 2, fromat: "{0}"}
	`)
	var list interface{ Unwrap() []error }
	r.True(errors.As(err, &list))
	errs := list.Unwrap()
	r.Len(errs, 3)
	r.EqualError(errs[0], "jobs[0]: repeat and times are the same key, use only repeat")
	r.EqualError(errs[1], "jobs[1]: enabled: bad value maybe, must be boolean")
	r.EqualError(errs[2], "jobs[2]: unknown keys 'fromat', 'reapet'")
}

func (suite *Suite) TestLoadCheckJobErrors() {
	r := suite.Require()

	_, err := loadYaml(`
	sources:
	  letters: [A]
	jobs:
	- {name: grid, sources: [letters, digits, symbols], format: "{0}{3}{4}"}
	`)
	var list interface{ Unwrap() []error }
	r.True(errors.As(err, &list))
	errs := list.Unwrap()
	r.Len(errs, 4)
	r.EqualError(errs[0], "grid: unknown source digits")
	r.EqualError(errs[1], "grid: unknown source symbols")
	r.EqualError(errs[2], "grid: format: field {3} out of tuple of 3")
	r.EqualError(errs[3], "grid: format: field {4} out of tuple of 3")
	r.EqualError(err, "configuration errors (4)")
}
