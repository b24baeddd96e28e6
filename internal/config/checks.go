package config

import (
	"errors"
	"fmt"

	"github.com/dalibo/cartesian/internal/errorlist"
	mapset "github.com/deckarep/golang-set/v2"
)

// Check validates jobs against sources.
//
// Returns an errorlist of every problem found, up to errorlist.Max.
func (c Config) Check() error {
	errs := errorlist.New("configuration errors")
	names := mapset.NewThreadUnsafeSet[string]()
	for _, j := range c.Jobs {
		if !names.Add(j.Name) {
			if !errs.Append(fmt.Errorf("%s: duplicate job name", j.Name)) {
				break
			}
			continue
		}
		if !errs.Extend(c.checkJob(j)) {
			break
		}
	}
	return errs.Err()
}

// checkJob joins all problems of one job.
func (c Config) checkJob(j Job) error {
	var errs []error
	for _, name := range append([]string{j.Source}, j.Sources...) {
		if name == "" {
			continue
		}
		if _, ok := c.Sources[name]; !ok {
			errs = append(errs, fmt.Errorf("%s: unknown source %s", j.Name, name))
		}
	}
	if j.Repeat < 0 {
		errs = append(errs, fmt.Errorf("%s: negative repeat %d", j.Name, j.Repeat))
		return errors.Join(errs...)
	}
	positions, err := j.Format.Positions()
	if err != nil {
		errs = append(errs, fmt.Errorf("%s: format: %w", j.Name, err))
	}
	for _, p := range positions {
		if p >= j.Arity() {
			errs = append(errs, fmt.Errorf("%s: format: field {%d} out of tuple of %d", j.Name, p, j.Arity()))
		}
	}
	return errors.Join(errs...)
}
