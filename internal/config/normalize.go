// Functions to normalize YAML input before processing into data structure.
package config

import (
	"errors"
	"fmt"

	"github.com/dalibo/cartesian/internal/errorlist"
	"github.com/dalibo/cartesian/internal/normalize"
)

func NormalizeConfigRoot(yaml any) (root map[string]any, err error) {
	root, ok := yaml.(map[string]any)
	if !ok {
		return nil, errors.New("bad configuration format")
	}
	err = normalize.SpuriousKeys(root, "version", "sources", "jobs")
	if err != nil {
		return
	}

	sources, err := NormalizeSources(root["sources"])
	if err != nil {
		return nil, fmt.Errorf("sources: %w", err)
	}
	root["sources"] = sources

	jobs, err := NormalizeJobs(root["jobs"])
	if err != nil {
		return nil, err
	}
	root["jobs"] = jobs
	return
}

// NormalizeSources ensures sources is a map of string lists.
//
// A scalar source is a list of one element.
func NormalizeSources(yaml any) (sources map[string]any, err error) {
	sources = make(map[string]any)
	switch v := yaml.(type) {
	case nil:
		return
	case map[string]any:
		for name, values := range v {
			list, err := normalize.Scalars(values)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			if list == nil {
				list = []string{}
			}
			sources[name] = list
		}
	default:
		return nil, fmt.Errorf("bad value %v, must be a map", yaml)
	}
	return
}

// NormalizeJobs normalizes every job, collecting errors.
func NormalizeJobs(yaml any) (jobs []any, err error) {
	if yaml == nil {
		return nil, errors.New("no jobs")
	}
	errs := errorlist.New("jobs errors")
	for i, item := range normalize.List(yaml) {
		job, err := NormalizeJob(item)
		if err != nil {
			if !errs.Append(fmt.Errorf("jobs[%d]: %w", i, err)) {
				break
			}
			continue
		}
		if _, ok := job["name"]; !ok {
			job["name"] = fmt.Sprintf("job%d", i)
		}
		jobs = append(jobs, job)
	}
	if errs.Len() > 0 {
		return nil, errs
	}
	return
}

func NormalizeJob(yaml any) (job map[string]any, err error) {
	switch v := yaml.(type) {
	case string:
		// - letters is a job over the single source letters.
		return map[string]any{
			"name":    v,
			"enabled": true,
			"source":  v,
			"repeat":  1,
		}, nil
	case map[string]any:
		job = v
	default:
		return nil, fmt.Errorf("bad value %v, must be a map", yaml)
	}

	err = normalize.Alias(job, "sources", "product")
	if err != nil {
		return
	}
	err = normalize.Alias(job, "repeat", "times")
	if err != nil {
		return
	}
	err = normalize.SpuriousKeys(job, "name", "enabled", "source", "repeat", "sources", "format")
	if err != nil {
		return
	}
	err = normalize.Strings(job, "name", "source", "format")
	if err != nil {
		return
	}

	job["enabled"], err = normalize.Boolean(job["enabled"], true)
	if err != nil {
		return nil, fmt.Errorf("enabled: %w", err)
	}

	_, hasSource := job["source"]
	sources, hasSources := job["sources"]
	switch {
	case hasSource && hasSources:
		return nil, errors.New("source and sources are mutually exclusive")
	case hasSources:
		if _, ok := job["repeat"]; ok {
			return nil, errors.New("repeat requires source")
		}
		job["sources"], err = normalize.StringList(sources)
		if err != nil {
			return nil, fmt.Errorf("sources: %w", err)
		}
	case hasSource:
		if job["source"] == "" {
			return nil, errors.New("source must not be empty")
		}
		if _, ok := job["repeat"]; !ok {
			job["repeat"] = 1
		}
	default:
		return nil, errors.New("missing source or sources")
	}
	return
}
