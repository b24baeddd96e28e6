// fnmatch pattern list
package lists

import (
	"path/filepath"
)

type Patterns []string

// Check verify patterns are valid.
//
// Use it before using Matches().
func (p Patterns) Check() error {
	for _, pattern := range p {
		_, err := filepath.Match(pattern, "pouet")
		if err != nil {
			return err
		}
	}
	return nil
}

// Matches returns all patterns matching item, in patterns order.
//
// Use Check() before using Matches(), it panics if a pattern is invalid.
func (p Patterns) Matches(item string) (out Patterns) {
	for _, pattern := range p {
		ok, err := filepath.Match(pattern, item)
		if err != nil {
			panic(err)
		}
		if ok {
			out = append(out, pattern)
		}
	}
	return
}

// Filter keeps items matching at least one pattern, in items order.
//
// Returns patterns matching no item as unmatched. A pattern counts as used
// even when an earlier pattern already selected the same item.
func Filter[T any](p Patterns, items []T, key func(T) string) (out []T, unmatched Patterns) {
	used := make(map[string]bool)
	for _, item := range items {
		matched := p.Matches(key(item))
		if len(matched) == 0 {
			continue
		}
		for _, pattern := range matched {
			used[pattern] = true
		}
		out = append(out, item)
	}
	for _, pattern := range p {
		if !used[pattern] {
			unmatched = append(unmatched, pattern)
		}
	}
	return
}
