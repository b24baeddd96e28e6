package config

import (
	"iter"

	"github.com/dalibo/cartesian/internal/pyfmt"
	"github.com/dalibo/cartesian/product"
)

// Job describes one product to enumerate.
//
// Either Source is repeated Repeat times, or each of Sources gives one
// position.
type Job struct {
	Name    string
	Enabled bool
	Source  string
	Repeat  int
	Sources []string
	Format  pyfmt.Format
}

// Arity returns the length of tuples.
func (j Job) Arity() int {
	if j.Source != "" {
		return j.Repeat
	}
	return len(j.Sources)
}

// Lengths returns the length of the source feeding each position.
func (j Job) Lengths(sources map[string][]string) []int {
	if j.Source != "" {
		lengths := make([]int, j.Repeat)
		for i := range lengths {
			lengths[i] = len(sources[j.Source])
		}
		return lengths
	}
	lengths := make([]int, len(j.Sources))
	for i, name := range j.Sources {
		lengths[i] = len(sources[name])
	}
	return lengths
}

// Count returns the number of tuples, false on overflow.
func (j Job) Count(sources map[string][]string) (int, bool) {
	if j.Source != "" {
		return product.RepeatCount(len(sources[j.Source]), j.Repeat)
	}
	return product.Count(j.Lengths(sources)...)
}

// Tuples enumerates the product described by the job.
//
// Short repeats use the fixed-size iterator.
func (j Job) Tuples(sources map[string][]string) iter.Seq[[]string] {
	if j.Source == "" {
		lists := make([][]string, len(j.Sources))
		for i, name := range j.Sources {
			lists[i] = sources[name]
		}
		return product.Product(lists...)
	}

	source := sources[j.Source]
	switch j.Repeat {
	case 1:
		return toSlices(product.FixedRepeat[[1]string](source))
	case 2:
		return toSlices(product.FixedRepeat[[2]string](source))
	case 3:
		return toSlices(product.FixedRepeat[[3]string](source))
	default:
		return product.Repeat(source, j.Repeat)
	}
}

// Render formats each tuple with the job format.
func (j Job) Render(sources map[string][]string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for item := range j.Tuples(sources) {
			if !yield(j.Format.FormatTuple(item)) {
				return
			}
		}
	}
}

// inferFormat defaults format to space separated fields when the job has no
// format key. An explicit empty format renders empty lines.
func (j *Job) inferFormat(yaml map[string]any) {
	if yaml["format"] == nil {
		j.Format = pyfmt.Default(j.Arity())
	}
}

func toSlices[A product.Tuple[string]](seq iter.Seq[A]) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for item := range seq {
			s := make([]string, len(item))
			for i := 0; i < len(item); i++ {
				s[i] = item[i]
			}
			if !yield(s) {
				return
			}
		}
	}
}
