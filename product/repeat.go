package product

import (
	"fmt"
	"iter"
	"slices"
)

// RepeatIter yields all tuples of a fixed length drawn from one source, with
// repetition.
type RepeatIter[T any] struct {
	odometer
	source []T
	digits []int
}

// NewRepeat returns an iterator over source repeated repeat times.
//
// Yields len(source)^repeat tuples. Zero repeat yields one empty tuple.
// Panics if repeat is negative.
func NewRepeat[T any](source []T, repeat int) *RepeatIter[T] {
	if repeat < 0 {
		panic(fmt.Sprintf("product: negative repeat %d", repeat))
	}
	it := &RepeatIter[T]{
		source: source,
		digits: make([]int, repeat),
	}
	it.start(repeat, it.radix)
	return it
}

// Repeat is a shorthand for NewRepeat(source, repeat).All().
func Repeat[T any](source []T, repeat int) iter.Seq[[]T] {
	return NewRepeat(source, repeat).All()
}

func (it *RepeatIter[T]) radix(int) int {
	return len(it.source)
}

// Next returns a new tuple and true, or nil and false once exhausted.
func (it *RepeatIter[T]) Next() ([]T, bool) {
	if it.done {
		return nil, false
	}
	item := make([]T, len(it.digits))
	for i, d := range it.digits {
		item[i] = it.source[d]
	}
	it.increment(it.digits, it.radix)
	return item, true
}

// Digits returns the source indices of the tuple Next will return.
//
// Digits are all zero once exhausted.
func (it *RepeatIter[T]) Digits() []int {
	return slices.Clone(it.digits)
}

// All drains the iterator from its current position.
func (it *RepeatIter[T]) All() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for {
			item, ok := it.Next()
			if !ok || !yield(item) {
				return
			}
		}
	}
}
