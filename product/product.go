package product

import (
	"iter"
	"slices"
)

// ProductIter yields all tuples taking position i from sources[i].
type ProductIter[T any] struct {
	odometer
	sources [][]T
	digits  []int
}

// NewProduct returns an iterator over the Cartesian product of sources.
//
// Yields the product of source lengths: nothing if one source is empty, a
// single empty tuple if there is no source.
func NewProduct[T any](sources ...[]T) *ProductIter[T] {
	it := &ProductIter[T]{
		sources: slices.Clone(sources),
		digits:  make([]int, len(sources)),
	}
	it.start(len(it.sources), it.radix)
	return it
}

// Product is a shorthand for NewProduct(sources...).All().
func Product[T any](sources ...[]T) iter.Seq[[]T] {
	return NewProduct(sources...).All()
}

func (it *ProductIter[T]) radix(i int) int {
	return len(it.sources[i])
}

// Next returns a new tuple and true, or nil and false once exhausted.
func (it *ProductIter[T]) Next() ([]T, bool) {
	if it.done {
		return nil, false
	}
	item := make([]T, len(it.digits))
	for i, d := range it.digits {
		item[i] = it.sources[i][d]
	}
	it.increment(it.digits, it.radix)
	return item, true
}

// Digits returns the source indices of the tuple Next will return.
//
// Digits are all zero once exhausted.
func (it *ProductIter[T]) Digits() []int {
	return slices.Clone(it.digits)
}

// All drains the iterator from its current position.
func (it *ProductIter[T]) All() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for {
			item, ok := it.Next()
			if !ok || !yield(item) {
				return
			}
		}
	}
}
