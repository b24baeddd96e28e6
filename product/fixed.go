package product

import (
	"iter"
	"slices"
)

// MaxArity is the longest tuple FixedRepeatIter supports.
const MaxArity = 8

// Tuple is the set of array types FixedRepeatIter can yield.
type Tuple[T any] interface {
	~[0]T | ~[1]T | ~[2]T | ~[3]T | ~[4]T | ~[5]T | ~[6]T | ~[7]T | ~[8]T
}

// FixedRepeatIter is RepeatIter with the tuple length set by the array type
// A. Digits live in the iterator value and tuples are returned as arrays.
type FixedRepeatIter[A Tuple[T], T any] struct {
	odometer
	source []T
	digits [MaxArity]int
}

// NewFixedRepeat returns an iterator over source repeated len(A) times.
//
//	it := product.NewFixedRepeat[[2]string]([]string{"A", "B"})
func NewFixedRepeat[A Tuple[T], T any](source []T) *FixedRepeatIter[A, T] {
	it := &FixedRepeatIter[A, T]{source: source}
	it.start(it.arity(), it.radix)
	return it
}

// FixedRepeat is a shorthand for NewFixedRepeat[A](source).All().
func FixedRepeat[A Tuple[T], T any](source []T) iter.Seq[A] {
	return NewFixedRepeat[A](source).All()
}

func (it *FixedRepeatIter[A, T]) arity() int {
	var a A
	return len(a)
}

func (it *FixedRepeatIter[A, T]) radix(int) int {
	return len(it.source)
}

// Next returns the next tuple and true, or the zero A and false once
// exhausted.
func (it *FixedRepeatIter[A, T]) Next() (item A, ok bool) {
	if it.done {
		return
	}
	digits := it.digits[:len(item)]
	// item is returned only once every slot is set.
	for i, d := range digits {
		item[i] = it.source[d]
	}
	it.increment(digits, it.radix)
	return item, true
}

// Digits returns the source indices of the tuple Next will return.
func (it *FixedRepeatIter[A, T]) Digits() []int {
	return slices.Clone(it.digits[:it.arity()])
}

// All drains the iterator from its current position.
func (it *FixedRepeatIter[A, T]) All() iter.Seq[A] {
	return func(yield func(A) bool) {
		for {
			item, ok := it.Next()
			if !ok || !yield(item) {
				return
			}
		}
	}
}
