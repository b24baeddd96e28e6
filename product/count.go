package product

import (
	"fmt"
	"math"
	"math/bits"
)

// Count returns the number of tuples in the product of sources of the given
// lengths. ok is false if the count overflows int.
//
// Panics on negative length.
func Count(lengths ...int) (n int, ok bool) {
	for _, l := range lengths {
		if l < 0 {
			panic(fmt.Sprintf("product: negative length %d", l))
		}
		if l == 0 {
			// Multiplying by empty wins over any overflow.
			return 0, true
		}
	}
	n = 1
	for _, l := range lengths {
		n, ok = multiply(n, l)
		if !ok {
			return 0, false
		}
	}
	return n, true
}

// RepeatCount returns the number of tuples of repeat elements drawn from a
// source of the given length. ok is false if the count overflows int.
//
// Panics on negative length or repeat.
func RepeatCount(length, repeat int) (n int, ok bool) {
	if length < 0 {
		panic(fmt.Sprintf("product: negative length %d", length))
	}
	if repeat < 0 {
		panic(fmt.Sprintf("product: negative repeat %d", repeat))
	}
	switch {
	case repeat == 0:
		return 1, true
	case length <= 1:
		return length, true
	}
	n = 1
	for range repeat {
		n, ok = multiply(n, length)
		if !ok {
			return 0, false
		}
	}
	return n, true
}

func multiply(a, b int) (int, bool) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return int(lo), true
}
