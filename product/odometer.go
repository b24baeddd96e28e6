package product

// odometer is a mixed-radix counter, least significant digit rightmost.
//
// Each digit stays in [0, radix(i)). When the leftmost digit overflows, every
// digit is back to zero and done is set for good.
type odometer struct {
	done bool
}

// start marks the odometer done when a position has nothing to draw from.
//
// With no position at all, there is still one combination: the empty tuple.
func (o *odometer) start(positions int, radix func(int) int) {
	for i := 0; i < positions; i++ {
		if radix(i) == 0 {
			o.done = true
			return
		}
	}
}

// increment moves digits to the next combination.
func (o *odometer) increment(digits []int, radix func(int) int) {
	for i := len(digits) - 1; i >= 0; i-- {
		digits[i]++
		if digits[i] < radix(i) {
			return
		}
		// (0, 1, 1) -> (0, 2, 0)
		digits[i] = 0
	}
	// Carry went past the leftmost digit.
	o.done = true
}
