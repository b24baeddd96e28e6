// Package product enumerates Cartesian products lazily.
//
// Three iterators share one mixed-radix odometer:
//
//   - RepeatIter yields every tuple of a runtime length drawn from one source,
//     like Python's itertools.product(source, repeat=n).
//   - FixedRepeatIter does the same with the length fixed by an array type,
//     yielding array values.
//   - ProductIter draws each position from its own source.
//
// Tuples come in lexicographic order of source indices, each exactly once.
// Nothing is materialized beyond the current tuple.
//
// Iterators capture source slice headers at construction. Elements are
// yielded by value and read on each call to Next: sources must not be
// modified while iterating. An iterator is not safe for concurrent use.
package product
