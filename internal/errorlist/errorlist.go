// Package errorlist collects configuration errors up to a limit, so a
// single run reports several mistakes at once.
package errorlist

import "fmt"

// Max is the number of errors a List holds.
const Max = 8

type List struct {
	message string
	errors  []error
}

func New(message string) *List {
	return &List{message: message}
}

// Error shows the single error or the number of errors.
func (list *List) Error() string {
	if len(list.errors) == 1 {
		return fmt.Sprintf("%s: %s", list.message, list.errors[0])
	}
	return fmt.Sprintf("%s (%d)", list.message, len(list.errors))
}

func (list *List) Unwrap() []error {
	return list.errors
}

// Append adds err to the list, ignoring nil.
//
// Returns false once the list is full. Errors appended to a full list are
// dropped.
func (list *List) Append(err error) bool {
	if err != nil && !list.Full() {
		list.errors = append(list.errors, err)
	}
	return !list.Full()
}

// Extend appends each error joined by errors.Join, or err itself.
//
// Returns false once the list is full.
func (list *List) Extend(err error) bool {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return list.Append(err)
	}
	for _, err := range joined.Unwrap() {
		if !list.Append(err) {
			return false
		}
	}
	return !list.Full()
}

func (list *List) Full() bool {
	return len(list.errors) >= Max
}

func (list *List) Len() int {
	return len(list.errors)
}

// Err returns the list if it holds any error, nil otherwise.
func (list *List) Err() error {
	if len(list.errors) == 0 {
		return nil
	}
	return list
}
