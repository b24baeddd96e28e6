package normalize

import (
	"fmt"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// SpuriousKeys reports every key of a YAML map not in knownKeys, sorted.
func SpuriousKeys(yaml map[string]any, knownKeys ...string) error {
	keys := mapset.NewThreadUnsafeSetFromMapKeys(yaml)
	unknown := keys.Difference(mapset.NewThreadUnsafeSet(knownKeys...)).ToSlice()
	switch len(unknown) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("unknown key '%s'", unknown[0])
	}
	slices.Sort(unknown)
	return fmt.Errorf("unknown keys '%s'", strings.Join(unknown, "', '"))
}

// Strings checks that each of keys is a string or unset.
func Strings(yaml map[string]any, keys ...string) error {
	for _, key := range keys {
		value := yaml[key]
		if _, ok := value.(string); !ok && value != nil {
			return fmt.Errorf("%s: bad value %v, must be string", key, value)
		}
	}
	return nil
}
