package normalize

import "fmt"

// Alias renames any of aliases to key in a YAML map.
//
// Returns an error if more than one spelling of key is set.
func Alias(yaml map[string]any, key string, aliases ...string) error {
	found := ""
	if _, ok := yaml[key]; ok {
		found = key
	}
	for _, alias := range aliases {
		value, ok := yaml[alias]
		if !ok {
			continue
		}
		if found != "" {
			return fmt.Errorf("%s and %s are the same key, use only %s", found, alias, key)
		}
		found = alias
		delete(yaml, alias)
		yaml[key] = value
	}
	return nil
}
