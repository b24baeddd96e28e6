package normalize

import (
	"fmt"
	"strings"
)

// Boolean reads a YAML flag like enabled.
//
// Accepts YAML booleans and yes/no, on/off, true/false spellings in any case.
// nil is fallback.
func Boolean(yaml any, fallback bool) (bool, error) {
	switch v := yaml.(type) {
	case nil:
		return fallback, nil
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(v) {
		case "y", "yes", "on", "true":
			return true, nil
		case "n", "no", "off", "false":
			return false, nil
		}
	}
	return false, fmt.Errorf("bad value %v, must be boolean", yaml)
}
