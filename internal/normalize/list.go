package normalize

import "fmt"

// List ensure yaml is a list.
//
// Wraps scalar or map in a list. Returns list as is.
func List(yaml any) (list []any) {
	switch v := yaml.(type) {
	case []any:
		list = v
	case []string:
		for _, s := range v {
			list = append(list, s)
		}
	default:
		list = append(list, yaml)
	}
	return
}

// StringList ensure yaml is a list of strings.
//
// nil returns an empty list.
func StringList(yaml any) (list []string, err error) {
	if yaml == nil {
		return
	}
	for _, item := range List(yaml) {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("bad value %v, must be string", item)
		}
		list = append(list, s)
	}
	return
}

// Scalars renders a list of YAML scalars as strings.
//
// Wraps a single scalar in a list. Rejects nested lists and maps.
func Scalars(yaml any) (list []string, err error) {
	if yaml == nil {
		return
	}
	for _, item := range List(yaml) {
		switch item.(type) {
		case []any, map[string]any:
			return nil, fmt.Errorf("bad value %v, must be scalar", item)
		case nil:
			list = append(list, "")
		default:
			list = append(list, fmt.Sprint(item))
		}
	}
	return
}
