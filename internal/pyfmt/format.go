// Python-like format strings for rendering tuples.
package pyfmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gosimple/slug"
)

type Format struct {
	Input string
	// List of either literal or field, in order.
	Sections []any
	Fields   []*Field
}

func (f Format) IsStatic() bool {
	return len(f.Fields) == 0
}

type Field struct {
	FieldName  string
	FormatSpec string
	Conversion string
	Method     string
}

func Parse(f string) (format Format, err error) {
	err = format.Parse(f)
	return
}

// Default returns a format joining n fields with a space.
func Default(n int) Format {
	n = max(n, 0)
	f, _ := Parse(strings.TrimSpace(strings.Repeat("{} ", n)))
	return f
}

func (f *Format) Parse(s string) (err error) {
	f.Input = s
	var (
		end     = len(s)
		inField = false
		next    byte
		start   int
	)

	for i := 0; i < end; { // Loops sections in s.
		start = i // Track the start of the section. i will move to the end.
		if inField {
			loc := strings.IndexByte(s[i:], '}')
			if loc == -1 {
				err = fmt.Errorf("end of string before end of field")
				i = end // End loop at end of step.
			} else {
				i += loc // Move before }
				field := parseField(s[start:i])
				f.Sections = append(f.Sections, &field)
				f.Fields = append(f.Fields, &field)
				i++ // Move after }
				inField = false
			}
		} else {
			loc := strings.IndexByte(s[i:], '{')
			if loc == -1 {
				// toto
				//     ^
				i = end // End loop at end of step.
			} else {
				// toto{titi} OR toto{{titi
				//     ^             ^
				i += loc // Move before {
				if i < end-1 {
					next = s[i+1]
				} else {
					next = 0
				}
				if i < end && next == '{' {
					// To escape {{, send two strings, the one before the second { and the rest after on next iteration.
					//
					// toto{{titi
					//      ^
					i++ // Move before second { to include first { as literal { this step.
				} else {
					inField = true
				}
			}
			if i > start { // Avoid empty literal.
				f.Sections = append(f.Sections, strings.ReplaceAll(s[start:i], "}}", "}"))
			}
			// toto{titi OR toto{{titi
			//      ^             ^
			i++ // Move after {, literal or escape.
		}
	}
	if inField {
		return errors.New("unexpected end of format")
	}
	if err != nil {
		return
	}
	return f.check()
}

func parseField(s string) (f Field) {
	before, after, found := strings.Cut(s, "!")
	if found {
		// case {0!r} OR {0!r:>30}
		f.FieldName = before
		before, after, _ = strings.Cut(after, ":")
		f.Conversion = before
	} else {
		// case {0} OR {0:>30}
		before, after, _ = strings.Cut(before, ":")
		f.FieldName = before
	}
	f.FormatSpec = after
	if strings.HasSuffix(f.FieldName, "()") {
		lastPoint := strings.LastIndex(f.FieldName, ".")
		if lastPoint == -1 {
			// case {upper()}: method without field, reject in check.
			f.Method = f.FieldName
			f.FieldName = ""
		} else {
			f.Method = f.FieldName[lastPoint+1:]
			f.FieldName = f.FieldName[:lastPoint]
		}
	}
	return
}

var methods = map[string]func(string) string{
	"":        func(v string) string { return v },
	"lower()": strings.ToLower,
	"upper()": strings.ToUpper,
	"slug()":  slug.Make,
	"identifier()": func(v string) string {
		return fmt.Sprintf("\"%s\"", v)
	},
	"string()": func(v string) string {
		return fmt.Sprintf("'%s'", strings.ReplaceAll(v, "'", "''"))
	},
}

// check validates methods, conversions and specs, and numbers automatic
// fields like Python does: {} {} becomes {0} {1}.
func (f *Format) check() error {
	auto, manual := 0, false
	for _, field := range f.Fields {
		if _, ok := methods[field.Method]; !ok {
			return fmt.Errorf("unknown method %s", field.Method)
		}
		switch field.Conversion {
		case "", "r", "s":
		default:
			return fmt.Errorf("unknown conversion !%s", field.Conversion)
		}
		if _, _, _, err := parseSpec(field.FormatSpec); err != nil {
			return err
		}

		if field.FieldName == "" {
			if manual {
				return errors.New("cannot switch from manual field numbering to automatic")
			}
			field.FieldName = strconv.Itoa(auto)
			auto++
		} else {
			if auto > 0 {
				return errors.New("cannot switch from automatic field numbering to manual")
			}
			manual = true
		}
	}
	return nil
}

func (f Format) Format(values map[string]string) string {
	if values == nil {
		if !f.IsStatic() {
			panic("rendering dynamic format without values")
		}
		return f.String()
	}

	b := strings.Builder{}

	for _, item := range f.Sections {
		literal, ok := item.(string)
		if ok {
			b.WriteString(literal)
		} else {
			f := item.(*Field)
			v := methods[f.Method](values[f.FieldName])
			if f.Conversion == "r" {
				v = repr(v)
			}
			b.WriteString(pad(v, f.FormatSpec))
		}
	}
	return b.String()
}

// repr quotes v like Python repr() does for str: single quotes unless v
// holds a single quote and no double quote.
func repr(v string) string {
	quote := '\''
	if strings.ContainsRune(v, '\'') && !strings.ContainsRune(v, '"') {
		quote = '"'
	}
	b := strings.Builder{}
	b.WriteRune(quote)
	for i := 0; i < len(v); {
		r, size := utf8.DecodeRuneInString(v[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			fmt.Fprintf(&b, "\\x%02x", v[i])
		case r == quote || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case unicode.IsPrint(r):
			b.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&b, "\\x%02x", r)
		case r < 0x10000:
			fmt.Fprintf(&b, "\\u%04x", r)
		default:
			fmt.Fprintf(&b, "\\U%08x", r)
		}
		i += size
	}
	b.WriteRune(quote)
	return b.String()
}

// FormatTuple renders positional fields from items.
func (f Format) FormatTuple(items []string) string {
	values := make(map[string]string, len(items))
	for i, v := range items {
		values[strconv.Itoa(i)] = v
	}
	return f.Format(values)
}

// Positions returns the tuple index referenced by each field.
func (f Format) Positions() (positions []int, err error) {
	for _, field := range f.Fields {
		i, err := strconv.Atoi(field.FieldName)
		if err != nil || i < 0 {
			return nil, fmt.Errorf("field {%s} is not a position", field.FieldName)
		}
		positions = append(positions, i)
	}
	return
}

// parseSpec reads [[fill]align][width].
func parseSpec(spec string) (fill rune, align byte, width int, err error) {
	fill, align = ' ', '<'
	if spec == "" {
		return
	}
	r, size := utf8.DecodeRuneInString(spec)
	if len(spec) > size && strings.IndexByte("<>^", spec[size]) != -1 {
		fill, align = r, spec[size]
		spec = spec[size+1:]
	} else if strings.IndexByte("<>^", spec[0]) != -1 {
		align = spec[0]
		spec = spec[1:]
	}
	if spec == "" {
		return
	}
	width, err = strconv.Atoi(spec)
	if err != nil || width < 0 {
		err = fmt.Errorf("bad format spec %q", spec)
	}
	return
}

func pad(v, spec string) string {
	fill, align, width, _ := parseSpec(spec)
	missing := width - utf8.RuneCountInString(v)
	if missing <= 0 {
		return v
	}
	switch align {
	case '>':
		return strings.Repeat(string(fill), missing) + v
	case '^':
		left := missing / 2
		return strings.Repeat(string(fill), left) + v + strings.Repeat(string(fill), missing-left)
	default:
		return v + strings.Repeat(string(fill), missing)
	}
}

func (f Format) String() string {
	return f.Input
}

// ListExpressions returns the distinct field names referenced by formats.
func ListExpressions(fmts ...Format) mapset.Set[string] {
	set := mapset.NewSet[string]()
	for _, f := range fmts {
		for _, field := range f.Fields {
			set.Add(field.FieldName)
		}
	}
	return set
}
