// Package schema validates candidate book payloads against a declarative,
// per-field rule set. Every rule is evaluated; violations are collected in a
// stable order and returned as human-readable messages that are surfaced to
// API callers verbatim.
package schema

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// Mode selects which presence rules apply.
type Mode int

const (
	// ModeCreate requires every required field to be present.
	ModeCreate Mode = iota
	// ModeUpdate validates only the fields present in the payload and
	// ignores read-only fields entirely.
	ModeUpdate
)

// String returns the mode name used in logs.
func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeUpdate:
		return "update"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Type is the JSON type a field must have.
type Type string

const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
)

// Format names a string format check.
type Format string

// FormatURI accepts absolute URIs (scheme required).
const FormatURI Format = "uri"

// NotObjectMessage is reported when the payload is not a JSON object at all.
const NotObjectMessage = "instance is not of a type(s) object"

// Payload is a decoded request body. Numbers may be json.Number (JSON input),
// or native Go numbers (YAML fixtures).
type Payload map[string]any

// Field is one declarative rule set. Zero values disable a rule.
type Field struct {
	Name      string
	Type      Type
	Required  bool
	ReadOnly  bool
	MinLength int
	Minimum   *int
	Maximum   *int
	Format    Format
}

// Schema is an ordered list of field rules.
type Schema struct {
	fields   []Field
	validate *validator.Validate
}

// New creates a Schema over the given fields. Field order is significant: it
// is the order in which violations are reported.
func New(fields ...Field) *Schema {
	return &Schema{
		fields:   fields,
		validate: validator.New(),
	}
}

// Validate checks payload against the schema and returns every violation.
// An empty result means the payload is valid.
//
// Violations are produced in two passes over the fields in declaration
// order: presence first, then type/range/format per present property.
func (s *Schema) Validate(payload Payload, mode Mode) []string {
	messages := []string{}

	if mode == ModeCreate {
		for _, f := range s.fields {
			if !f.Required {
				continue
			}
			if _, ok := payload[f.Name]; !ok {
				messages = append(messages, fmt.Sprintf("instance requires property %q", f.Name))
			}
		}
	}

	for _, f := range s.fields {
		if mode == ModeUpdate && f.ReadOnly {
			continue
		}
		value, ok := payload[f.Name]
		if !ok {
			continue
		}
		messages = append(messages, s.checkProperty(f, value)...)
	}

	return messages
}

// checkProperty runs every non-presence rule for one present value.
func (s *Schema) checkProperty(f Field, value any) []string {
	path := "instance." + f.Name
	var messages []string

	switch f.Type {
	case TypeString:
		str, ok := value.(string)
		if !ok {
			return []string{typeMessage(path, f.Type)}
		}
		if f.MinLength > 0 && len([]rune(str)) < f.MinLength {
			messages = append(messages,
				fmt.Sprintf("%s does not meet minimum length of %d", path, f.MinLength))
		}
		if f.Format != "" && !s.conforms(str, f.Format) {
			messages = append(messages,
				fmt.Sprintf("%s does not conform to the %q format", path, string(f.Format)))
		}

	case TypeInteger:
		n, ok := asInteger(value)
		if !ok {
			return []string{typeMessage(path, f.Type)}
		}
		if f.Minimum != nil && n < *f.Minimum {
			messages = append(messages,
				fmt.Sprintf("%s must be greater than or equal to %d", path, *f.Minimum))
		}
		if f.Maximum != nil && n > *f.Maximum {
			messages = append(messages,
				fmt.Sprintf("%s must be less than or equal to %d", path, *f.Maximum))
		}
	}

	return messages
}

func (s *Schema) conforms(value string, format Format) bool {
	switch format {
	case FormatURI:
		return s.validate.Var(value, "url") == nil
	default:
		return true
	}
}

func typeMessage(path string, t Type) string {
	return fmt.Sprintf("%s is not of a type(s) %s", path, t)
}

// number is satisfied by json.Number from both encoding/json and go-json.
type number interface {
	Int64() (int64, error)
	Float64() (float64, error)
}

// asInteger reports whether v is an integral number and returns it.
// Values with a fractional part, or outside the int range, are not integers.
func asInteger(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return intFromInt64(n)
	case uint:
		return intFromFloat(float64(n))
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return intFromInt64(int64(n))
	case uint64:
		return intFromFloat(float64(n))
	case float32:
		return intFromFloat(float64(n))
	case float64:
		return intFromFloat(n)
	case number:
		if i, err := n.Int64(); err == nil {
			return intFromInt64(i)
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return intFromFloat(f)
	default:
		return 0, false
	}
}

func intFromInt64(i int64) (int, bool) {
	if i > math.MaxInt || i < math.MinInt {
		return 0, false
	}
	return int(i), true
}

func intFromFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt || f < math.MinInt {
		return 0, false
	}
	return int(f), true
}
