// Package form validates submitted field values against an explicit schema.
//
// A Schema is a plain list of fields (name, kind, required flag, limits). Validation never touches
// storage: it turns raw strings into Cleaned values or reports a *ValidationError listing the
// violations for each field in schema order.
package form

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Kind is the value type a field is cleaned into.
type Kind int

const (
	// Text fields are trimmed strings.
	Text Kind = iota
	// Integer fields are parsed as base-10 integers.
	Integer
)

// Field describes one input of a form.
type Field struct {
	Name     string
	Label    string
	Kind     Kind
	Required bool

	// MaxLength bounds Text fields in characters; zero means unbounded.
	MaxLength int

	// Min and Max bound Integer fields when HasRange is set.
	Min, Max int
	HasRange bool
}

// InputType is the HTML input type used to render the field.
func (f Field) InputType() string {
	if f.Kind == Integer {
		return "number"
	}
	return "text"
}

// rules builds the validator tag checked against the cleaned value.
func (f Field) rules() string {
	switch f.Kind {
	case Text:
		if f.MaxLength > 0 {
			return fmt.Sprintf("max=%d", f.MaxLength)
		}
	case Integer:
		if f.HasRange {
			return fmt.Sprintf("gte=%d,lte=%d", f.Min, f.Max)
		}
	}
	return ""
}

// Schema is an ordered list of fields.
type Schema struct {
	fields   []Field
	validate *validator.Validate
}

// NewSchema builds a schema from fields in display order.
func NewSchema(fields ...Field) *Schema {
	return &Schema{
		fields:   fields,
		validate: validator.New(),
	}
}

// Fields returns the schema fields in display order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Validate cleans raw input. Missing keys are treated as empty values and unknown keys are ignored.
// The returned error is always a *ValidationError.
func (s *Schema) Validate(raw map[string]string) (Cleaned, error) {
	cleaned := make(Cleaned, len(s.fields))
	verr := &ValidationError{}

	for _, f := range s.fields {
		value := strings.TrimSpace(raw[f.Name])
		if value == "" {
			if f.Required {
				verr.Add(f.Name, msgRequired)
			}
			continue
		}

		switch f.Kind {
		case Integer:
			n, msg := parseInteger(f, value)
			if msg != "" {
				verr.Add(f.Name, msg)
				continue
			}
			if msg := s.check(f, n); msg != "" {
				verr.Add(f.Name, msg)
				continue
			}
			cleaned[f.Name] = n
		default:
			if msg := s.check(f, value); msg != "" {
				verr.Add(f.Name, msg)
				continue
			}
			cleaned[f.Name] = value
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return cleaned, nil
}

// trailingZeros matches a decimal point followed only by zeros, so "1999.0" and "1999." clean to 1999.
var trailingZeros = regexp.MustCompile(`\.0*$`)

// parseInteger cleans an Integer field. Values too large for int report the range bound the
// field would have failed anyway; other parse failures are not whole numbers.
func parseInteger(f Field, value string) (int, string) {
	n, err := strconv.Atoi(trailingZeros.ReplaceAllString(value, ""))
	if err == nil {
		return n, ""
	}
	if errors.Is(err, strconv.ErrRange) && f.HasRange {
		if strings.HasPrefix(value, "-") {
			return 0, fmt.Sprintf(msgMinValue, strconv.Itoa(f.Min))
		}
		return 0, fmt.Sprintf(msgMaxValue, strconv.Itoa(f.Max))
	}
	return 0, msgWholeNumber
}

// check runs the field rules and converts the first failure into a user message.
func (s *Schema) check(f Field, value any) string {
	rules := f.rules()
	if rules == "" {
		return ""
	}
	err := s.validate.Var(value, rules)
	if err == nil {
		return ""
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return msgInvalid
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf(msgMaxLength, fe.Param(), utf8.RuneCountInString(fmt.Sprint(value)))
	case "gte":
		return fmt.Sprintf(msgMinValue, fe.Param())
	case "lte":
		return fmt.Sprintf(msgMaxValue, fe.Param())
	default:
		return msgInvalid
	}
}

const (
	msgRequired    = "This field is required."
	msgWholeNumber = "Enter a whole number."
	msgMaxLength   = "Ensure this value has at most %s characters (it has %d)."
	msgMinValue    = "Ensure this value is greater than or equal to %s."
	msgMaxValue    = "Ensure this value is less than or equal to %s."
	msgInvalid     = "Enter a valid value."
)

// Cleaned maps field names to their typed values. Optional fields left blank are absent.
type Cleaned map[string]any

// Text returns a cleaned text value or "".
func (c Cleaned) Text(name string) string {
	s, _ := c[name].(string)
	return s
}

// Int returns a cleaned integer value, or nil when the field was left blank.
func (c Cleaned) Int(name string) *int {
	n, ok := c[name].(int)
	if !ok {
		return nil
	}
	return &n
}
