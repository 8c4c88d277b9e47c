package form

// Row is one rendered form field with the value the user typed and its messages.
type Row struct {
	Name      string
	Label     string
	InputType string
	Required  bool
	Value     string
	Errors    []string
}

// Bound pairs a schema with submitted values and the errors they produced.
// An unbound form (GET) has no values and no errors.
type Bound struct {
	Schema *Schema
	Values map[string]string
	Errors *ValidationError
}

// Unbound returns an empty form for the schema.
func Unbound(s *Schema) Bound {
	return Bound{Schema: s}
}

// Rows returns the fields in schema order, preserving user input.
func (b Bound) Rows() []Row {
	fields := b.Schema.Fields()
	rows := make([]Row, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, Row{
			Name:      f.Name,
			Label:     f.Label,
			InputType: f.InputType(),
			Required:  f.Required,
			Value:     b.Values[f.Name],
			Errors:    b.Errors.For(f.Name),
		})
	}
	return rows
}

// HasErrors reports whether the bound submission failed validation.
func (b Bound) HasErrors() bool {
	return b.Errors.HasErrors()
}

// RawValues extracts the schema's fields from a lookup such as a request's form values.
func (s *Schema) RawValues(lookup func(name string) string) map[string]string {
	raw := make(map[string]string, len(s.fields))
	for _, f := range s.fields {
		raw[f.Name] = lookup(f.Name)
	}
	return raw
}
