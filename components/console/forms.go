package console

import (
	"regexp"
	"strconv"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldType selects the validation rule applied to a field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldNumber   FieldType = "number"
	FieldPassword FieldType = "password"
)

// Field is one guarded input. Error holds at most one message; the first
// failing rule wins.
type Field struct {
	Name     string
	Type     FieldType
	Value    string
	Required bool
	Min      *float64
	Max      *float64
	Error    string
}

// Form is a guarded submission surface. While Processing is set the submit
// control shows ProcessingLabel and further submits are rejected.
type Form struct {
	Name            string
	Fields          []*Field
	ConfirmPairs    [][2]string
	SubmitLabel     string
	ProcessingLabel string
	Processing      bool

	originalLabel string
}

// NewForm registers a guarded form on the controller's document.
func (c *Controller) NewForm(name string, fields ...*Field) *Form {
	form := &Form{
		Name:            name,
		Fields:          fields,
		SubmitLabel:     "Submit",
		ProcessingLabel: "Processing...",
	}
	c.mu.Lock()
	c.doc.Forms[name] = form
	c.mu.Unlock()
	return form
}

// Field looks a field up by name.
func (f *Form) Field(name string) *Field {
	for _, field := range f.Fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// Validate checks every field and records one message per failing field.
// It returns true when the whole form passes.
func (f *Form) Validate() bool {
	ok := true
	for _, field := range f.Fields {
		field.Error = ""
		if msg := validateField(field); msg != "" {
			field.Error = msg
			ok = false
		}
	}
	for _, pair := range f.ConfirmPairs {
		first, second := f.Field(pair[0]), f.Field(pair[1])
		if first == nil || second == nil {
			continue
		}
		if first.Value != second.Value {
			second.Error = "Passwords do not match"
			ok = false
		}
	}
	return ok
}

func validateField(field *Field) string {
	value := strings.TrimSpace(field.Value)
	if field.Required && value == "" {
		return "This field is required"
	}
	if value == "" {
		return ""
	}
	switch field.Type {
	case FieldEmail:
		if !emailPattern.MatchString(value) {
			return "Please enter a valid email address"
		}
	case FieldNumber:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "Please enter a valid number"
		}
		if field.Min != nil && n < *field.Min {
			return "Value must be at least " + formatBound(*field.Min)
		}
		if field.Max != nil && n > *field.Max {
			return "Value must be at most " + formatBound(*field.Max)
		}
	}
	return ""
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BeginSubmit validates the form and, on success, flips it into the
// processing state. It returns false when validation fails or a submission
// is already in flight.
func (f *Form) BeginSubmit() bool {
	if f.Processing {
		return false
	}
	if !f.Validate() {
		return false
	}
	f.Processing = true
	f.originalLabel = f.SubmitLabel
	f.SubmitLabel = f.ProcessingLabel
	return true
}

// EndSubmit restores the submit control after the request settles.
func (f *Form) EndSubmit() {
	if !f.Processing {
		return
	}
	f.Processing = false
	f.SubmitLabel = f.originalLabel
	f.originalLabel = ""
}

// ViewModel renders the form for templates.
func (f *Form) ViewModel() map[string]any {
	fields := make([]map[string]any, 0, len(f.Fields))
	for _, field := range f.Fields {
		fields = append(fields, map[string]any{
			"name":     field.Name,
			"type":     string(field.Type),
			"value":    field.Value,
			"required": field.Required,
			"error":    field.Error,
		})
	}
	return map[string]any{
		"name":         f.Name,
		"fields":       fields,
		"submit_label": f.SubmitLabel,
		"processing":   f.Processing,
	}
}
