package contactform

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Values are the four fields of the contact form
type Values struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Get returns the value of a field by its JSON name
func (v Values) Get(field string) string {
	switch field {
	case "name":
		return v.Name
	case "email":
		return v.Email
	case "subject":
		return v.Subject
	case "message":
		return v.Message
	}
	return ""
}

// FieldErrors maps a field name to its inline message
type FieldErrors map[string]string

// Error lists the failing fields in a stable order
func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, rule := range rules {
		if msg, ok := fe[rule.Field]; ok {
			parts = append(parts, rule.Field+": "+msg)
		}
	}
	return strings.Join(parts, "; ")
}

// Rule is one entry of the client schema. The landing page serializes the
// same rules for the browser, so both renditions share messages.
type Rule struct {
	Field   string `json:"field"`
	Type    string `json:"type"`
	Min     int    `json:"min,omitempty"`
	Message string `json:"message"`
}

func (r Rule) tag() string {
	if r.Type == "min" {
		return fmt.Sprintf("min=%d", r.Min)
	}
	return r.Type
}

// Client thresholds are stricter than the server's on subject and message
var rules = []Rule{
	{Field: "name", Type: "min", Min: 2, Message: "Please share your name."},
	{Field: "email", Type: "email", Message: "Use a valid email address."},
	{Field: "subject", Type: "min", Min: 3, Message: "Subject should be a few words."},
	{Field: "message", Type: "min", Min: 10, Message: "A little more context helps."},
}

// Rules returns a copy of the client schema
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

func validate(v *validator.Validate, values Values) FieldErrors {
	errs := FieldErrors{}
	for _, rule := range rules {
		if err := v.Var(values.Get(rule.Field), rule.tag()); err != nil {
			errs[rule.Field] = rule.Message
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
