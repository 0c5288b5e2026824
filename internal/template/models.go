package template

import "time"

// Type distinguishes email templates from SMS templates.
type Type string

const (
	TypeEmail Type = "email"
	TypeSMS   Type = "sms"
)

// IsValid reports whether t is a known template type.
func (t Type) IsValid() bool {
	return t == TypeEmail || t == TypeSMS
}

// Template is a parameterized message body with named placeholders that are
// substituted at render time. Placeholders appear as {{NAME}} in the subject
// and body fields.
type Template struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        Type      `json:"type"`
	Subject     string    `json:"subject,omitempty"`
	HTMLContent string    `json:"html_content,omitempty"`
	TextContent string    `json:"text_content,omitempty"`
	Variables   []string  `json:"variables"`
	IsDefault   bool      `json:"is_default"`
	CreatedBy   string    `json:"created_by"`
	CreatedDate time.Time `json:"created_date"`
}

// Rendered is the output of substituting variables into a template.
type Rendered struct {
	Subject     string `json:"subject,omitempty"`
	HTMLContent string `json:"html_content,omitempty"`
	TextContent string `json:"text_content"`
}
