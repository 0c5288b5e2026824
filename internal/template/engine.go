package template

import "strings"

// Render substitutes variables into a template. Every occurrence of {{KEY}}
// in the subject and both bodies is replaced with the supplied value.
// Placeholders with no matching variable are left as literal {{NAME}} text;
// that is pass-through behavior, not an error. Render has no side effects.
func Render(tpl *Template, variables map[string]string) Rendered {
	return Rendered{
		Subject:     substitute(tpl.Subject, variables),
		HTMLContent: substitute(tpl.HTMLContent, variables),
		TextContent: substitute(tpl.TextContent, variables),
	}
}

func substitute(content string, variables map[string]string) string {
	if content == "" {
		return ""
	}
	for key, value := range variables {
		content = strings.ReplaceAll(content, "{{"+key+"}}", value)
	}
	return content
}
