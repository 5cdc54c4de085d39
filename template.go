package mapper

import (
	"fmt"
	"strings"
)

// renderTemplate substitutes {{name}} placeholders in tmpl from params.
// A name with no entry in params renders as an empty string (spec §8
// open question 4: template never fails on a missing parameter).
func renderTemplate(tmpl string, params map[string]any) string {
	var b strings.Builder
	for {
		start := strings.Index(tmpl, "{{")
		if start == -1 {
			b.WriteString(tmpl)
			break
		}
		end := strings.Index(tmpl[start:], "}}")
		if end == -1 {
			b.WriteString(tmpl)
			break
		}
		end += start
		b.WriteString(tmpl[:start])
		name := strings.TrimSpace(tmpl[start+2 : end])
		if v, ok := params[name]; ok && IsDefined(v) {
			b.WriteString(stringify(v))
		}
		tmpl = tmpl[end+2:]
	}
	return b.String()
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}
