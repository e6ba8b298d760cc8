package condition

import (
	"strings"
)

// Render expands {expression} placeholders in a logpoint template. {{ and }} produce literal braces.
// A placeholder that fails to compile or evaluate renders as <error: message> and does not affect the others.
func Render(template string, r Resolver) string {
	var sb strings.Builder
	runes := []rune(template)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '{' && i+1 < len(runes) && runes[i+1] == '{':
			sb.WriteRune('{')
			i++
		case c == '}' && i+1 < len(runes) && runes[i+1] == '}':
			sb.WriteRune('}')
			i++
		case c == '{':
			end := indexRune(runes, i+1, '}')
			if end < 0 {
				sb.WriteString(string(runes[i:]))
				return sb.String()
			}
			sb.WriteString(renderPlaceholder(string(runes[i+1:end]), r))
			i = end
		default:
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

func indexRune(runes []rune, from int, target rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}

func renderPlaceholder(src string, r Resolver) string {
	prog, err := Compile(src)
	if err != nil {
		return "<error: " + err.Error() + ">"
	}
	v, err := prog.Value(r)
	if err != nil {
		return "<error: " + err.Error() + ">"
	}
	return v.String()
}
