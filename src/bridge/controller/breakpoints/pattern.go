package breakpoints

import (
	"regexp"
	"strings"
)

// matcher decides whether a class name matches a breakpoint pattern.
type matcher func(name string) bool

// compilePattern builds a matcher. A pattern without '*' matches only the identical name; otherwise
// each '*' matches any sequence and the whole name must match.
func compilePattern(pattern string) matcher {
	if !strings.Contains(pattern, "*") {
		return func(name string) bool { return name == pattern }
	}
	parts := strings.Split(pattern, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	re := regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")
	return re.MatchString
}

// Matches reports whether name matches pattern.
func Matches(pattern, name string) bool {
	return compilePattern(pattern)(name)
}

func isWildcard(pattern string) bool {
	return strings.Contains(pattern, "*")
}

// matchesAllExceptions reports whether an exception pattern selects every exception class.
func matchesAllExceptions(pattern string) bool {
	p := strings.TrimSpace(pattern)
	return p == "" || p == "*"
}
