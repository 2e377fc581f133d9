package template

import "regexp"

// tokenRe matches {{identifier}} placeholders. Identifiers are limited to
// alphanumerics and underscore; surrounding whitespace inside the braces is
// tolerated. This syntax is a stable contract with template authors.
var tokenRe = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// ExtractVariables returns the unique placeholder identifiers found in text,
// in first-seen order, case-sensitive.
func ExtractVariables(text string) []string {
	matches := tokenRe.FindAllStringSubmatch(text, -1)
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Substitute replaces every {{identifier}} occurrence with values[identifier].
// Tokens with no matching key are left intact so missing-variable bugs stay
// visible in rendered output rather than being silently erased.
func Substitute(text string, values map[string]string) string {
	return tokenRe.ReplaceAllStringFunc(text, func(tok string) string {
		name := tokenRe.FindStringSubmatch(tok)[1]
		if v, ok := values[name]; ok {
			return v
		}
		return tok
	})
}
