package runner

import (
	"regexp"
	"strings"
)

// varPattern matches variable references in the format ${varname}.
// Captures the variable name in group 1.
// Examples: ${target}, ${root}, ${image_tag}
var varPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// escapePlaceholder is a sentinel value used during variable interpolation
// to temporarily replace escaped variable syntax ($${var}) with a placeholder.
// This prevents ${var} from being interpreted as a variable reference when
// the user wants a literal ${var} in the output.
//
// NUL bytes (\x00) are used because:
//  1. NUL cannot appear in POSIX shell command strings (terminates C strings)
//  2. NUL cannot appear in Go strings from config.json (JSON spec forbids it)
//  3. This guarantees no collision with any user-provided variable values
//
// The interpolation process:
//  1. Replace $${var} with escapePlaceholder
//  2. Replace ${var} with actual values
//  3. Restore escapePlaceholder back to ${var} (literal)
const escapePlaceholder = "\x00ESCAPED\x00"

// interpolate replaces ${var} with variable values.
// Escaping: $${var} becomes ${var} (literal).
// Variables without a value are left as-is.
func interpolate(cmd string, vars map[string]string) string {
	result := strings.ReplaceAll(cmd, "$${", escapePlaceholder)

	result = varPattern.ReplaceAllStringFunc(result, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := vars[name]; ok {
			return val
		}
		return match
	})

	return strings.ReplaceAll(result, escapePlaceholder, "${")
}
