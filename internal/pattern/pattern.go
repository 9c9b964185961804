// Package pattern implements the shared proxy-name pattern matcher used
// by the Group Resolver (§4.5) to expand a group's member patterns - the
// group_generate external collaborator of §6.
package pattern

import "path/filepath"

// Match expands a single member pattern against the ordered list of
// emitted proxy remarks, appending matches to out. A leading "!" negates
// the pattern (append everything that does NOT match the remainder).
// Patterns with no glob metacharacter are matched as exact literals first;
// when no exact literal match exists, the pattern is still tried as a
// glob, mirroring the C++/Rust group_generate's "literal or wildcard"
// behavior.
func Match(expr string, remarks []string, out *[]string) {
	negate := false
	if len(expr) > 0 && expr[0] == '!' {
		negate = true
		expr = expr[1:]
	}

	for _, remark := range remarks {
		matched := remark == expr
		if !matched {
			if ok, err := filepath.Match(expr, remark); err == nil {
				matched = ok
			}
		}
		if matched != negate {
			*out = append(*out, remark)
		}
	}
}
