// Package ruleset implements the convert_ruleset and
// ruleset_to_clash_str external collaborators of spec.md §6: normalizing
// heterogeneous ruleset wire formats to Surge-style "<TYPE>,<VALUE>"
// lines, and rendering a ruleset list as Clash's classical inline rules
// text block.
package ruleset

import (
	"strings"

	"github.com/jojojoinme/subconverter/internal/model"
)

// Convert normalizes raw ruleset content of the given type to
// Surge-style lines, one rule per line, preserving "#"/";"/"//" comment
// lines verbatim.
func Convert(raw string, ruleType model.RuleType) string {
	switch ruleType {
	case model.RuleTypeQuantumultX:
		return convertQuantumultX(raw)
	case model.RuleTypeClashDomain:
		return convertClashDomainPayload(raw)
	case model.RuleTypeClashClassical, model.RuleTypeSurge:
		return passthroughLines(raw)
	default:
		return passthroughLines(raw)
	}
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "//")
}

// passthroughLines trims each line and drops blank ones, keeping comments
// and already-classical "TYPE,VALUE[,EXTRA]" lines untouched.
func passthroughLines(raw string) string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return strings.Join(out, "\n")
}

// convertQuantumultX turns "host, example.com, group" / "host-suffix, ..."
// / "host-keyword, ..." lines into their Surge DOMAIN* equivalents.
func convertQuantumultX(raw string) string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isComment(trimmed) {
			out = append(out, trimmed)
			continue
		}
		parts := strings.Split(trimmed, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) < 2 {
			continue
		}
		switch strings.ToLower(parts[0]) {
		case "host":
			out = append(out, "DOMAIN,"+parts[1])
		case "host-suffix":
			out = append(out, "DOMAIN-SUFFIX,"+parts[1])
		case "host-keyword":
			out = append(out, "DOMAIN-KEYWORD,"+parts[1])
		case "ip-cidr", "ip6-cidr":
			out = append(out, "IP-CIDR,"+parts[1])
		}
	}
	return strings.Join(out, "\n")
}

// convertClashDomainPayload turns a Clash "payload:\n  - 'example.com'"
// domain-list document into Surge DOMAIN*/DOMAIN-KEYWORD lines: a leading
// "+." means DOMAIN-SUFFIX, a "*...*" wildcard means DOMAIN-KEYWORD,
// otherwise DOMAIN.
func convertClashDomainPayload(raw string) string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "payload:" {
			continue
		}
		if isComment(trimmed) {
			out = append(out, trimmed)
			continue
		}
		trimmed = strings.TrimPrefix(trimmed, "-")
		trimmed = strings.TrimSpace(trimmed)
		trimmed = strings.Trim(trimmed, "'\"")
		if trimmed == "" {
			continue
		}
		switch {
		case strings.HasPrefix(trimmed, "+."):
			out = append(out, "DOMAIN-SUFFIX,"+strings.TrimPrefix(trimmed, "+."))
		case strings.HasPrefix(trimmed, "*") && strings.HasSuffix(trimmed, "*"):
			out = append(out, "DOMAIN-KEYWORD,"+strings.Trim(trimmed, "*"))
		default:
			out = append(out, "DOMAIN,"+trimmed)
		}
	}
	return strings.Join(out, "\n")
}

// ToClashText renders an ordered ruleset list as Clash's classical inline
// rules block: one "  - 'TYPE,VALUE,GROUP'" line per converted rule,
// preceded by a "rules:" (or legacy "Rule:") key. overwrite is accepted
// but not used: the block is the same either way, and this function does
// not see or remove any rules already present in the template.
func ToClashText(rulesets []model.RulesetContent, overwrite bool, newFieldName bool) string {
	key := "rules"
	if !newFieldName {
		key = "Rule"
	}

	var lines []string
	for _, rs := range rulesets {
		content := rs.GetRuleContent()
		if content == "" {
			continue
		}
		if strings.HasPrefix(content, "[]") {
			inline := strings.TrimSpace(content[2:])
			switch {
			case strings.HasPrefix(inline, "GEOIP,"):
				parts := strings.SplitN(inline, ",", 2)
				if len(parts) == 2 {
					lines = append(lines, "GEOIP,"+strings.TrimSpace(parts[1])+","+rs.Group)
				}
			case inline == "FINAL" || inline == "MATCH":
				lines = append(lines, "MATCH,"+rs.Group)
			}
			continue
		}

		converted := Convert(content, rs.RuleType)
		for _, raw := range strings.Split(converted, "\n") {
			line := strings.TrimSpace(raw)
			if line == "" || isComment(line) {
				continue
			}
			lines = append(lines, line+","+rs.Group)
		}
	}

	var b strings.Builder
	b.WriteString(key + ":\n")
	for _, line := range lines {
		b.WriteString("  - '" + strings.ReplaceAll(line, "'", "''") + "'\n")
	}
	_ = overwrite
	return b.String()
}
