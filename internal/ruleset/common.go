package ruleset

import "strings"

// TransformRuleToCommon renders one Surge-style "TYPE,VALUE[,extra]" line
// as a QuantumultX/common-style rule line tagged with group, per the
// /getruleset?type=2 contract of spec.md §6 (transform_rule_to_common).
func TransformRuleToCommon(line, group string, includeGroup bool) string {
	parts := strings.SplitN(line, ",", 2)
	if len(parts) != 2 {
		return line
	}
	ruleType := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])

	var out string
	switch ruleType {
	case "DOMAIN":
		out = "host, " + value
	case "DOMAIN-SUFFIX":
		out = "host-suffix, " + value
	case "DOMAIN-KEYWORD":
		out = "host-keyword, " + value
	case "IP-CIDR":
		out = "ip-cidr, " + value
	case "IP-CIDR6":
		out = "ip6-cidr, " + value
	default:
		out = ruleType + ", " + value
	}

	if includeGroup {
		out += ", " + group
	}
	return out
}
