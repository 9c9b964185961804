// Script & Provider Synthesizer (§4.8): derives a rule-providers mapping
// and a deterministic script program from an ordered list of ruleset
// contents. Line-exact per spec.md and the "Script as data, not code"
// design note (§9) - script_test.go compares the classical and ipcidr
// match blocks, the blank-line placeholder and the geoips tail
// byte-for-byte.
package clashyaml

import (
	"path"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jojojoinme/subconverter/internal/base64util"
	"github.com/jojojoinme/subconverter/internal/model"
	"github.com/jojojoinme/subconverter/internal/ruleset"
)

type scriptRuleProvider struct {
	name        string
	behavior    string
	requestType int
	group       string
	label       string
	typedPath   string
	interval    int
}

type scriptRuleLayout struct {
	classical *scriptRuleProvider
	domain    *scriptRuleProvider
	ipcidr    *scriptRuleProvider
}

// BuildScriptParts synthesizes the rule-providers mapping and the script
// source text for the given rulesets.
func BuildScriptParts(rulesets []model.RulesetContent, managedConfigPrefix string, defaultInterval int) (*yaml.Node, string) {
	var providers []scriptRuleProvider
	var layouts []scriptRuleLayout
	var geoips [][2]string
	finalGroup := "DIRECT"

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
					code := strings.TrimSpace(parts[1])
					geoips = append(geoips, [2]string{code, rs.Group})
				}
			case inline == "FINAL" || inline == "MATCH":
				finalGroup = rs.Group
			}
			continue
		}

		converted := ruleset.Convert(content, rs.RuleType)
		if strings.TrimSpace(converted) == "" {
			continue
		}

		hasDomain, hasIPCIDR := scanRuleFlags(converted)

		providerBaseName := providerBaseNameOf(rs.RulePath)
		typedPath := rs.RulePathTyped
		interval := rs.UpdateInterval
		if interval <= 0 {
			interval = defaultInterval
		}

		forceClassical := providerBaseName == "MOO" || providerBaseName == "Download"
		if forceClassical || (!hasDomain && !hasIPCIDR) {
			provider := scriptRuleProvider{
				name:        providerBaseName,
				behavior:    "classical",
				requestType: 6,
				group:       rs.Group,
				label:       "rule",
				typedPath:   typedPath,
				interval:    interval,
			}
			providers = append(providers, provider)
			layouts = append(layouts, scriptRuleLayout{classical: &provider})
			continue
		}

		var layout scriptRuleLayout
		if hasDomain {
			provider := scriptRuleProvider{
				name:        providerBaseName + "_domain",
				behavior:    "domain",
				requestType: 3,
				group:       rs.Group,
				label:       "DOMAIN rule",
				typedPath:   typedPath,
				interval:    interval,
			}
			providers = append(providers, provider)
			layout.domain = &provider
		}
		if hasIPCIDR && providerBaseName != "Apple" {
			provider := scriptRuleProvider{
				name:        providerBaseName + "_ipcidr",
				behavior:    "ipcidr",
				requestType: 4,
				group:       rs.Group,
				label:       "IP rule",
				typedPath:   typedPath,
				interval:    interval,
			}
			providers = append(providers, provider)
			layout.ipcidr = &provider
		}
		layouts = append(layouts, layout)
	}

	return buildProvidersNode(providers, managedConfigPrefix), buildScriptCode(layouts, geoips, finalGroup)
}

func scanRuleFlags(converted string) (hasDomain, hasIPCIDR bool) {
	for _, raw := range strings.Split(converted, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "//") {
			continue
		}
		ruleType := strings.TrimSpace(strings.SplitN(line, ",", 2)[0])
		switch ruleType {
		case "DOMAIN", "DOMAIN-SUFFIX", "DOMAIN-KEYWORD":
			hasDomain = true
		case "IP-CIDR":
			hasIPCIDR = true
		}
	}
	return
}

func providerBaseNameOf(rulePath string) string {
	base := path.Base(rulePath)
	return strings.TrimSuffix(base, ".list")
}

func buildProvidersNode(providers []scriptRuleProvider, managedConfigPrefix string) *yaml.Node {
	node := newMapping()
	for _, p := range providers {
		item := newMapping()
		setField(item, "type", "http")
		setField(item, "behavior", p.behavior)
		url := managedConfigPrefix + "/getruleset?type=" + strconv.Itoa(p.requestType) +
			"&url=" + base64util.Encode(p.typedPath)
		setField(item, "url", url)
		setField(item, "path", "./providers/rule-provider_"+p.name+".yaml")
		setField(item, "interval", p.interval)
		setField(node, p.name, item)
	}
	return node
}

func buildScriptCode(layouts []scriptRuleLayout, geoips [][2]string, finalGroup string) string {
	var b strings.Builder
	b.WriteString("def main(ctx, md):\n  host = md[\"host\"]\n\n")

	for _, layout := range layouts {
		if layout.classical != nil {
			writeMatchBlock(&b, layout.classical)
			continue
		}
		if layout.domain != nil {
			writeMatchBlock(&b, layout.domain)
		} else {
			b.WriteString("\n\n")
		}
		if layout.ipcidr != nil {
			writeMatchBlock(&b, layout.ipcidr)
		} else {
			b.WriteString("\n\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("  geoips = {")
	if len(geoips) > 0 {
		b.WriteString(" ")
		for i, g := range geoips {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("\"" + g[0] + "\": \"" + g[1] + "\"")
		}
		b.WriteString(" ")
	}
	b.WriteString("}\n")
	b.WriteString("  ip = md[\"dst_ip\"]\n  if ip == \"\":\n    ip = ctx.resolve_ip(host)\n    if ip == \"\":\n      ctx.log('[Script] dns lookup error use ")
	b.WriteString(finalGroup)
	b.WriteString("')\n      return \"")
	b.WriteString(finalGroup)
	b.WriteString("\"\n  for key in geoips:\n    if ctx.geoip(ip) == key:\n      return geoips[key]\n  return \"")
	b.WriteString(finalGroup)
	b.WriteString("\"")

	return b.String()
}

func writeMatchBlock(b *strings.Builder, p *scriptRuleProvider) {
	b.WriteString("  if ctx.rule_providers[\"" + p.name + "\"].match(md):\n")
	b.WriteString("    ctx.log('[Script] matched " + p.group + " " + p.label + "')\n")
	b.WriteString("    return \"" + p.group + "\"\n\n")
}
