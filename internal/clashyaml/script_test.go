package clashyaml

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jojojoinme/subconverter/internal/base64util"
	"github.com/jojojoinme/subconverter/internal/model"
)

// TestBuildScriptPartsS4GoldenOutput pins spec scenario S4 byte-for-byte:
// the providers map contains exactly one classical "MOO" entry, and the
// script text - including the two-blank-line gap before the geoips tail
// and the single-space-padded geoips literal - matches character for
// character.
func TestBuildScriptPartsS4GoldenOutput(t *testing.T) {
	typedPath := "surge:lists/MOO.list"
	rulesets := []model.RulesetContent{
		model.NewRulesetContent("Proxy", model.RuleTypeSurge, "lists/MOO.list", typedPath, 0, "DOMAIN,example.com\n"),
		model.NewRulesetContent("Domestic", model.RuleTypeSurge, "", "", 0, "[]GEOIP,CN"),
		model.NewRulesetContent("Fallback", model.RuleTypeSurge, "", "", 0, "[]FINAL"),
	}

	providersNode, script := BuildScriptParts(rulesets, "https://x/y", 86400)

	wantProvidersYAML := fmt.Sprintf("MOO:\n    type: http\n    behavior: classical\n    url: https://x/y/getruleset?type=6&url=%s\n    path: ./providers/rule-provider_MOO.yaml\n    interval: 86400\n",
		base64util.Encode(typedPath))
	require.Equal(t, wantProvidersYAML, EncodeDocument(providersNode))

	wantScript := "def main(ctx, md):\n" +
		"  host = md[\"host\"]\n" +
		"\n" +
		"  if ctx.rule_providers[\"MOO\"].match(md):\n" +
		"    ctx.log('[Script] matched Proxy rule')\n" +
		"    return \"Proxy\"\n" +
		"\n" +
		"\n" +
		"  geoips = { \"CN\": \"Domestic\" }\n" +
		"  ip = md[\"dst_ip\"]\n" +
		"  if ip == \"\":\n" +
		"    ip = ctx.resolve_ip(host)\n" +
		"    if ip == \"\":\n" +
		"      ctx.log('[Script] dns lookup error use Fallback')\n" +
		"      return \"Fallback\"\n" +
		"  for key in geoips:\n" +
		"    if ctx.geoip(ip) == key:\n" +
		"      return geoips[key]\n" +
		"  return \"Fallback\""

	assert.Equal(t, wantScript, script)
}

// TestBuildScriptPartsEmptyGeoipsLiteral pins the "{}" (no interior
// spaces) rendering when no GEOIP rulesets are present.
func TestBuildScriptPartsEmptyGeoipsLiteral(t *testing.T) {
	rulesets := []model.RulesetContent{
		model.NewRulesetContent("Proxy", model.RuleTypeSurge, "lists/MOO.list", "surge:lists/MOO.list", 0, "DOMAIN,example.com\n"),
	}

	_, script := BuildScriptParts(rulesets, "https://x/y", 86400)

	assert.Contains(t, script, "  geoips = {}\n")
	assert.True(t, len(script) > 0 && script[len(script)-1] == '"')
	assert.Contains(t, script, `return "DIRECT"`, "final group defaults to DIRECT when no FINAL/MATCH ruleset is present")
}

// TestBuildScriptPartsMixedLayoutBlankLinePlaceholder pins the two
// sequential blank lines emitted in place of an absent domain or ipcidr
// match block within a mixed layout (§9's blank-line placeholder).
func TestBuildScriptPartsMixedLayoutBlankLinePlaceholder(t *testing.T) {
	rulesets := []model.RulesetContent{
		model.NewRulesetContent("Proxy", model.RuleTypeSurge, "lists/ipcidr-only.list", "surge:lists/ipcidr-only.list", 0, "IP-CIDR,10.0.0.0/8\n"),
	}

	_, script := BuildScriptParts(rulesets, "https://x/y", 86400)

	want := "def main(ctx, md):\n" +
		"  host = md[\"host\"]\n" +
		"\n" +
		"\n\n" +
		"  if ctx.rule_providers[\"ipcidr-only_ipcidr\"].match(md):\n" +
		"    ctx.log('[Script] matched Proxy IP rule')\n" +
		"    return \"Proxy\"\n" +
		"\n" +
		"\n" +
		"  geoips = {}\n" +
		"  ip = md[\"dst_ip\"]\n" +
		"  if ip == \"\":\n" +
		"    ip = ctx.resolve_ip(host)\n" +
		"    if ip == \"\":\n" +
		"      ctx.log('[Script] dns lookup error use DIRECT')\n" +
		"      return \"DIRECT\"\n" +
		"  for key in geoips:\n" +
		"    if ctx.geoip(ip) == key:\n" +
		"      return geoips[key]\n" +
		"  return \"DIRECT\""

	assert.Equal(t, want, script)
}

// TestBuildScriptPartsAppleSuppressesIPCIDRProvider pins scenario S5.
func TestBuildScriptPartsAppleSuppressesIPCIDRProvider(t *testing.T) {
	rulesets := []model.RulesetContent{
		model.NewRulesetContent("Proxy", model.RuleTypeSurge, "rule/Apple.list", "surge:rule/Apple.list", 0,
			"DOMAIN-SUFFIX,apple.com\nIP-CIDR,17.0.0.0/8\n"),
	}

	providersNode, _ := BuildScriptParts(rulesets, "https://x/y", 86400)
	out := EncodeDocument(providersNode)

	assert.Contains(t, out, "Apple_domain:")
	assert.NotContains(t, out, "Apple_ipcidr:")
}
