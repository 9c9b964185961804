package ruleset

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jojojoinme/subconverter/internal/model"
)

func TestConvertQuantumultXToSurge(t *testing.T) {
	raw := "host, example.com, PROXY\nhost-suffix, example.org\nhost-keyword, ads\nip-cidr, 10.0.0.0/8\n# a comment\n"
	got := Convert(raw, model.RuleTypeQuantumultX)

	assert.Contains(t, got, "DOMAIN,example.com")
	assert.Contains(t, got, "DOMAIN-SUFFIX,example.org")
	assert.Contains(t, got, "DOMAIN-KEYWORD,ads")
	assert.Contains(t, got, "IP-CIDR,10.0.0.0/8")
	assert.Contains(t, got, "# a comment")
}

func TestConvertClashDomainPayload(t *testing.T) {
	raw := "payload:\n  - '+.example.com'\n  - 'example.org'\n  - '*ads*'\n"
	got := Convert(raw, model.RuleTypeClashDomain)

	assert.Contains(t, got, "DOMAIN-SUFFIX,example.com")
	assert.Contains(t, got, "DOMAIN,example.org")
	assert.Contains(t, got, "DOMAIN-KEYWORD,ads")
}

func TestConvertPassthroughKeepsClassicalLinesAndComments(t *testing.T) {
	raw := "# a header\nDOMAIN,example.com\nIP-CIDR,10.0.0.0/8\n\n"
	got := Convert(raw, model.RuleTypeSurge)

	assert.Equal(t, "# a header\nDOMAIN,example.com\nIP-CIDR,10.0.0.0/8", got)
}

func TestTransformRuleToCommon(t *testing.T) {
	assert.Equal(t, "host, example.com, PROXY", TransformRuleToCommon("DOMAIN,example.com", "PROXY", true))
	assert.Equal(t, "host-suffix, example.com, PROXY", TransformRuleToCommon("DOMAIN-SUFFIX,example.com", "PROXY", true))
	assert.Equal(t, "ip-cidr, 10.0.0.0/8", TransformRuleToCommon("IP-CIDR,10.0.0.0/8", "PROXY", false))
}

func TestToClashTextRendersInlineFinalAndGeoip(t *testing.T) {
	rulesets := []model.RulesetContent{
		model.NewRulesetContent("CN", model.RuleTypeSurge, "[]GEOIP,CN", "geoip:cn", 0, "[]GEOIP,CN"),
		model.NewRulesetContent("PROXY", model.RuleTypeSurge, "[]FINAL", "final", 0, "[]FINAL"),
	}
	got := ToClashText(rulesets, false, true)

	assert.Contains(t, got, "rules:")
	assert.Contains(t, got, "GEOIP,CN,CN")
	assert.Contains(t, got, "MATCH,PROXY")
}

func TestToClashTextAppendsGroupToConvertedRules(t *testing.T) {
	rulesets := []model.RulesetContent{
		model.NewRulesetContent("PROXY", model.RuleTypeSurge, "rule.list", "surge:rule.list", 0, "DOMAIN,example.com"),
	}
	got := ToClashText(rulesets, false, false)

	assert.Contains(t, got, "Rule:")
	assert.Contains(t, got, "DOMAIN,example.com,PROXY")
}

// TestToClashTextOverwriteFlagDoesNotAffectGeneratedRules documents that
// ToClashText ignores overwrite: it renders the same rules text from
// rulesets whether overwrite is true or false. Asserted here so a future
// change to this generator's handling of overwrite is a deliberate,
// visible diff.
func TestToClashTextOverwriteFlagDoesNotAffectGeneratedRules(t *testing.T) {
	rulesets := []model.RulesetContent{
		model.NewRulesetContent("PROXY", model.RuleTypeSurge, "rule.list", "surge:rule.list", 0, "DOMAIN,example.com"),
	}

	withOverwrite := ToClashText(rulesets, true, false)
	withoutOverwrite := ToClashText(rulesets, false, false)

	assert.Equal(t, withOverwrite, withoutOverwrite)
	assert.Contains(t, withoutOverwrite, "DOMAIN,example.com,PROXY")
}
