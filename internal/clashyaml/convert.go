// ConvertClash is the core entry point (proxy_to_clash in
// original_source/generator/exports/proxy_to_clash.rs): it merges a
// user-supplied template with generated proxies/groups/script, and
// assembles the final YAML (+ optional inline rules text) output.
package clashyaml

import (
	"gopkg.in/yaml.v3"

	"github.com/jojojoinme/subconverter/internal/filter"
	"github.com/jojojoinme/subconverter/internal/model"
	"github.com/jojojoinme/subconverter/internal/remark"
	"github.com/jojojoinme/subconverter/internal/ruleset"
)

// ConvertClash converts nodes to a Clash-family configuration document,
// following the base template and applying the ruleset array when rule
// generation is enabled.
func ConvertClash(
	nodes []model.Proxy,
	baseConf string,
	rulesets []model.RulesetContent,
	extraGroups []model.ProxyGroupConfig,
	clashR bool,
	ext model.ExtraSettings,
) string {
	root, err := ParseTemplate(baseConf)
	if err != nil {
		return ""
	}

	kept := ProcessProxies(nodes, clashR, ext)

	if ext.Nodelist {
		return EncodeDocument(NodelistDocument(kept))
	}

	InsertProxies(root, kept, ext.ClashNewFieldName)

	if len(extraGroups) > 0 {
		remarks := make([]string, len(kept))
		for i, p := range kept {
			remarks[i] = p.Remark
		}

		var groupNodes []*yaml.Node
		for _, g := range extraGroups {
			members := ResolveGroupMembers(g, remarks)
			groupNodes = append(groupNodes, BuildGroupNode(g, members))
		}
		MergeGroups(root, groupNodes, ext.ClashNewFieldName)
	}

	if !ext.EnableRuleGenerator {
		return EncodeDocument(root)
	}

	if ext.ClashScript {
		mode := "Script"
		if ext.ClashNewFieldName {
			mode = "script"
		}
		SetMode(root, mode)

		if ext.ManagedConfigPrefix != "" {
			providersNode, scriptCode := BuildScriptParts(rulesets, ext.ManagedConfigPrefix, 86400)
			setField(root, "rule-providers", providersNode)
			scriptMap := newMapping()
			setField(scriptMap, "code", scriptCode)
			setField(root, "script", scriptMap)
		}

		return EncodeDocument(root)
	}

	StripNullRules(root)

	rulesText := ruleset.ToClashText(rulesets, ext.OverwriteOriginalRules, ext.ClashNewFieldName)
	return EncodeDocument(root) + rulesText
}

// ProcessProxies runs the Proxy Filter (§4.2) and Remark Normalizer
// (§4.3) over nodes, in order, and applies the udp/tfo/skip-cert-verify
// defaults (§4.4) to each survivor. The returned slice preserves input
// order for kept proxies.
func ProcessProxies(nodes []model.Proxy, clashR bool, ext model.ExtraSettings) []model.Proxy {
	var kept []model.Proxy
	var remarks []string

	for _, node := range nodes {
		proxyRemark := remark.Prefix(node.Remark, node.Type.String(), ext.AppendProxyType)
		proxyRemark = remark.Dedup(proxyRemark, remarks, false)

		decision := filter.Decide(node, clashR, ext.FilterDeprecated)
		if !decision.Keep {
			filter.LogSkip(proxyRemark, decision.Reason)
			continue
		}
		remarks = append(remarks, proxyRemark)

		processed := node.SetRemark(proxyRemark).ApplyDefaults(ext.UDP, ext.TFO, ext.SkipCertVerify)
		kept = append(kept, processed)
	}

	return kept
}
