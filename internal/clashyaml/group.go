// Group Resolver (§4.5): expands each extra group config's member
// patterns against the emitted proxy set, injecting the DIRECT sentinel
// when resolution is empty and no providers are configured.
package clashyaml

import (
	"gopkg.in/yaml.v3"

	"github.com/jojojoinme/subconverter/internal/model"
	"github.com/jojojoinme/subconverter/internal/pattern"
)

// ResolveGroupMembers expands every pattern in group.Proxies against
// remarks, then applies the DIRECT-injection rule of §4.5 / property 7.
func ResolveGroupMembers(group model.ProxyGroupConfig, remarks []string) []string {
	var members []string
	for _, expr := range group.Proxies {
		pattern.Match(expr, remarks, &members)
	}
	if len(members) == 0 && len(group.UsingProvider) == 0 {
		members = []string{"DIRECT"}
	}
	return members
}

// BuildGroupNode serializes one resolved proxy group to its Clash
// mapping node.
func BuildGroupNode(group model.ProxyGroupConfig, members []string) *yaml.Node {
	node := newMapping()
	setField(node, "name", group.Name)
	setField(node, "type", string(group.Kind))
	if len(members) > 0 {
		setField(node, "proxies", members)
	}
	if len(group.UsingProvider) > 0 {
		setField(node, "use", group.UsingProvider)
	}

	switch group.Kind {
	case model.GroupURLTest:
		if group.URL != "" {
			setField(node, "url", group.URL)
		}
		if group.Interval > 0 {
			setField(node, "interval", group.Interval)
		}
		if group.Tolerance > 0 {
			setField(node, "tolerance", group.Tolerance)
		}
	case model.GroupFallback:
		if group.URL != "" {
			setField(node, "url", group.URL)
		}
		if group.Interval > 0 {
			setField(node, "interval", group.Interval)
		}
	case model.GroupLoadBalance:
		if group.URL != "" {
			setField(node, "url", group.URL)
		}
		if group.Interval > 0 {
			setField(node, "interval", group.Interval)
		}
	case model.GroupSelect:
		if group.Lazy {
			setField(node, "lazy", group.Lazy)
		}
	}

	return node
}

// nameOf returns the "name" field's scalar value from a group mapping
// node, or "" if absent.
func nameOf(groupNode *yaml.Node) string {
	if n := getField(groupNode, "name"); n != nil && n.Kind == yaml.ScalarNode {
		return n.Value
	}
	return ""
}
