// Template Merger (§4.6): merges generated proxies and groups into the
// parsed template YAML under either the legacy or new field names,
// replacing same-named groups and leaving every other template key
// untouched. Implemented over yaml.Node rather than a generic map so the
// parse -> mutate -> re-encode round trip preserves both key order and
// foreign keys, per §9's "template merge as record-level operation."
package clashyaml

import (
	"log"

	"gopkg.in/yaml.v3"

	"github.com/jojojoinme/subconverter/internal/model"
)

const (
	proxiesKeyNew = "proxies"
	proxiesKeyOld = "Proxy"
	groupsKeyNew  = "proxy-groups"
	groupsKeyOld  = "Proxy Group"
	rulesKeyNew   = "rules"
	rulesKeyOld   = "Rule"
)

// ParseTemplate parses the base template YAML into a mapping node. A null
// document becomes an empty mapping; a parse failure is reported to the
// caller, which per §7 must emit empty output and log at error.
func ParseTemplate(baseConf string) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(baseConf), &doc); err != nil {
		log.Printf("[template] base template parse failed: %v", err)
		return nil, err
	}

	if doc.Kind == 0 || (doc.Kind == yaml.DocumentNode && len(doc.Content) == 0) {
		return newMapping(), nil
	}

	root := &doc
	if doc.Kind == yaml.DocumentNode {
		root = doc.Content[0]
	}
	if root.Tag == "!!null" || root.Kind == yaml.ScalarNode && root.Value == "" {
		return newMapping(), nil
	}
	if root.Kind != yaml.MappingNode {
		return newMapping(), nil
	}
	return root, nil
}

func fieldNames(newFieldName bool) (proxiesKey, groupsKey, rulesKey string) {
	if newFieldName {
		return proxiesKeyNew, groupsKeyNew, rulesKeyNew
	}
	return proxiesKeyOld, groupsKeyOld, rulesKeyOld
}

// InsertProxies writes the serialized proxies sequence under the field
// name selected by clashNewFieldName.
func InsertProxies(root *yaml.Node, proxies []model.Proxy, clashNewFieldName bool) {
	proxiesKey, _, _ := fieldNames(clashNewFieldName)
	setField(root, proxiesKey, BuildProxiesNode(proxies))
}

// MergeGroups reads any existing groups sequence under the selected field
// name, replaces entries whose name matches a newly generated group
// (preserving the original index), and appends the rest in order -
// property 8.
func MergeGroups(root *yaml.Node, newGroups []*yaml.Node, clashNewFieldName bool) {
	if len(newGroups) == 0 {
		return
	}
	_, groupsKey, _ := fieldNames(clashNewFieldName)

	var original []*yaml.Node
	if existing := getField(root, groupsKey); existing != nil && existing.Kind == yaml.SequenceNode {
		original = append(original, existing.Content...)
	}

	for _, group := range newGroups {
		name := nameOf(group)
		replaced := false
		for i, og := range original {
			if nameOf(og) == name {
				original[i] = group
				replaced = true
				break
			}
		}
		if !replaced {
			original = append(original, group)
		}
	}

	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: original}
	setField(root, groupsKey, seq)
}

// StripNullRules removes a null-valued rules/Rule key, per §4.7's
// inline-rule mode preamble. Both the legacy and new field names are
// checked unconditionally: a template can carry either spelling
// regardless of ClashNewFieldName, and the Rust original strips both.
func StripNullRules(root *yaml.Node) {
	for _, rulesKey := range []string{rulesKeyNew, rulesKeyOld} {
		if v := getField(root, rulesKey); v != nil && v.Tag == "!!null" {
			removeField(root, rulesKey)
		}
	}
}

// NodelistDocument builds the minimal {proxies: [...]} document emitted
// in nodelist mode, ignoring template and groups entirely.
func NodelistDocument(proxies []model.Proxy) *yaml.Node {
	root := newMapping()
	setField(root, "proxies", BuildProxiesNode(proxies))
	return root
}

// SetMode overwrites the "mode" key if (and only if) it already exists in
// the template, per §4.7's script-mode preamble.
func SetMode(root *yaml.Node, value string) {
	if getField(root, "mode") != nil {
		setField(root, "mode", value)
	}
}

// EncodeDocument serializes root to YAML text, returning "" on failure
// per §4.9 / §7 (serialization failure yields empty output for the step).
func EncodeDocument(root *yaml.Node) string {
	out, err := yaml.Marshal(root)
	if err != nil {
		log.Printf("[template] yaml encode failed: %v", err)
		return ""
	}
	return string(out)
}
