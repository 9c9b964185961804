package clashyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStripNullRulesRemovesBothFieldNamesUnconditionally pins §4.7: a
// null-valued rules key must be stripped regardless of which spelling
// the template uses and regardless of ClashNewFieldName, matching the
// Rust original's unconditional strip.
func TestStripNullRulesRemovesBothFieldNamesUnconditionally(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"new field name", "rules:\nport: 7890\n"},
		{"legacy field name", "Rule:\nport: 7890\n"},
	}

	for _, tc := range cases {
		root, err := ParseTemplate(tc.yaml)
		require.NoError(t, err)

		StripNullRules(root)

		out := EncodeDocument(root)
		assert.NotContains(t, out, "rules:", tc.name)
		assert.NotContains(t, out, "Rule:", tc.name)
		assert.Contains(t, out, "port: 7890", tc.name)
	}
}

// TestStripNullRulesLeavesNonNullRules confirms a populated "rules" key
// survives untouched.
func TestStripNullRulesLeavesNonNullRules(t *testing.T) {
	root, err := ParseTemplate("rules:\n  - DOMAIN,example.com,Proxy\n")
	require.NoError(t, err)

	StripNullRules(root)

	out := EncodeDocument(root)
	assert.Contains(t, out, "rules:")
	assert.Contains(t, out, "DOMAIN,example.com,Proxy")
}
