package model

// ExtraSettings configures a single conversion invocation. Zero value is
// the conservative default: legacy field names, inline rules, no script.
type ExtraSettings struct {
	UDP            Tribool
	TFO            Tribool
	SkipCertVerify Tribool

	AppendProxyType  bool
	FilterDeprecated bool

	ClashNewFieldName bool
	ClashScript       bool

	ClashProxiesStyle     string // "block" | "compact" | ""
	ClashProxyGroupsStyle string

	Nodelist bool

	EnableRuleGenerator    bool
	OverwriteOriginalRules bool

	ManagedConfigPrefix string
}

// ProxyGroupKind enumerates the supported proxy-group kinds.
type ProxyGroupKind string

const (
	GroupSelect      ProxyGroupKind = "select"
	GroupURLTest     ProxyGroupKind = "url-test"
	GroupFallback    ProxyGroupKind = "fallback"
	GroupLoadBalance ProxyGroupKind = "load-balance"
)

// ProxyGroupConfig is one user-configured proxy group awaiting resolution
// against the emitted proxy set.
type ProxyGroupConfig struct {
	Name          string
	Kind          ProxyGroupKind
	Proxies       []string // member patterns: literals and wildcards
	UsingProvider []string

	// Kind-specific fields.
	URL       string
	Interval  int
	Tolerance int
	Lazy      bool
}

// RulesetContent describes one ruleset artifact consumed by the
// classifier/converter and the script synthesizer.
type RulesetContent struct {
	Group         string
	RuleType      RuleType
	RulePath      string
	RulePathTyped string
	UpdateInterval int

	content string
}

// RuleType selects which external format converter a ruleset uses.
type RuleType int

const (
	RuleTypeSurge RuleType = iota
	RuleTypeQuantumultX
	RuleTypeClashDomain
	RuleTypeClashClassical
)

// NewRulesetContent builds a RulesetContent with its raw content attached.
func NewRulesetContent(group string, ruleType RuleType, rulePath, rulePathTyped string, updateInterval int, content string) RulesetContent {
	return RulesetContent{
		Group:          group,
		RuleType:       ruleType,
		RulePath:       rulePath,
		RulePathTyped:  rulePathTyped,
		UpdateInterval: updateInterval,
		content:        content,
	}
}

// GetRuleContent yields the content attached via NewRulesetContent or
// SetContent. An inline directive is carried in that content itself,
// behind the "[]" sentinel prefix; RulePath is not consulted.
func (r RulesetContent) GetRuleContent() string {
	return r.content
}

// SetContent overrides the raw rule text. Used by tests and by loaders
// that fetch content outside of NewRulesetContent.
func (r *RulesetContent) SetContent(content string) {
	r.content = content
}
