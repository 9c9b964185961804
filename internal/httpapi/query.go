package httpapi

import "github.com/jojojoinme/subconverter/internal/model"

// SubQuery binds the query parameters of GET /sub (and, by extension,
// /surge2clash and /:target), per spec.md §6.
type SubQuery struct {
	Target string `form:"target" binding:"omitempty,oneof=clash clashr surge quan quanx loon ss ssr ssd v2ray trojan mixed singbox"`
	URL    string `form:"url" binding:"required,url"`
	Config string `form:"config"`

	List                bool   `form:"list"`
	UDP                 string `form:"udp" binding:"omitempty,oneof=true false"`
	TFO                 string `form:"tfo" binding:"omitempty,oneof=true false"`
	SkipCertVerify      string `form:"scv" binding:"omitempty,oneof=true false"`
	AppendType          bool   `form:"append_type"`
	FilterDeprecated    bool   `form:"filter_deprecated"`
	NewName             bool   `form:"new_name"`
	Script              bool   `form:"script"`
	ManagedConfigPrefix string `form:"managed_config_prefix"`
	EnableRuleGenerator bool   `form:"rule" binding:"-"`
	OverwriteRules      bool   `form:"overwrite_rules"`
}

func parseTribool(value string) model.Tribool {
	switch value {
	case "true":
		return model.TriboolTrue
	case "false":
		return model.TriboolFalse
	default:
		return model.TriboolUnset
	}
}

// ToExtraSettings maps the bound query onto the core's ExtraSettings.
func (q SubQuery) ToExtraSettings() model.ExtraSettings {
	return model.ExtraSettings{
		UDP:                    parseTribool(q.UDP),
		TFO:                    parseTribool(q.TFO),
		SkipCertVerify:         parseTribool(q.SkipCertVerify),
		AppendProxyType:        q.AppendType,
		FilterDeprecated:       q.FilterDeprecated,
		ClashNewFieldName:      q.NewName,
		ClashScript:            q.Script,
		Nodelist:               q.List,
		EnableRuleGenerator:    q.EnableRuleGenerator,
		OverwriteOriginalRules: q.OverwriteRules,
		ManagedConfigPrefix:    q.ManagedConfigPrefix,
	}
}

// RulesetQuery binds GET /getruleset's query parameters.
type RulesetQuery struct {
	Type  int    `form:"type" binding:"required,oneof=1 2 3 4 6"`
	URL   string `form:"url" binding:"required"`
	Group string `form:"group"`
}

// ProfileQuery binds GET /getprofile's query parameters.
type ProfileQuery struct {
	Name  string `form:"name" binding:"required"`
	Token string `form:"token"`
}
