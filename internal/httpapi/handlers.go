package httpapi

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jojojoinme/subconverter/internal/base64util"
	"github.com/jojojoinme/subconverter/internal/clashyaml"
	"github.com/jojojoinme/subconverter/internal/config"
	"github.com/jojojoinme/subconverter/internal/ingest"
	"github.com/jojojoinme/subconverter/internal/model"
	"github.com/jojojoinme/subconverter/internal/profile"
	"github.com/jojojoinme/subconverter/internal/ruleset"
)

const version = "1.0.0"

func versionHandler(c *gin.Context) {
	c.String(http.StatusOK, "subconverter v%s backend\n", version)
}

var supportedTargets = map[string]bool{
	"clash": true, "clashr": true, "surge": true, "quan": true, "quanx": true,
	"loon": true, "ss": true, "ssr": true, "ssd": true, "v2ray": true,
	"trojan": true, "mixed": true, "singbox": true,
}

func targetHandler(c *gin.Context) {
	target := c.Param("target")
	if !supportedTargets[target] {
		c.String(http.StatusBadRequest, "unsupported target type: %s", target)
		return
	}
	subHandlerWithTarget(c, target)
}

func subHandler(c *gin.Context) {
	subHandlerWithTarget(c, "")
}

func surgeToClashHandler(c *gin.Context) {
	var q SubQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	q.Target = "clash"
	q.List = true
	runConversion(c, q)
}

func subHandlerWithTarget(c *gin.Context, forcedTarget string) {
	var q SubQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if forcedTarget != "" {
		q.Target = forcedTarget
	}
	if _, ok := c.GetQuery("rule"); !ok {
		q.EnableRuleGenerator = true
	}
	runConversion(c, q)
}

func runConversion(c *gin.Context, q SubQuery) {
	if err := validate.Struct(q); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	if q.Target != "clash" && q.Target != "clashr" && q.Target != "" {
		c.String(http.StatusNotImplemented, "target %q is not implemented by this deployment", q.Target)
		return
	}
	clashR := q.Target == "clashr"

	nodes, err := ingest.FetchSubscription(q.URL)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal server error: %v", err)
		return
	}

	baseConf, err := loadBaseConf(q.Config)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal server error: %v", err)
		return
	}

	groups := parseGroupParams(c.QueryArray("group"))
	rulesets := parseRulesetParams(c.QueryArray("ruleset"))

	ext := q.ToExtraSettings()
	output := clashyaml.ConvertClash(nodes, baseConf, rulesets, groups, clashR, ext)

	c.Header("Content-Disposition", `attachment; filename="subconverter.yaml"`)
	c.String(http.StatusOK, output)
}

func loadBaseConf(configParam string) (string, error) {
	if configParam == "" {
		return "{}", nil
	}
	if strings.HasPrefix(configParam, "http://") || strings.HasPrefix(configParam, "https://") {
		data, err := ingest.FetchText(configParam)
		if err != nil {
			return "", fmt.Errorf("failed to fetch template: %w", err)
		}
		return data, nil
	}
	base := "."
	if config.Global != nil && config.Global.BasePath != "" {
		base = config.Global.BasePath
	}
	data, err := os.ReadFile(filepath.Join(base, configParam))
	if err != nil {
		return "", fmt.Errorf("failed to read template %q: %w", configParam, err)
	}
	return string(data), nil
}

// parseGroupParams parses repeated "name,kind,member1|member2|..." group
// query params into ProxyGroupConfigs.
func parseGroupParams(raw []string) []model.ProxyGroupConfig {
	var groups []model.ProxyGroupConfig
	for _, entry := range raw {
		parts := strings.SplitN(entry, ",", 3)
		if len(parts) < 2 {
			continue
		}
		group := model.ProxyGroupConfig{
			Name: parts[0],
			Kind: model.ProxyGroupKind(parts[1]),
		}
		if len(parts) == 3 && parts[2] != "" {
			group.Proxies = strings.Split(parts[2], "|")
		}
		groups = append(groups, group)
	}
	return groups
}

// parseRulesetParams parses repeated "group,rule_type,path[,interval]"
// ruleset query params, reading each path's content from disk relative to
// the configured base path.
func parseRulesetParams(raw []string) []model.RulesetContent {
	base := "."
	if config.Global != nil && config.Global.BasePath != "" {
		base = config.Global.BasePath
	}

	var rulesets []model.RulesetContent
	for _, entry := range raw {
		parts := strings.SplitN(entry, ",", 4)
		if len(parts) < 3 {
			continue
		}
		group, typeName, rulePath := parts[0], parts[1], parts[2]
		interval := 0
		if len(parts) == 4 {
			interval, _ = strconv.Atoi(parts[3])
		}

		content := rulePath
		if !strings.HasPrefix(rulePath, "[]") {
			if data, err := os.ReadFile(filepath.Join(base, rulePath)); err == nil {
				content = string(data)
			}
		}

		rulesets = append(rulesets, model.NewRulesetContent(
			group, ruleTypeFromName(typeName), rulePath, typeName+":"+rulePath, interval, content,
		))
	}
	return rulesets
}

func ruleTypeFromName(name string) model.RuleType {
	switch name {
	case "qx", "quantumultx":
		return model.RuleTypeQuantumultX
	case "clash-domain":
		return model.RuleTypeClashDomain
	case "clash-classical":
		return model.RuleTypeClashClassical
	default:
		return model.RuleTypeSurge
	}
}

func profileHandler(c *gin.Context) {
	var q ProfileQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	if !isAPIAuthorized(q.Token) {
		c.String(http.StatusForbidden, "Forbidden")
		return
	}

	base := "."
	if config.Global != nil && config.Global.BasePath != "" {
		base = config.Global.BasePath
	}

	encodedQuery, err := profile.Load(base, q.Name)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	var forwarded SubQuery
	if err := bindEncodedQuery(encodedQuery, &forwarded); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	runConversion(c, forwarded)
}

func isAPIAuthorized(token string) bool {
	if config.Global == nil || config.Global.APIAccessToken == "" {
		return true
	}
	return token == config.Global.APIAccessToken
}

func rulesetHandler(c *gin.Context) {
	var q RulesetQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	decodedURL := base64util.Decode(q.URL)
	raw, err := ingest.FetchRuleset(decodedURL)
	if err != nil {
		c.String(http.StatusBadRequest, "failed to fetch ruleset: %v", err)
		return
	}

	group := "DIRECT"
	if q.Group != "" {
		if decoded := base64util.Decode(q.Group); decoded != "" {
			group = decoded
		}
	}

	converted := ruleset.Convert(raw, model.RuleTypeSurge)
	output, err := renderRulesetPayload(q.Type, converted, group)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	c.String(http.StatusOK, output)
}

func renderRulesetPayload(ruleType int, converted, group string) (string, error) {
	lines := nonEmptyLines(converted)

	switch ruleType {
	case 1:
		return strings.Join(lines, "\n") + "\n", nil
	case 2:
		out := make([]string, len(lines))
		for i, line := range lines {
			out[i] = ruleset.TransformRuleToCommon(line, group, true)
		}
		return strings.Join(out, "\n") + "\n", nil
	case 3:
		return buildClashPayload(extractValues(lines, domainValue)), nil
	case 4:
		return buildClashPayload(extractValues(lines, ipcidrValue)), nil
	case 6:
		return buildClashPayload(lines), nil
	default:
		return "", fmt.Errorf("unsupported ruleset type")
	}
}

func nonEmptyLines(content string) []string {
	var lines []string
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "//") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func domainValue(line string) (string, bool) {
	parts := strings.SplitN(line, ",", 2)
	if len(parts) != 2 {
		return "", false
	}
	switch strings.TrimSpace(parts[0]) {
	case "DOMAIN":
		return strings.TrimSpace(parts[1]), true
	case "DOMAIN-SUFFIX":
		return "+." + strings.TrimSpace(parts[1]), true
	case "DOMAIN-KEYWORD":
		return "*" + strings.TrimSpace(parts[1]) + "*", true
	default:
		return "", false
	}
}

func ipcidrValue(line string) (string, bool) {
	parts := strings.SplitN(line, ",", 2)
	if len(parts) != 2 {
		return "", false
	}
	switch strings.TrimSpace(parts[0]) {
	case "IP-CIDR", "IP-CIDR6":
		return strings.TrimSpace(parts[1]), true
	default:
		return "", false
	}
}

func extractValues(lines []string, extract func(string) (string, bool)) []string {
	var values []string
	for _, line := range lines {
		if v, ok := extract(line); ok {
			values = append(values, v)
		}
	}
	return values
}

func buildClashPayload(values []string) string {
	var b strings.Builder
	b.WriteString("payload:\n")
	for _, v := range values {
		b.WriteString("  - '" + strings.ReplaceAll(v, "'", "''") + "'\n")
	}
	return b.String()
}
