package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/esqllint/pkg/ast"
)

func nopCheck(map[string]any) (Check, error) {
	return func(IssueSink) ast.Visitor { return &ast.BaseVisitor{} }, nil
}

func TestRegistry(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	Register(RuleDef{ID: "ST01", Name: "structure.first", Group: "structure", New: nopCheck})
	Register(RuleDef{ID: "CV01", Name: "convention.first", Group: "convention", New: nopCheck})
	Register(RuleDef{ID: "ST02", Name: "structure.second", Group: "structure", New: nopCheck})

	assert.Equal(t, 3, Count())

	var ids []string
	for _, r := range GetAllRules() {
		ids = append(ids, r.ID())
	}
	assert.Equal(t, []string{"CV01", "ST01", "ST02"}, ids, "rules are sorted by ID")

	rule, ok := GetRuleByID("st01")
	require.True(t, ok, "lookup ignores case")
	assert.Equal(t, "structure.first", rule.Name())

	_, ok = GetRuleByID("XX99")
	assert.False(t, ok)

	structure := GetRulesByGroup("structure")
	require.Len(t, structure, 2)
	assert.Equal(t, "ST01", structure[0].ID())
	assert.Equal(t, "ST02", structure[1].ID())

	assert.Equal(t, []string{"convention", "structure"}, Groups())

	// Re-registering replaces the previous definition.
	Register(RuleDef{ID: "ST01", Name: "structure.replaced", Group: "structure", New: nopCheck})
	rule, _ = GetRuleByID("ST01")
	assert.Equal(t, "structure.replaced", rule.Name())
	assert.Equal(t, 3, Count())

	Clear()
	assert.Equal(t, 0, Count())
	assert.Empty(t, AllRules())
}

func TestWrapRuleDef(t *testing.T) {
	def := RuleDef{
		ID:          "TST01",
		Name:        "testing.rule",
		Group:       "testing",
		Description: "A test rule",
		Severity:    SeverityHint,
		ConfigKeys:  []string{"max_count"},
		Rationale:   "why",
		BadExample:  "bad",
		GoodExample: "good",
		Fix:         "fix",
		New:         nopCheck,
	}
	rule := WrapRuleDef(def)

	assert.Equal(t, "TST01", rule.ID())
	assert.Equal(t, "testing.rule", rule.Name())
	assert.Equal(t, "testing", rule.Group())
	assert.Equal(t, "A test rule", rule.Description())
	assert.Equal(t, SeverityHint, rule.DefaultSeverity())
	assert.Equal(t, []string{"max_count"}, rule.ConfigKeys())
	assert.Equal(t, ImpactMedium.Int(), rule.ImpactScore(), "zero impact defaults to medium")
	assert.Equal(t, "why", rule.Rationale())
	assert.Equal(t, "bad", rule.BadExample())
	assert.Equal(t, "good", rule.GoodExample())
	assert.Equal(t, "fix", rule.Fix())

	check, err := rule.NewCheck(nil)
	require.NoError(t, err)
	assert.NotNil(t, check(&IssueCollector{}))

	unwrapped := rule.(*wrappedRuleDef).Unwrap()
	assert.Equal(t, "TST01", unwrapped.ID)

	info := GetRuleInfo(rule)
	assert.Equal(t, "TST01", info.ID)
	assert.Equal(t, SeverityHint, info.DefaultSeverity)
	assert.Equal(t, "https://esqllint.dev/docs/rules/tst01", info.DocumentationURL)
}

func TestConfig(t *testing.T) {
	var nilCfg *Config
	assert.False(t, nilCfg.IsDisabled("ST01"))
	assert.Equal(t, SeverityWarning, nilCfg.GetSeverity("ST01", SeverityWarning))
	assert.Nil(t, nilCfg.GetRuleOptions("ST01"))

	cfg := NewConfig().
		Disable("ST01").
		SetSeverity("CV01", SeverityError).
		SetRuleOptions("CV01", map[string]any{"format": "^x$"}).
		SetRuleOptions("CV01", map[string]any{"other": 1})

	assert.True(t, cfg.IsDisabled("ST01"))
	assert.False(t, cfg.IsDisabled("CV01"))
	assert.Equal(t, SeverityError, cfg.GetSeverity("CV01", SeverityWarning))
	assert.Equal(t, SeverityInfo, cfg.GetSeverity("ST01", SeverityInfo))
	assert.Equal(t, map[string]any{"format": "^x$", "other": 1}, cfg.GetRuleOptions("CV01"))

	assert.Equal(t, "https://esqllint.dev/docs/rules/cv01", cfg.DocURL("CV01"))
	assert.Equal(t, "https://esqllint.dev/docs/rules/st01", nilCfg.DocURL("ST01"))
	cfg.SetDocsBaseURL("file:///opt/esqllint/docs/")
	assert.Equal(t, "file:///opt/esqllint/docs/cv01", cfg.DocURL("CV01"))
}

func TestDocURL(t *testing.T) {
	assert.Equal(t, "https://esqllint.dev/docs/rules/st01", DocURL("", "ST01"))
	assert.Equal(t, "https://docs.example.com/st01", DocURL("https://docs.example.com", "ST01"))
	assert.Equal(t, "https://docs.example.com/st01", DocURL("https://docs.example.com/", "st01"))
}
