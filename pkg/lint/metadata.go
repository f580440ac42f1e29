package lint

import "strings"

// DefaultDocsBaseURL is the hosted rule documentation.
const DefaultDocsBaseURL = "https://esqllint.dev/docs/rules"

// DocURL returns the documentation page of a rule below base. An empty base
// selects DefaultDocsBaseURL.
func DocURL(base, ruleID string) string {
	if base == "" {
		base = DefaultDocsBaseURL
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.ToLower(ruleID)
}

// ImpactLevel weights the diagnostics of a rule on a 0-100 scale.
type ImpactLevel int

// Impact presets. Rules pick one instead of a raw score.
const (
	ImpactLow      ImpactLevel = 20
	ImpactMedium   ImpactLevel = 50
	ImpactHigh     ImpactLevel = 70
	ImpactCritical ImpactLevel = 90
)

// Int returns the impact score.
func (l ImpactLevel) Int() int {
	return int(l)
}
