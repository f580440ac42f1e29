package lint

import (
	"slices"
	"strings"
	"sync"
)

// registry stores all registered rules, keyed by ID.
var registry = &Registry{
	rules: make(map[string]Rule),
}

// Registry provides concurrent-safe access to registered rules.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// Register adds a rule definition to the registry. A later registration
// with the same ID replaces the earlier one.
func Register(def RuleDef) {
	RegisterRule(WrapRuleDef(def))
}

// RegisterRule adds a Rule implementation to the registry.
func RegisterRule(rule Rule) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.rules[rule.ID()] = rule
}

// GetAllRules returns all registered rules sorted by ID.
func GetAllRules() []Rule {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	rules := make([]Rule, 0, len(registry.rules))
	for _, rule := range registry.rules {
		rules = append(rules, rule)
	}
	sortRules(rules)
	return rules
}

// GetRuleByID returns a rule by its ID. The lookup ignores case.
func GetRuleByID(id string) (Rule, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	rule, ok := registry.rules[strings.ToUpper(id)]
	if !ok {
		rule, ok = registry.rules[id]
	}
	return rule, ok
}

// GetRulesByGroup returns the rules in a group, sorted by ID.
func GetRulesByGroup(group string) []Rule {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	var rules []Rule
	for _, rule := range registry.rules {
		if strings.EqualFold(rule.Group(), group) {
			rules = append(rules, rule)
		}
	}
	sortRules(rules)
	return rules
}

// AllRules returns metadata for all registered rules, sorted by ID.
func AllRules() []RuleInfo {
	rules := GetAllRules()
	infos := make([]RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, GetRuleInfo(rule))
	}
	return infos
}

// Groups returns the distinct rule groups in sorted order.
func Groups() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	seen := make(map[string]bool)
	var groups []string
	for _, rule := range registry.rules {
		if !seen[rule.Group()] {
			seen[rule.Group()] = true
			groups = append(groups, rule.Group())
		}
	}
	slices.Sort(groups)
	return groups
}

// Count returns the number of registered rules.
func Count() int {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return len(registry.rules)
}

// Clear removes all rules from the registry. Used for testing.
func Clear() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.rules = make(map[string]Rule)
}

func sortRules(rules []Rule) {
	slices.SortFunc(rules, func(a, b Rule) int {
		return strings.Compare(a.ID(), b.ID())
	})
}
