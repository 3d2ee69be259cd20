package transaction

import (
	"fmt"
	"regexp"
)

// Rule maps a description pattern to a category id
type Rule struct {
	Pattern  string
	Category string
}

type compiledRule struct {
	re       *regexp.Regexp
	category string
}

// Categorizer picks a category for a description using ordered rules
type Categorizer struct {
	rules    []compiledRule
	fallback string
}

// NewCategorizer compiles rules case-insensitively. The first matching rule wins.
func NewCategorizer(rules []Rule, fallback string) (*Categorizer, error) {
	c := &Categorizer{fallback: fallback}
	for _, r := range rules {
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid category pattern %q: %w", r.Pattern, err)
		}
		c.rules = append(c.rules, compiledRule{re: re, category: r.Category})
	}
	return c, nil
}

// Categorize returns the category for description, or the fallback
func (c *Categorizer) Categorize(description string) string {
	for _, r := range c.rules {
		if r.re.MatchString(description) {
			return r.category
		}
	}
	return c.fallback
}
