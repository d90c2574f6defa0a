package stats

import (
	"fmt"
	"regexp"
	"strings"
)

// Category is a tracked exercise grouping, matched on exercise titles.
// Patterns are regular expressions, always matched case-insensitively.
type Category struct {
	Key     string `toml:"key" json:"key"`
	Label   string `toml:"label" json:"label"`
	Pattern string `toml:"pattern" json:"pattern"`
}

func DefaultCategories() []Category {
	return []Category{
		{Key: "pullups", Label: "Pullups", Pattern: `traction|pull[- ]?up|chin[- ]?up`},
		{Key: "dips", Label: "Dips", Pattern: `dip|parallèle|parallel bar`},
		{Key: "leg_raises", Label: "Leg raises", Pattern: `leg raise|hanging leg|reverse crunch`},
		{Key: "curls", Label: "Bicep curls", Pattern: `bicep|curl biceps|biceps curl`},
	}
}

type compiledCategory struct {
	Category
	re *regexp.Regexp
}

// Categories is the compiled category table.
type Categories struct {
	list  []compiledCategory
	union *regexp.Regexp
}

func NewCategories(defs []Category) (*Categories, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("no categories defined")
	}

	c := &Categories{}
	seen := make(map[string]bool, len(defs))
	var parts []string
	for _, def := range defs {
		if def.Key == "" || def.Pattern == "" {
			return nil, fmt.Errorf("category %q: key and pattern are required", def.Key)
		}
		if seen[def.Key] {
			return nil, fmt.Errorf("category %q defined twice", def.Key)
		}
		seen[def.Key] = true

		re, err := regexp.Compile("(?i)" + def.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile category %q: %w", def.Key, err)
		}
		if def.Label == "" {
			def.Label = def.Key
		}
		c.list = append(c.list, compiledCategory{Category: def, re: re})
		parts = append(parts, "(?:"+def.Pattern+")")
	}

	union, err := regexp.Compile("(?i)" + strings.Join(parts, "|"))
	if err != nil {
		return nil, fmt.Errorf("compile categories union: %w", err)
	}
	c.union = union

	return c, nil
}

// MustDefaultCategories compiles DefaultCategories and panics on failure.
func MustDefaultCategories() *Categories {
	c, err := NewCategories(DefaultCategories())
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Categories) List() []Category {
	out := make([]Category, 0, len(c.list))
	for _, cc := range c.list {
		out = append(out, cc.Category)
	}
	return out
}

// Tracked reports whether the title falls in any category.
func (c *Categories) Tracked(title string) bool {
	return c.union.MatchString(title)
}

// Matches returns the keys of every category the title falls in.
func (c *Categories) Matches(title string) []string {
	var keys []string
	for _, cc := range c.list {
		if cc.re.MatchString(title) {
			keys = append(keys, cc.Key)
		}
	}
	return keys
}
