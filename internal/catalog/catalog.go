package catalog

import (
	"fmt"
	"strings"

	"gitlab.com/markorv.net/isaharness/internal/domain"
	"gitlab.com/markorv.net/isaharness/internal/static/errs"
)

// Catalog is an ordered, read-only list of test cases
type Catalog struct {
	cases []domain.TestCase
}

// New builds a catalog from an explicit list of cases
func New(cases []domain.TestCase) *Catalog {
	cp := make([]domain.TestCase, len(cases))
	copy(cp, cases)
	return &Catalog{cases: cp}
}

// Default returns the built-in riscv-tests catalog
func Default() *Catalog {
	return New(riscvTests)
}

// Cases returns a copy of the cases in catalog order
func (c *Catalog) Cases() []domain.TestCase {
	cp := make([]domain.TestCase, len(c.cases))
	copy(cp, c.cases)
	return cp
}

func (c *Catalog) Len() int {
	return len(c.cases)
}

// Groups lists the extensions present, in first-seen order
func (c *Catalog) Groups() []domain.Extension {
	seen := make(map[domain.Extension]bool)
	groups := make([]domain.Extension, 0)
	for _, tc := range c.cases {
		if !seen[tc.Group] {
			seen[tc.Group] = true
			groups = append(groups, tc.Group)
		}
	}
	return groups
}

// Filter keeps only the cases of the given groups. No groups means everything.
func (c *Catalog) Filter(groups ...domain.Extension) *Catalog {
	if len(groups) == 0 {
		return New(c.cases)
	}
	want := make(map[domain.Extension]bool, len(groups))
	for _, g := range groups {
		want[g] = true
	}
	filtered := make([]domain.TestCase, 0, len(c.cases))
	for _, tc := range c.cases {
		if want[tc.Group] {
			filtered = append(filtered, tc)
		}
	}
	return &Catalog{cases: filtered}
}

// ParseGroups parses a comma separated list such as "I,M". Matching is case
// insensitive; unknown names are an error.
func (c *Catalog) ParseGroups(list string) ([]domain.Extension, error) {
	known := c.Groups()
	groups := make([]domain.Extension, 0)
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var match domain.Extension
		for _, g := range known {
			if strings.EqualFold(string(g), part) {
				match = g
				break
			}
		}
		if match == "" {
			return nil, fmt.Errorf("%w: unknown extension group %q", errs.ErrConfiguration, part)
		}
		groups = append(groups, match)
	}
	return groups, nil
}
