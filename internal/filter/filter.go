// Package filter defines the Filter interface and Chain used to select lines.
package filter

import (
	"strings"

	"github.com/Geun-Oh/sift/internal/entry"
)

// Filter determines whether a Line passes a criterion.
type Filter interface {
	// Match returns true if the line passes this filter. Filters may annotate
	// the line (the keyword filter records its hits).
	Match(l *entry.Line) bool

	// Name returns a human-readable description of this filter.
	Name() string
}

// MatchMode controls how multiple filters are combined.
type MatchMode int

const (
	// MatchAny passes if ANY filter matches (OR logic).
	MatchAny MatchMode = iota
	// MatchAll passes only if ALL filters match (AND logic).
	MatchAll
)

// Chain combines multiple filters with a configurable match mode.
type Chain struct {
	filters []Filter
	mode    MatchMode
}

// NewChain creates a Chain with the given mode.
func NewChain(mode MatchMode, filters ...Filter) *Chain {
	return &Chain{
		filters: filters,
		mode:    mode,
	}
}

// Add appends a filter to the chain.
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Match evaluates the chain against a line.
// Returns true if no filters are configured (pass-through).
func (c *Chain) Match(l *entry.Line) bool {
	if len(c.filters) == 0 {
		return true
	}

	switch c.mode {
	case MatchAll:
		for _, f := range c.filters {
			if !f.Match(l) {
				return false
			}
		}
		return true
	default: // MatchAny
		for _, f := range c.filters {
			if f.Match(l) {
				return true
			}
		}
		return false
	}
}

// Name returns a description of the chain and its members.
func (c *Chain) Name() string {
	names := make([]string, len(c.filters))
	for i, f := range c.filters {
		names[i] = f.Name()
	}
	op := "OR"
	if c.mode == MatchAll {
		op = "AND"
	}
	return "chain(" + op + ")[" + strings.Join(names, " ") + "]"
}

// Len returns the number of filters in the chain.
func (c *Chain) Len() int {
	return len(c.filters)
}
